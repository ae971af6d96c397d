/*
Package auth resolves opaque credential tokens into user identities at
socket-upgrade time.

The resolver never returns an error to its caller: a missing token, an unknown
token, or a store failure all resolve to the anonymous identity. Rejecting
anonymous connections is the socket handler's responsibility.
*/
package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ReyMar81/gestor-doc/internal/app/user"
	"github.com/ReyMar81/gestor-doc/internal/pkg/logx"
)

// TokenResolver resolves a credential token to a user identity.
// Implementations return the anonymous (zero) user.User when the token is
// empty, unknown, or the lookup fails; they never return an error.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) user.User
}

// PGTokenResolver looks tokens up in the auth_tokens table.
type PGTokenResolver struct {
	pool *pgxpool.Pool
}

// NewPGTokenResolver wraps the given connection pool as a TokenResolver.
func NewPGTokenResolver(pool *pgxpool.Pool) *PGTokenResolver {
	return &PGTokenResolver{pool: pool}
}

// Resolve performs exactly one credential lookup and returns the matching
// identity, or the anonymous identity when none matches.
func (r *PGTokenResolver) Resolve(ctx context.Context, token string) user.User {
	if token == "" {
		return user.User{}
	}

	const query = `
		SELECT u.id, u.username
		FROM auth_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.token = $1`

	var u user.User
	err := r.pool.QueryRow(ctx, query, token).Scan(&u.ID, &u.Username)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			logx.Error(err, "Token lookup failed, treating connection as anonymous")
		}
		return user.User{}
	}

	return u
}
