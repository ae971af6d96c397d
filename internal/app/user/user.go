/*
Package user contains the core data structure for user identity within the chat system.

It defines the User struct attached to every connection at upgrade time, and the
anonymous identity that unauthenticated connections resolve to.
*/
package user

// User represents the resolved identity of a chat participant.
// A zero-value User is the anonymous (unauthenticated) identity.
type User struct {
	// ID is the unique identifier of the account the credential token resolved to.
	ID string `json:"id"`

	// Username is the display name attached to outbound chat frames.
	Username string `json:"username"`
}

// IsAnonymous reports whether the identity belongs to no known account.
// Anonymous connections are closed right after the upgrade, before joining any room.
func (u User) IsAnonymous() bool {
	return u.ID == ""
}
