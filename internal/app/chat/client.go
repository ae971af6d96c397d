/*
Package chat contains the core logic of the translating chat relay.

This file defines the Client struct, representing one authenticated WebSocket
connection. The read pump processes inbound frames one at a time (preserving
per-sender order into the room), applies the dispatch policy for control, voice,
and text frames, and fans out through the Room. The write pump renders each
delivered event for this recipient, translating it into the recipient's own
language when it differs from the sender's.
*/
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ReyMar81/gestor-doc/internal/app/translate"
	"github.com/ReyMar81/gestor-doc/internal/app/user"
	"github.com/ReyMar81/gestor-doc/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxMessageSize = 8192

	// capacity of the per-connection delivery queue.
	outboundQueueSize = 256

	// timeout for profile lookups performed while relaying a single message.
	lookupTimeout = 5 * time.Second

	// fallback translation timeout when none is configured.
	defaultTranslateTimeout = 8 * time.Second
)

// ProfileDirectory is the slice of the profile service the relay depends on:
// resolving a user's language preference and consuming one slot of the daily
// text message quota.
type ProfileDirectory interface {
	LanguagePreference(ctx context.Context, userID string) string
	TryConsumeMessage(ctx context.Context, userID string) bool
}

// Deps bundles the collaborators shared by every connection.
type Deps struct {
	Registry   *Registry
	Profiles   ProfileDirectory
	Translator translate.Translator

	// DailyLimit is the free-plan text message allowance, used in the limit notice text.
	DailyLimit int

	// TranslateTimeout bounds each per-recipient translation call.
	TranslateTimeout time.Duration
}

// Client represents one live, authenticated WebSocket connection bound to one room.
type Client struct {
	// id is the per-connection channel identifier keying room membership.
	id uuid.UUID

	// user is the identity resolved by the authenticator at upgrade time.
	user user.User

	deps Deps

	// room is the broadcast group this connection belongs to.
	room *Room

	// underlying WebSocket connection. Nil only in tests that drive the relay directly.
	conn *websocket.Conn

	// outbound queues events awaiting delivery to this recipient. Never closed;
	// the write pump exits via done so a late broadcast cannot panic.
	outbound chan Event

	// done signals the write pump to stop.
	done chan struct{}

	// closeOnce guards closing done.
	closeOnce sync.Once

	// muted is the last client-reported mute flag. Advisory only.
	muted bool

	logger zerolog.Logger
}

// NewClient constructs a Client for the given identity and joins it to the
// named room. The caller is responsible for starting WritePump and ReadPump.
func NewClient(deps Deps, wsConn *websocket.Conn, u user.User, roomName string) *Client {
	if deps.TranslateTimeout <= 0 {
		deps.TranslateTimeout = defaultTranslateTimeout
	}

	id := uuid.New()

	clientLogger := logx.Logger().With().
		Str("client_id", id.String()).
		Str("username", u.Username).
		Str("room", roomName).
		Logger()

	c := &Client{
		id:       id,
		user:     u,
		deps:     deps,
		conn:     wsConn,
		outbound: make(chan Event, outboundQueueSize),
		done:     make(chan struct{}),
		logger:   clientLogger,
	}

	c.room = deps.Registry.Join(roomName, c)

	return c
}

// ReadPump reads frames from the WebSocket connection until it closes, handling
// heartbeats and dispatching each inbound frame. Frames from one connection are
// processed strictly one at a time, which keeps this sender's messages in order
// for every recipient.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frameBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading frame (client close/going away)")
			}
			break
		}

		c.handleInbound(frameBytes)
	}
}

// cleanupOnDisconnect releases the connection's room membership and closes the
// socket. Idempotent; runs on every ReadPump exit path.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	c.deps.Registry.Leave(c)
	c.signalDone()

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

// handleInbound applies the dispatch policy to one raw inbound frame.
func (c *Client) handleInbound(frameBytes []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(frameBytes, &frame); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid JSON, dropping frame")
		return
	}

	if frame.Message == nil {
		c.logger.Warn().Msg("Client sent frame without message field, dropping frame")
		return
	}

	msgType := frame.Type
	if msgType == "" {
		msgType = TypeText
	}

	switch {
	case msgType.IsControl():
		c.handleControl(msgType, *frame.Message, frame.Timestamp, frame.IsMuted)

	case msgType == TypeVoice:
		// Voice fragments are frequent and small; they skip the quota but are
		// translated for each recipient exactly like text.
		c.broadcastChat(msgType, *frame.Message, frame.Timestamp)

	case msgType == TypeText:
		if !c.tryConsumeQuota() {
			c.enqueue(Event{
				Message:  fmt.Sprintf(limitNoticeFormat, c.deps.DailyLimit),
				Username: SystemUsername,
				Type:     TypeSystem,
			})
			return
		}
		c.broadcastChat(msgType, *frame.Message, frame.Timestamp)

	default:
		c.logger.Warn().Str("msg_type", string(msgType)).Msg("Client sent unsupported message type, dropping frame")
	}
}

// handleControl broadcasts a signaling frame verbatim to every room member.
// The source language is pinned to a sentinel; receivers pass control frames
// through without translation.
func (c *Client) handleControl(msgType MessageType, message, timestamp string, isMuted bool) {
	if msgType == TypeMuteStatus {
		c.muted = isMuted
	}

	c.room.Broadcast(Event{
		Message:    message,
		Username:   c.user.Username,
		Type:       msgType,
		SourceLang: controlSourceLang,
		Timestamp:  timestamp,
		IsMuted:    isMuted,
	})

	if msgType == TypeLeave {
		// Membership is released when the socket actually closes; clients send
		// leave right before disconnecting.
		c.logger.Info().Msg("Client announced leave.")
	}
}

// broadcastChat resolves the sender's language preference and fans the message
// out to the room, sender included.
func (c *Client) broadcastChat(msgType MessageType, message, timestamp string) {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	sourceLang := c.deps.Profiles.LanguagePreference(ctx, c.user.ID)
	cancel()

	c.room.Broadcast(Event{
		Message:    message,
		Username:   c.user.Username,
		Type:       msgType,
		SourceLang: sourceLang,
		Timestamp:  timestamp,
	})
}

// tryConsumeQuota charges one text message against the sender's daily allowance.
func (c *Client) tryConsumeQuota() bool {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	return c.deps.Profiles.TryConsumeMessage(ctx, c.user.ID)
}

// enqueue offers an event to this recipient's delivery queue. A full queue
// drops the event; delivery is one attempt, no retry.
func (c *Client) enqueue(ev Event) {
	select {
	case c.outbound <- ev:
	default:
		c.logger.Warn().Int("queue_len", len(c.outbound)).Msg("Client delivery queue full, dropping event")
	}
}

// signalDone closes the done channel exactly once.
func (c *Client) signalDone() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// WritePump delivers queued events to the WebSocket connection and maintains
// the heartbeat. Each event is rendered for this recipient just before the
// write, so translation failures or slowness affect only this connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case ev := <-c.outbound:
			if !c.writeEvent(ev) {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
				c.logger.Debug().Err(err).Msg("Error writing close message")
			}
			return

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeEvent renders the event for this recipient and writes it. Returns false
// if the WritePump loop should terminate.
func (c *Client) writeEvent(ev Event) bool {
	payload, err := c.renderEvent(ev)
	if err != nil {
		c.logger.Error().Err(err).Msg("Error rendering event for delivery")
		return true
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.logger.Error().Err(err).Msg("Error writing frame")
		return false
	}

	return true
}

// writePingMessage sends a periodic WebSocket Ping to maintain the heartbeat.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}

// renderEvent produces the outbound frame bytes for this recipient. Control
// frames pass through verbatim with the mute flag attached; system notices are
// delivered as-is; text and voice are localized into the recipient's language.
func (c *Client) renderEvent(ev Event) ([]byte, error) {
	frame := outboundFrame{
		Message:   ev.Message,
		Username:  ev.Username,
		Type:      ev.Type,
		Timestamp: ev.Timestamp,
	}

	switch {
	case ev.Type.IsControl():
		muted := ev.IsMuted
		frame.IsMuted = &muted

	case ev.Type == TypeSystem:
		// server notice, never translated

	default:
		frame.Message = c.localizeMessage(ev)
	}

	return json.Marshal(frame)
}

// localizeMessage returns the event's message in this recipient's preferred
// language. Same-language messages pass through byte-identical. A translation
// error or timeout yields a visible failure marker for this recipient only.
func (c *Client) localizeMessage(ev Event) string {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	targetLang := c.deps.Profiles.LanguagePreference(ctx, c.user.ID)
	cancel()

	if targetLang == ev.SourceLang {
		return ev.Message
	}

	tctx, tcancel := context.WithTimeout(context.Background(), c.deps.TranslateTimeout)
	defer tcancel()

	result, err := c.deps.Translator.Translate(tctx, ev.Message, targetLang, ev.SourceLang)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("source_lang", ev.SourceLang).
			Str("target_lang", targetLang).
			Msg("Translation failed, delivering failure marker")
		return fmt.Sprintf(translationFailureFormat, ev.Message)
	}

	return result.TranslatedText
}

// shutdown stops the write pump and closes the socket. Used by the Registry
// during server shutdown.
func (c *Client) shutdown() {
	c.signalDone()

	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error during shutdown")
		}
	}
}
