/*
Package chat contains the core logic of the translating chat relay: room
membership, message fan-out, and per-recipient translation at delivery time.

This file defines the message types of the wire protocol, the inbound and
outbound frame shapes, and the Event payload broadcast between connections.
*/
package chat

// MessageType classifies an inbound or outbound chat frame.
type MessageType string

const (
	// TypeText is a normal chat message. Subject to the daily quota and translated per recipient.
	TypeText MessageType = "text"

	// TypeVoice is a transcribed voice fragment. Translated per recipient but never rate limited.
	TypeVoice MessageType = "voice"

	// Control types: signaling between room members. Never rate limited, never translated.
	TypeJoin             MessageType = "join"
	TypePresenceRequest  MessageType = "presence_request"
	TypePresenceResponse MessageType = "presence_response"
	TypeMuteStatus       MessageType = "mute_status"
	TypeLeave            MessageType = "leave"

	// TypeSystem marks server-generated notices such as the daily limit message.
	TypeSystem MessageType = "system"
)

// IsControl reports whether t is a signaling type that bypasses both the rate
// limiter and translation.
func (t MessageType) IsControl() bool {
	switch t {
	case TypeJoin, TypePresenceRequest, TypePresenceResponse, TypeMuteStatus, TypeLeave:
		return true
	}
	return false
}

// SystemUsername is the sender name attached to server-generated notices.
const SystemUsername = "Sistema"

// controlSourceLang is the sentinel source language carried by control frames
// purely to satisfy the broadcast payload shape. Receivers never translate
// control frames, so the value is not interpreted.
const controlSourceLang = "en"

// limitNoticeFormat is the notice sent back to a sender whose daily text
// message allowance is exhausted. Delivered only to the sender.
const limitNoticeFormat = "Límite diario alcanzado (%d msgs). Actualiza tu Plan a Premium para continuar."

// translationFailureFormat wraps the original message when translation for one
// recipient fails. The recipient sees the marker instead of silently receiving
// untranslated text.
const translationFailureFormat = "Error al traducir: %s"

// inboundFrame is the JSON shape clients send. Message is a pointer so a frame
// missing the required field can be told apart from an empty message.
type inboundFrame struct {
	Message   *string     `json:"message"`
	Type      MessageType `json:"type"`
	Timestamp string      `json:"timestamp"`
	IsMuted   bool        `json:"isMuted"`
}

// outboundFrame is the JSON shape delivered to clients. IsMuted is only present
// on control frames.
type outboundFrame struct {
	Message   string      `json:"message"`
	Username  string      `json:"username"`
	Type      MessageType `json:"type"`
	Timestamp string      `json:"timestamp,omitempty"`
	IsMuted   *bool       `json:"isMuted,omitempty"`
}

// Event is the payload fanned out to room members. The message body is the
// sender's original text; translation happens independently on each receiving
// connection, so the same Event may render differently per recipient.
type Event struct {
	Message    string
	Username   string
	Type       MessageType
	SourceLang string
	Timestamp  string
	IsMuted    bool
}
