// Package whatsapp adapts the Evolution-API flavor of the WhatsApp platform:
// the inbound webhook payload shape and the outbound message/presence/status
// endpoints. It knows nothing about the AI pipeline; eligibility here is a
// pure predicate over the payload.
package whatsapp

import "strings"

const (
	// userSuffix is appended by the platform to direct-conversation JIDs.
	userSuffix = "@s.whatsapp.net"
	// groupSuffix marks group conversations, which the assistant ignores.
	groupSuffix = "@g.us"
)

// MessageKey identifies the conversation and direction of a webhook message.
type MessageKey struct {
	RemoteJID string `json:"remoteJid"`
	FromMe    bool   `json:"fromMe"`
}

// ExtendedTextMessage is the rich-text variant of a message body.
type ExtendedTextMessage struct {
	Text string `json:"text"`
}

// MessageContent holds the possible text carriers of a webhook message.
// Conversation is set for plain direct messages; ExtendedTextMessage for
// rich-text ones (links, quotes).
type MessageContent struct {
	Conversation        string               `json:"conversation,omitempty"`
	ExtendedTextMessage *ExtendedTextMessage `json:"extendedTextMessage,omitempty"`
}

// WebhookMessage is the inbound payload delivered once per message. It is
// transient: the pipeline consumes it and never persists it as-is.
type WebhookMessage struct {
	Key              MessageKey     `json:"key"`
	Message          MessageContent `json:"message"`
	PushName         string         `json:"pushName"`
	MessageTimestamp int64          `json:"messageTimestamp"`
}

// ExtractMessageText returns the plain-text body of the message: the direct
// conversation field when present, else the extended-text field, else "".
func ExtractMessageText(m WebhookMessage) string {
	if m.Message.Conversation != "" {
		return m.Message.Conversation
	}
	if m.Message.ExtendedTextMessage != nil {
		return m.Message.ExtendedTextMessage.Text
	}
	return ""
}

// ExtractUserNumber strips the platform suffix from the sender JID, leaving
// the bare phone-derived identifier.
func ExtractUserNumber(m WebhookMessage) string {
	return strings.TrimSuffix(m.Key.RemoteJID, userSuffix)
}

// IsEligible reports whether the message qualifies for AI processing:
// not sent by the bot's own account, not a group conversation, and carrying
// non-blank text.
func IsEligible(m WebhookMessage) bool {
	if m.Key.FromMe {
		return false
	}
	if strings.Contains(m.Key.RemoteJID, groupSuffix) {
		return false
	}
	return strings.TrimSpace(ExtractMessageText(m)) != ""
}
