package whatsapp

import (
	"encoding/json"
	"testing"
)

func directMessage(text string) WebhookMessage {
	return WebhookMessage{
		Key:     MessageKey{RemoteJID: "5511999999999@s.whatsapp.net"},
		Message: MessageContent{Conversation: text},
	}
}

func TestExtractMessageText(t *testing.T) {
	t.Run("conversation wins", func(t *testing.T) {
		m := directMessage("oi")
		m.Message.ExtendedTextMessage = &ExtendedTextMessage{Text: "ignored"}
		if got := ExtractMessageText(m); got != "oi" {
			t.Fatalf("got %q; want %q", got, "oi")
		}
	})

	t.Run("extended fallback", func(t *testing.T) {
		m := WebhookMessage{Message: MessageContent{
			ExtendedTextMessage: &ExtendedTextMessage{Text: "link + texto"},
		}}
		if got := ExtractMessageText(m); got != "link + texto" {
			t.Fatalf("got %q; want %q", got, "link + texto")
		}
	})

	t.Run("neither present", func(t *testing.T) {
		if got := ExtractMessageText(WebhookMessage{}); got != "" {
			t.Fatalf("got %q; want empty", got)
		}
	})
}

func TestExtractUserNumber(t *testing.T) {
	m := directMessage("oi")
	if got := ExtractUserNumber(m); got != "5511999999999" {
		t.Fatalf("got %q; want 5511999999999", got)
	}

	// JID without the user suffix passes through unchanged.
	m.Key.RemoteJID = "5511999999999"
	if got := ExtractUserNumber(m); got != "5511999999999" {
		t.Fatalf("got %q; want 5511999999999", got)
	}
}

func TestIsEligible(t *testing.T) {
	cases := []struct {
		name string
		msg  WebhookMessage
		want bool
	}{
		{"direct text", directMessage("preciso de uma tela"), true},
		{"from me", func() WebhookMessage {
			m := directMessage("oi")
			m.Key.FromMe = true
			return m
		}(), false},
		{"group", WebhookMessage{
			Key:     MessageKey{RemoteJID: "123456-7890@g.us"},
			Message: MessageContent{Conversation: "oi"},
		}, false},
		{"empty text", directMessage(""), false},
		{"blank text", directMessage("   "), false},
		{"extended text only", WebhookMessage{
			Key: MessageKey{RemoteJID: "5511999999999@s.whatsapp.net"},
			Message: MessageContent{
				ExtendedTextMessage: &ExtendedTextMessage{Text: "olá"},
			},
		}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsEligible(tc.msg); got != tc.want {
				t.Fatalf("IsEligible = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestWebhookMessage_DecodesPlatformPayload(t *testing.T) {
	raw := `{
		"key": {"remoteJid": "5511988887777@s.whatsapp.net", "fromMe": false},
		"message": {"conversation": "quanto custa a bateria?"},
		"pushName": "Maria",
		"messageTimestamp": 1735689600
	}`
	var m WebhookMessage
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.Key.RemoteJID != "5511988887777@s.whatsapp.net" || m.PushName != "Maria" {
		t.Fatalf("unexpected decode: %+v", m)
	}
	if !IsEligible(m) {
		t.Fatal("expected payload to be eligible")
	}
}
