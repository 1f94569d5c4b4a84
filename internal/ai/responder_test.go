package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/assistec/go-whats-backend/internal/domain"
)

func TestGenerateReply(t *testing.T) {
	var req map[string]any
	srv := completionServer(t, "Olá Maria! Como posso ajudar?", &req)
	c := NewClient(srv.URL, "sk-test", "test-model")

	got, err := c.GenerateReply(context.Background(), "oi", ReplyContext{
		UserName: "Maria",
		AIName:   "Assistec",
	})
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	if got != "Olá Maria! Como posso ajudar?" {
		t.Fatalf("reply = %q", got)
	}

	if req["max_tokens"] != float64(500) || req["temperature"] != 0.7 || req["top_p"] != 0.9 {
		t.Errorf("unexpected knobs: %v", req)
	}
	msgs, _ := req["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system+user messages, got %v", msgs)
	}
	user, _ := msgs[1].(map[string]any)
	content, _ := user["content"].(string)
	if !strings.Contains(content, "Maria") || !strings.Contains(content, "Assistec") {
		t.Errorf("user turn missing framing: %q", content)
	}
}

func TestGenerateReply_ProductContextEmbedded(t *testing.T) {
	var req map[string]any
	srv := completionServer(t, "temos sim!", &req)
	c := NewClient(srv.URL, "sk-test", "m")

	_, err := c.GenerateReply(context.Background(), "tem tela?", ReplyContext{
		FoundProducts: []domain.Product{{Name: "Frontal Galaxy S20", Price: 189.9}},
	})
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	msgs, _ := req["messages"].([]any)
	user, _ := msgs[1].(map[string]any)
	content, _ := user["content"].(string)
	if !strings.Contains(content, "Frontal Galaxy S20") {
		t.Errorf("products not embedded: %q", content)
	}
}

func TestGenerateReply_NoProductsHint(t *testing.T) {
	var req map[string]any
	srv := completionServer(t, "não temos", &req)
	c := NewClient(srv.URL, "sk-test", "m")

	_, err := c.GenerateReply(context.Background(), "tem tela?", ReplyContext{NoProductsFound: true})
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	msgs, _ := req["messages"].([]any)
	user, _ := msgs[1].(map[string]any)
	content, _ := user["content"].(string)
	if !strings.Contains(content, "Nenhum produto encontrado") {
		t.Errorf("no-products hint missing: %q", content)
	}
}

func TestGenerateReply_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "cmp-1", "object": "chat.completion", "choices": []any{},
		})
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, "sk-test", "m")

	got, err := c.GenerateReply(context.Background(), "oi", ReplyContext{})
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	if !strings.Contains(got, "não consegui gerar") {
		t.Fatalf("expected fixed apology, got %q", got)
	}
}

func TestGenerateReply_HTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, "sk-test", "m")

	if _, err := c.GenerateReply(context.Background(), "oi", ReplyContext{}); err == nil {
		t.Fatal("expected error on upstream 500")
	}
}
