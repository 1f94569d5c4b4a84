package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL+"/", "inst-1", "secret-token")
	c.HTTPClient = srv.Client()
	return c
}

func TestSendText_BodyShape(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s; want POST", r.Method)
		}
		if r.URL.Path != "/message/sendText/inst-1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret-token" {
			t.Errorf("auth = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	})

	if err := c.SendText(context.Background(), "5511999999999", "olá!"); err != nil {
		t.Fatalf("SendText: %v", err)
	}

	if got["number"] != "5511999999999" {
		t.Errorf("number = %v", got["number"])
	}
	opts, _ := got["options"].(map[string]any)
	if opts["delay"] != float64(1200) || opts["presence"] != "composing" {
		t.Errorf("options = %v", opts)
	}
	tm, _ := got["textMessage"].(map[string]any)
	if tm["text"] != "olá!" {
		t.Errorf("textMessage = %v", tm)
	}
}

func TestSendText_Non2xxIsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	if err := c.SendText(context.Background(), "551", "x"); err == nil {
		t.Fatal("expected error on 401")
	}
}

func TestSendTyping(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s; want PUT", r.Method)
		}
		if r.URL.Path != "/chat/presence/inst-1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["presence"] != "composing" {
			t.Errorf("presence = %q", body["presence"])
		}
		w.WriteHeader(http.StatusOK)
	})
	if err := c.SendTyping(context.Background(), "551"); err != nil {
		t.Fatalf("SendTyping: %v", err)
	}
}

func TestInstanceStatus(t *testing.T) {
	t.Run("open maps to connected", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/instance/fetchInstances/inst-1" {
				t.Errorf("path = %s", r.URL.Path)
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"instance": map[string]any{"state": "open"},
			})
		})
		if got := c.InstanceStatus(context.Background()); got != StateConnected {
			t.Fatalf("got %v; want connected", got)
		}
	})

	t.Run("closed maps to disconnected", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"instance": map[string]any{"state": "close"},
			})
		})
		if got := c.InstanceStatus(context.Background()); got != StateDisconnected {
			t.Fatalf("got %v; want disconnected", got)
		}
	})

	t.Run("http failure maps to error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		if got := c.InstanceStatus(context.Background()); got != StateError {
			t.Fatalf("got %v; want error", got)
		}
	})

	t.Run("unreachable maps to error", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1", "inst-1", "tok")
		if got := c.InstanceStatus(context.Background()); got != StateError {
			t.Fatalf("got %v; want error", got)
		}
	})
}
