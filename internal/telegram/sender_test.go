package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendPostsToBotAPI(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	s := NewSender("test-token", ts.URL)
	if err := s.Send(context.Background(), "42", "✅ Gasto registrado!"); err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotPath != "/bottest-token/sendMessage" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotBody["chat_id"] != "42" {
		t.Fatalf("chat_id = %q, want 42", gotBody["chat_id"])
	}
	if gotBody["text"] != "✅ Gasto registrado!" {
		t.Fatalf("text = %q", gotBody["text"])
	}
}

func TestSendReportsHTTPFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	s := NewSender("test-token", ts.URL)
	if err := s.Send(context.Background(), "42", "hi"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
