// Package http exposes the webhook endpoint that receives chat updates and
// hands replies to the outbound transport.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	applog "github.com/rogerio1982/app-gastos/internal/log"
)

const maxWebhookBody = 1 << 20 // 1MB

type (
	// ReplyHandler turns one inbound message into the reply text.
	ReplyHandler interface {
		Handle(ctx context.Context, chatID, rawText string) string
	}

	// Sender delivers the reply. Failures are logged, never surfaced to
	// the webhook caller.
	Sender interface {
		Send(ctx context.Context, chatID, text string) error
	}
)

type Server struct {
	http.Server
	replies ReplyHandler
	sender  Sender
	logger  *applog.Logger
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, replies ReplyHandler, sender Sender, logger *applog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		replies: replies,
		sender:  sender,
		logger:  logger.WithComponent(applog.ComponentHTTP),
	}

	mux.HandleFunc("/", s.withRequestLogging(s.handleHome))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/webhook", s.withRequestLogging(s.handleWebhook))

	return s
}

// withRequestLogging adds request IDs and completion logging to handlers.
func (s *Server) withRequestLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := generateRequestID()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.Info("Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, map[string]string{"status": "ok", "message": "Serviço funcionando"})
}

// handleWebhook consumes a chat update. The acknowledgment is always a
// success shape: internal failures end up in the reply text or the logs,
// never in the HTTP response.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		s.logger.Error("Webhook body read failed", applog.FieldError, err)
		writeJSON(w, map[string]string{"status": "ignored"})
		return
	}

	// Only message.chat.id and message.text matter; everything else in the
	// update payload is ignored.
	if !gjson.GetBytes(body, "message").Exists() {
		writeJSON(w, map[string]string{"status": "ignored"})
		return
	}
	chatID := gjson.GetBytes(body, "message.chat.id").String()
	rawText := gjson.GetBytes(body, "message.text").String()

	reply := s.replies.Handle(r.Context(), chatID, rawText)

	if err := s.sender.Send(r.Context(), chatID, reply); err != nil {
		slog.ErrorContext(r.Context(), "Reply delivery failed",
			applog.FieldChatID, chatID,
			applog.FieldError, err)
	}

	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
