package telegram

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"finanzas/internal/bot"
)

type Server struct {
	http.Server
	router *bot.Router
	sender Sender
}

// NewServer wires the webhook route and health endpoints, returning a
// ready-to-run http.Server. webhookPath usually embeds the bot token so the
// endpoint is not guessable.
func NewServer(addr, webhookPath string, router *bot.Router, sender Sender) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
		router: router,
		sender: sender,
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc(webhookPath, s.handleUpdate)

	return s
}

// handleUpdate decodes one Bot API update, routes it and sends the reply.
// It always answers 200: Telegram redelivers non-2xx updates, and a poison
// update that keeps failing would wedge the webhook queue.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var update Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		slog.ErrorContext(r.Context(), "Failed to decode update", "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		w.WriteHeader(http.StatusOK)
		return
	}

	msg := update.Message
	in := bot.Inbound{
		ChatID: msg.Chat.ID,
		Sender: senderName(msg.From),
		Text:   msg.Text,
	}

	reply, ok := s.router.Handle(r.Context(), in)
	if ok && reply != "" {
		if err := s.sender.SendMessage(r.Context(), in.ChatID, reply); err != nil {
			slog.ErrorContext(r.Context(), "Failed to send reply",
				"chat_id", in.ChatID,
				"update_id", update.UpdateID,
				"error", err)
		}
	}

	w.WriteHeader(http.StatusOK)
}

func senderName(u *User) string {
	if u == nil {
		return ""
	}
	return u.FirstName
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Shutdown stops accepting new updates and drains in-flight handlers.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx)
}
