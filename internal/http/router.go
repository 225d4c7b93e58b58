// Package http exposes the tracker's HTTP surface to the UI layer.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"chat-transcription-tracker/internal/chat"
	"chat-transcription-tracker/internal/observability/logging"
	"chat-transcription-tracker/internal/operation"
	"chat-transcription-tracker/internal/status"
	"chat-transcription-tracker/internal/track"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// transcriptionRequest is the submission payload. Text is the raw
// submitted text; the remaining fields describe the caller's view context.
type transcriptionRequest struct {
	Text              string `json:"text"`
	ChatID            string `json:"chatId,omitempty"`
	ActiveChatSkillID string `json:"activeChatSkillId,omitempty"`
	ActiveSkillID     string `json:"activeSkillId,omitempty"`
}

// statusResponse mirrors the UI-facing status sink.
type statusResponse struct {
	IsTranscribing bool   `json:"isTranscribing"`
	Error          string `json:"error,omitempty"`
	ActiveChatID   string `json:"activeChatId,omitempty"`
}

// NewRouter constructs the HTTP router for the service. baseCtx bounds the
// lifetime of tracking tasks started from requests: when it is torn down,
// running poll loops observe cancellation and stop.
func NewRouter(
	baseCtx context.Context,
	tracker *track.Tracker,
	store *chat.Store,
	sink *status.Sink,
	active *chat.ActiveChat,
	defaultSkillID string,
) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Health endpoints
	r.Get("/v1/liveness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/v1/readiness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	// API routes
	r.Route("/v1", func(r chi.Router) {
		r.Post("/transcriptions", func(w http.ResponseWriter, req *http.Request) {
			var body transcriptionRequest
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}

			ref, err := operation.ParseRef(body.Text)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			if ref == nil {
				writeJSON(w, http.StatusOK, map[string]any{"tracked": false})
				return
			}

			chatID := body.ChatID
			if chatID == "" {
				chatID = active.ChatID()
			}

			trackReq := track.Request{
				Text:   body.Text,
				ChatID: chatID,
				Skills: chat.SkillChain{
					ActiveChatSkillID:       body.ActiveChatSkillID,
					ActiveSkillID:           body.ActiveSkillID,
					WorkspaceDefaultSkillID: defaultSkillID,
				},
			}

			go func() {
				if err := tracker.Track(baseCtx, trackReq); err != nil {
					logger := logging.WithOperation(ref.OperationID)
					logger.Warn().Err(err).Msg("Tracking ended with error")
				}
			}()

			writeJSON(w, http.StatusAccepted, map[string]any{
				"tracked":     true,
				"operationId": ref.OperationID,
			})
		})

		r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, statusResponse{
				IsTranscribing: sink.IsTranscribing(),
				Error:          sink.Error(),
				ActiveChatID:   active.ChatID(),
			})
		})

		r.Get("/chats/{chatID}/messages", func(w http.ResponseWriter, req *http.Request) {
			chatID := chi.URLParam(req, "chatID")
			writeJSON(w, http.StatusOK, store.Messages(chatID))
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
