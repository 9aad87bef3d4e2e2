package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/synapsehub/support-portal/internal/application/chat"
	"github.com/synapsehub/support-portal/internal/domain"
)

// ChatHandler proxies assistant conversations to the completion API.
type ChatHandler struct {
	svc chat.Service
}

func NewChatHandler(svc chat.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message             string               `json:"message"`
		ConversationHistory []domain.ChatMessage `json:"conversationHistory"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	reply, err := h.svc.Send(r.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ChatEnvelope{
		Success:   true,
		Response:  reply,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
