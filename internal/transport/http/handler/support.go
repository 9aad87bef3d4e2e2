package handler

import (
	"encoding/json"
	"net/http"

	"github.com/synapsehub/support-portal/internal/application/support"
	"github.com/synapsehub/support-portal/internal/domain"
	"github.com/synapsehub/support-portal/internal/transport/http/middleware"
)

// SupportHandler handles ticket submission. Rate limiting runs as middleware
// before this handler; identity and content checks live in the service.
type SupportHandler struct {
	svc support.Service
}

func NewSupportHandler(svc support.Service) *SupportHandler {
	return &SupportHandler{svc: svc}
}

func (h *SupportHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "no session")
		return
	}
	var t domain.SupportTicket
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.Submit(r.Context(), t, sess); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SuccessEnvelope{Success: true, Message: "support request submitted"})
}
