package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nabil/snipdrop/internal/service"
)

// InteractionHandler records like/skip/save actions.
type InteractionHandler struct {
	interactions *service.InteractionService
	logger       *slog.Logger
}

// NewInteractionHandler creates an InteractionHandler.
func NewInteractionHandler(interactions *service.InteractionService, logger *slog.Logger) *InteractionHandler {
	return &InteractionHandler{interactions: interactions, logger: logger}
}

// interactionRequest is the POST /interactions/ body.
type interactionRequest struct {
	UserID    int64  `json:"user_id"`
	SnippetID int64  `json:"snippet_id"`
	Action    string `json:"action"`
}

// interactionResponse acknowledges the insert.
type interactionResponse struct {
	Status string `json:"status"`
	ID     int64  `json:"id"`
}

// HandleCreate records one interaction.
//
// HTTP: POST /interactions/
// Body: {"user_id": 1, "snippet_id": 2, "action": "like"}
//
// 201 with {"status": "ok", "id": N}; 404 when the user or the snippet
// doesn't exist. Repeated identical interactions all succeed — each gets
// its own row.
func (h *InteractionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req interactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid interaction JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "validation_error",
			Detail: "invalid JSON body",
		})
		return
	}

	interaction, err := h.interactions.Record(r.Context(), req.UserID, req.SnippetID, req.Action)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, interactionResponse{
		Status: "ok",
		ID:     interaction.ID,
	})
}
