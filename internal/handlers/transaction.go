package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/trackops/itam/internal/middleware"
	"github.com/trackops/itam/internal/models"
	"github.com/trackops/itam/internal/service"
)

// TransactionHandler serves check-out/check-in and the transaction history.
type TransactionHandler struct {
	Svc *service.TransactionService
}

type transitionInput struct {
	AssetID int `json:"asset_id" validate:"required,gt=0"`
}

func (h *TransactionHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Svc.CheckOut)
}

func (h *TransactionHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Svc.CheckIn)
}

func (h *TransactionHandler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, assetID int, userName string) (models.AssetTransaction, error)) {
	var input transitionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	actor, _ := middleware.GetActor(r.Context())
	record, err := fn(r.Context(), input.AssetID, actor.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	history, err := h.Svc.History(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if history == nil {
		history = []models.AssetTransaction{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}
