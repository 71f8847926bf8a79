package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/trackops/itam/internal/middleware"
	"github.com/trackops/itam/internal/models"
	"github.com/trackops/itam/internal/service"
)

// AssetHandler serves the asset registry endpoints.
type AssetHandler struct {
	Svc *service.AssetService
}

type assetInput struct {
	Name         string `json:"name" validate:"max=255"`
	SerialNumber string `json:"serial_number" validate:"required,max=255"`
	Status       string `json:"status" validate:"omitempty,oneof=InStock InUse Retired"`
}

func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assets)
}

func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	asset, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(asset)
}

func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var input assetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	actor, _ := middleware.GetActor(r.Context())
	asset, err := h.Svc.Create(r.Context(), models.Asset{
		Name:         input.Name,
		SerialNumber: input.SerialNumber,
		Status:       models.Status(input.Status),
	}, actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(asset)
}

func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	var input assetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.Status == "" {
		JSONValidationError(w, "validation failed", map[string]string{"status": "required"}, http.StatusBadRequest)
		return
	}
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	actor, _ := middleware.GetActor(r.Context())
	if err := h.Svc.Update(r.Context(), models.Asset{
		ID:           id,
		Name:         input.Name,
		SerialNumber: input.SerialNumber,
		Status:       models.Status(input.Status),
	}, actor); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	actor, _ := middleware.GetActor(r.Context())
	if err := h.Svc.Delete(r.Context(), id, actor); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
