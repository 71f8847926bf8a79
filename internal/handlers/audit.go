package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/trackops/itam/internal/models"
	"github.com/trackops/itam/internal/service"
)

// AuditHandler serves the audit log read endpoint.
type AuditHandler struct {
	Svc *service.AuditService
}

// ListAudit returns the newest audit entries. Query: limit (default and cap 100).
func (h *AuditHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	limit := service.DefaultAuditLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 {
			limit = val
		}
	}

	entries, err := h.Svc.Recent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}
