// rams.go — обработчики /api/v1/rams endpoints.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	apierrors "github.com/bigkaa/goartstore/inventory-module/internal/api/errors"
	"github.com/bigkaa/goartstore/inventory-module/internal/domain/model"
)

// ramBody — JSON-представление модуля RAM.
type ramBody struct {
	ID      int64  `json:"id"`
	Company string `json:"company"`
	Size    int64  `json:"size"`
}

// AddRAM — POST /api/v1/rams.
func (h *APIHandler) AddRAM(w http.ResponseWriter, r *http.Request) {
	var req ramBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	st := h.inv.AddRAM(r.Context(), model.RAM{ID: req.ID, Company: req.Company, Size: req.Size})
	if apierrors.FromStatus(w, st, fmt.Sprintf("RAM %d не добавлена: %s", req.ID, st)) {
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// GetRAM — GET /api/v1/rams/{id}.
func (h *APIHandler) GetRAM(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.ValidationError(w, "Некорректный ID RAM")
		return
	}

	ram := h.inv.GetRAMByID(r.Context(), id)
	if !ram.Found() {
		apierrors.NotFound(w, fmt.Sprintf("RAM %d не найдена", id))
		return
	}
	writeJSON(w, http.StatusOK, ramBody{ID: ram.ID, Company: ram.Company, Size: ram.Size})
}

// DeleteRAM — DELETE /api/v1/rams/{id}.
func (h *APIHandler) DeleteRAM(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.ValidationError(w, "Некорректный ID RAM")
		return
	}

	st := h.inv.DeleteRAM(r.Context(), id)
	if apierrors.FromStatus(w, st, fmt.Sprintf("RAM %d не удалена: %s", id, st)) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
