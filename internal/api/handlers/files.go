// files.go — обработчики /api/v1/files endpoints.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/goartstore/inventory-module/internal/api/errors"
	"github.com/bigkaa/goartstore/inventory-module/internal/domain/model"
)

// fileBody — JSON-представление файла.
type fileBody struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

func (b fileBody) toModel() model.File {
	return model.File{ID: b.ID, Type: b.Type, Size: b.Size}
}

func fileFromModel(f model.File) fileBody {
	return fileBody{ID: f.ID, Type: f.Type, Size: f.Size}
}

// AddFile — POST /api/v1/files.
func (h *APIHandler) AddFile(w http.ResponseWriter, r *http.Request) {
	var req fileBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	st := h.inv.AddFile(r.Context(), req.toModel())
	if apierrors.FromStatus(w, st, fmt.Sprintf("Файл %d не добавлен: %s", req.ID, st)) {
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// GetFile — GET /api/v1/files/{id}.
func (h *APIHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.ValidationError(w, "Некорректный ID файла")
		return
	}

	f := h.inv.GetFileByID(r.Context(), id)
	if !f.Found() {
		apierrors.NotFound(w, fmt.Sprintf("Файл %d не найден", id))
		return
	}
	writeJSON(w, http.StatusOK, fileFromModel(f))
}

// DeleteFile — DELETE /api/v1/files/{id}.
func (h *APIHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.ValidationError(w, "Некорректный ID файла")
		return
	}

	st := h.inv.DeleteFile(r.Context(), id)
	if apierrors.FromStatus(w, st, fmt.Sprintf("Файл %d не удалён: %s", id, st)) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CloseFiles — GET /api/v1/files/{id}/close-files.
func (h *APIHandler) CloseFiles(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.ValidationError(w, "Некорректный ID файла")
		return
	}
	writeJSON(w, http.StatusOK, idsResponse{IDs: h.inv.CloseFiles(r.Context(), id)})
}

// costResponse — стоимость хранения файлов типа.
type costResponse struct {
	Type string `json:"type"`
	Cost int64  `json:"cost"`
}

// CostForType — GET /api/v1/files/types/{type}/cost.
func (h *APIHandler) CostForType(w http.ResponseWriter, r *http.Request) {
	fileType := chi.URLParam(r, "type")

	cost := h.inv.CostForType(r.Context(), fileType)
	if cost < 0 {
		apierrors.InternalError(w, "Не удалось рассчитать стоимость")
		return
	}
	writeJSON(w, http.StatusOK, costResponse{Type: fileType, Cost: cost})
}
