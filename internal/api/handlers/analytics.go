// analytics.go — аналитические endpoints по дискам.
// Сервис не возвращает ошибок: -1 в агрегатах означает сбой запроса.
package handlers

import (
	"net/http"

	apierrors "github.com/bigkaa/goartstore/inventory-module/internal/api/errors"
)

type averageFileSizeResponse struct {
	DiskID          int64   `json:"disk_id"`
	AverageFileSize float64 `json:"average_file_size"`
}

type totalRAMResponse struct {
	DiskID   int64 `json:"disk_id"`
	TotalRAM int64 `json:"total_ram"`
}

type companyExclusiveResponse struct {
	DiskID    int64 `json:"disk_id"`
	Exclusive bool  `json:"exclusive"`
}

// AverageFileSizeOnDisk — GET /api/v1/disks/{id}/average-file-size.
func (h *APIHandler) AverageFileSizeOnDisk(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.ValidationError(w, "Некорректный ID диска")
		return
	}

	avg := h.inv.AverageFileSizeOnDisk(r.Context(), id)
	if avg < 0 {
		apierrors.InternalError(w, "Не удалось рассчитать средний размер файлов")
		return
	}
	writeJSON(w, http.StatusOK, averageFileSizeResponse{DiskID: id, AverageFileSize: avg})
}

// TotalRAMOnDisk — GET /api/v1/disks/{id}/total-ram.
func (h *APIHandler) TotalRAMOnDisk(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.ValidationError(w, "Некорректный ID диска")
		return
	}

	total := h.inv.TotalRAMOnDisk(r.Context(), id)
	if total < 0 {
		apierrors.InternalError(w, "Не удалось рассчитать объём RAM")
		return
	}
	writeJSON(w, http.StatusOK, totalRAMResponse{DiskID: id, TotalRAM: total})
}

// FilesCanBeAddedToDisk — GET /api/v1/disks/{id}/candidate-files.
func (h *APIHandler) FilesCanBeAddedToDisk(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.ValidationError(w, "Некорректный ID диска")
		return
	}
	writeJSON(w, http.StatusOK, idsResponse{IDs: h.inv.FilesCanBeAddedToDisk(r.Context(), id)})
}

// FilesCanBeAddedToDiskAndRAM — GET /api/v1/disks/{id}/candidate-files-ram.
func (h *APIHandler) FilesCanBeAddedToDiskAndRAM(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.ValidationError(w, "Некорректный ID диска")
		return
	}
	writeJSON(w, http.StatusOK, idsResponse{IDs: h.inv.FilesCanBeAddedToDiskAndRAM(r.Context(), id)})
}

// IsCompanyExclusive — GET /api/v1/disks/{id}/company-exclusive.
func (h *APIHandler) IsCompanyExclusive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.ValidationError(w, "Некорректный ID диска")
		return
	}
	writeJSON(w, http.StatusOK, companyExclusiveResponse{DiskID: id, Exclusive: h.inv.IsCompanyExclusive(r.Context(), id)})
}

// ConflictingDisks — GET /api/v1/disks/conflicting.
func (h *APIHandler) ConflictingDisks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, idsResponse{IDs: h.inv.ConflictingDisks(r.Context())})
}

// MostAvailableDisks — GET /api/v1/disks/most-available.
func (h *APIHandler) MostAvailableDisks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, idsResponse{IDs: h.inv.MostAvailableDisks(r.Context())})
}
