// disks.go — обработчики /api/v1/disks endpoints:
// CRUD дисков, размещение файлов и подключение RAM.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	apierrors "github.com/bigkaa/goartstore/inventory-module/internal/api/errors"
	"github.com/bigkaa/goartstore/inventory-module/internal/domain/model"
)

// diskBody — JSON-представление диска.
type diskBody struct {
	ID          int64  `json:"id"`
	Company     string `json:"company"`
	Speed       int64  `json:"speed"`
	FreeSpace   int64  `json:"free_space"`
	CostPerByte int64  `json:"cost_per_byte"`
}

func (b diskBody) toModel() model.Disk {
	return model.Disk{
		ID:          b.ID,
		Company:     b.Company,
		Speed:       b.Speed,
		FreeSpace:   b.FreeSpace,
		CostPerByte: b.CostPerByte,
	}
}

func diskFromModel(d model.Disk) diskBody {
	return diskBody{
		ID:          d.ID,
		Company:     d.Company,
		Speed:       d.Speed,
		FreeSpace:   d.FreeSpace,
		CostPerByte: d.CostPerByte,
	}
}

// diskAndFileRequest — тело POST /api/v1/disks/with-file.
type diskAndFileRequest struct {
	Disk diskBody `json:"disk"`
	File fileBody `json:"file"`
}

// AddDisk — POST /api/v1/disks.
func (h *APIHandler) AddDisk(w http.ResponseWriter, r *http.Request) {
	var req diskBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	st := h.inv.AddDisk(r.Context(), req.toModel())
	if apierrors.FromStatus(w, st, fmt.Sprintf("Диск %d не добавлен: %s", req.ID, st)) {
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// AddDiskAndFile — POST /api/v1/disks/with-file. Диск и файл создаются атомарно.
func (h *APIHandler) AddDiskAndFile(w http.ResponseWriter, r *http.Request) {
	var req diskAndFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	st := h.inv.AddDiskAndFile(r.Context(), req.Disk.toModel(), req.File.toModel())
	if apierrors.FromStatus(w, st, fmt.Sprintf("Диск %d и файл %d не добавлены: %s", req.Disk.ID, req.File.ID, st)) {
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// GetDisk — GET /api/v1/disks/{id}.
func (h *APIHandler) GetDisk(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.ValidationError(w, "Некорректный ID диска")
		return
	}

	d := h.inv.GetDiskByID(r.Context(), id)
	if !d.Found() {
		apierrors.NotFound(w, fmt.Sprintf("Диск %d не найден", id))
		return
	}
	writeJSON(w, http.StatusOK, diskFromModel(d))
}

// DeleteDisk — DELETE /api/v1/disks/{id}.
func (h *APIHandler) DeleteDisk(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		apierrors.ValidationError(w, "Некорректный ID диска")
		return
	}

	st := h.inv.DeleteDisk(r.Context(), id)
	if apierrors.FromStatus(w, st, fmt.Sprintf("Диск %d не удалён: %s", id, st)) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddFileToDisk — PUT /api/v1/disks/{id}/files/{fileID}.
func (h *APIHandler) AddFileToDisk(w http.ResponseWriter, r *http.Request) {
	diskID, fileID, ok := diskAndMember(w, r, "fileID")
	if !ok {
		return
	}

	st := h.inv.AddFileToDisk(r.Context(), model.File{ID: fileID}, diskID)
	if apierrors.FromStatus(w, st, fmt.Sprintf("Файл %d не размещён на диске %d: %s", fileID, diskID, st)) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveFileFromDisk — DELETE /api/v1/disks/{id}/files/{fileID}.
func (h *APIHandler) RemoveFileFromDisk(w http.ResponseWriter, r *http.Request) {
	diskID, fileID, ok := diskAndMember(w, r, "fileID")
	if !ok {
		return
	}

	st := h.inv.RemoveFileFromDisk(r.Context(), model.File{ID: fileID}, diskID)
	if apierrors.FromStatus(w, st, fmt.Sprintf("Файл %d не убран с диска %d: %s", fileID, diskID, st)) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddRAMToDisk — PUT /api/v1/disks/{id}/rams/{ramID}.
func (h *APIHandler) AddRAMToDisk(w http.ResponseWriter, r *http.Request) {
	diskID, ramID, ok := diskAndMember(w, r, "ramID")
	if !ok {
		return
	}

	st := h.inv.AddRAMToDisk(r.Context(), ramID, diskID)
	if apierrors.FromStatus(w, st, fmt.Sprintf("RAM %d не подключена к диску %d: %s", ramID, diskID, st)) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveRAMFromDisk — DELETE /api/v1/disks/{id}/rams/{ramID}.
func (h *APIHandler) RemoveRAMFromDisk(w http.ResponseWriter, r *http.Request) {
	diskID, ramID, ok := diskAndMember(w, r, "ramID")
	if !ok {
		return
	}

	st := h.inv.RemoveRAMFromDisk(r.Context(), ramID, diskID)
	if apierrors.FromStatus(w, st, fmt.Sprintf("RAM %d не отключена от диска %d: %s", ramID, diskID, st)) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// diskAndMember разбирает {id} диска и ID связанной записи.
// При ошибке записывает 400 и возвращает ok=false.
func diskAndMember(w http.ResponseWriter, r *http.Request, member string) (diskID, memberID int64, ok bool) {
	diskID, ok = pathID(r, "id")
	if !ok {
		apierrors.ValidationError(w, "Некорректный ID диска")
		return 0, 0, false
	}
	memberID, ok = pathID(r, member)
	if !ok {
		apierrors.ValidationError(w, "Некорректный параметр "+member)
		return 0, 0, false
	}
	return diskID, memberID, true
}
