// handler.go — основной обработчик HTTP API инвентаря.
// Регистрирует маршруты chi и делегирует запросы в сервисный слой.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/goartstore/inventory-module/internal/domain/model"
)

// Inventory — операции сервиса инвентаря, используемые обработчиками
// (реализуется service.Inventory).
type Inventory interface {
	AddFile(ctx context.Context, f model.File) model.Status
	GetFileByID(ctx context.Context, id int64) model.File
	DeleteFile(ctx context.Context, id int64) model.Status
	AddDisk(ctx context.Context, d model.Disk) model.Status
	GetDiskByID(ctx context.Context, id int64) model.Disk
	DeleteDisk(ctx context.Context, id int64) model.Status
	AddRAM(ctx context.Context, ram model.RAM) model.Status
	GetRAMByID(ctx context.Context, id int64) model.RAM
	DeleteRAM(ctx context.Context, id int64) model.Status

	AddDiskAndFile(ctx context.Context, d model.Disk, f model.File) model.Status
	AddFileToDisk(ctx context.Context, f model.File, diskID int64) model.Status
	RemoveFileFromDisk(ctx context.Context, f model.File, diskID int64) model.Status
	AddRAMToDisk(ctx context.Context, ramID, diskID int64) model.Status
	RemoveRAMFromDisk(ctx context.Context, ramID, diskID int64) model.Status

	AverageFileSizeOnDisk(ctx context.Context, diskID int64) float64
	TotalRAMOnDisk(ctx context.Context, diskID int64) int64
	CostForType(ctx context.Context, fileType string) int64
	FilesCanBeAddedToDisk(ctx context.Context, diskID int64) []int64
	FilesCanBeAddedToDiskAndRAM(ctx context.Context, diskID int64) []int64
	IsCompanyExclusive(ctx context.Context, diskID int64) bool
	ConflictingDisks(ctx context.Context) []int64
	MostAvailableDisks(ctx context.Context) []int64
	CloseFiles(ctx context.Context, fileID int64) []int64
}

// APIHandler — основной обработчик API Inventory Module.
type APIHandler struct {
	health *HealthHandler
	inv    Inventory
	logger *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(health *HealthHandler, inv Inventory, logger *slog.Logger) *APIHandler {
	return &APIHandler{
		health: health,
		inv:    inv,
		logger: logger.With(slog.String("component", "api_handler")),
	}
}

// Register регистрирует все маршруты API в router.
func (h *APIHandler) Register(r chi.Router) {
	r.Get("/health/live", h.health.HealthLive)
	r.Get("/health/ready", h.health.HealthReady)
	r.Get("/metrics", h.health.GetMetrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/files", func(r chi.Router) {
			r.Post("/", h.AddFile)
			r.Get("/types/{type}/cost", h.CostForType)
			r.Get("/{id}", h.GetFile)
			r.Delete("/{id}", h.DeleteFile)
			r.Get("/{id}/close-files", h.CloseFiles)
		})

		r.Route("/disks", func(r chi.Router) {
			r.Post("/", h.AddDisk)
			r.Post("/with-file", h.AddDiskAndFile)
			r.Get("/conflicting", h.ConflictingDisks)
			r.Get("/most-available", h.MostAvailableDisks)
			r.Get("/{id}", h.GetDisk)
			r.Delete("/{id}", h.DeleteDisk)
			r.Put("/{id}/files/{fileID}", h.AddFileToDisk)
			r.Delete("/{id}/files/{fileID}", h.RemoveFileFromDisk)
			r.Put("/{id}/rams/{ramID}", h.AddRAMToDisk)
			r.Delete("/{id}/rams/{ramID}", h.RemoveRAMFromDisk)
			r.Get("/{id}/average-file-size", h.AverageFileSizeOnDisk)
			r.Get("/{id}/total-ram", h.TotalRAMOnDisk)
			r.Get("/{id}/candidate-files", h.FilesCanBeAddedToDisk)
			r.Get("/{id}/candidate-files-ram", h.FilesCanBeAddedToDiskAndRAM)
			r.Get("/{id}/company-exclusive", h.IsCompanyExclusive)
		})

		r.Route("/rams", func(r chi.Router) {
			r.Post("/", h.AddRAM)
			r.Get("/{id}", h.GetRAM)
			r.Delete("/{id}", h.DeleteRAM)
		})
	})
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// pathID разбирает целочисленный параметр пути.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// idsResponse — ответ со списком ID.
type idsResponse struct {
	IDs []int64 `json:"ids"`
}
