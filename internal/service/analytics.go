// analytics.go — аналитические запросы сервиса инвентаря.
// Сбой запроса не возвращается вызывающему: он логируется, а результатом
// становится значение-заглушка (-1, пустой срез или false).
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/goartstore/inventory-module/internal/domain/model"
	"github.com/bigkaa/goartstore/inventory-module/internal/repository"
)

// AverageFileSizeOnDisk — средний размер файлов на диске; 0 для диска без файлов.
func (s *Inventory) AverageFileSizeOnDisk(ctx context.Context, diskID int64) float64 {
	return analyze(ctx, s, "average_file_size_on_disk", -1, func(r repository.AnalyticsRepository) (float64, error) {
		return r.AverageFileSizeOnDisk(ctx, diskID)
	})
}

// TotalRAMOnDisk — суммарный объём RAM, подключённой к диску.
func (s *Inventory) TotalRAMOnDisk(ctx context.Context, diskID int64) int64 {
	return analyze(ctx, s, "total_ram_on_disk", -1, func(r repository.AnalyticsRepository) (int64, error) {
		return r.TotalRAMOnDisk(ctx, diskID)
	})
}

// CostForType — суммарная стоимость хранения всех размещений файлов типа fileType.
func (s *Inventory) CostForType(ctx context.Context, fileType string) int64 {
	return analyze(ctx, s, "cost_for_type", -1, func(r repository.AnalyticsRepository) (int64, error) {
		return r.CostForType(ctx, fileType)
	})
}

// FilesCanBeAddedToDisk — до 5 ID файлов, помещающихся в free_space диска.
func (s *Inventory) FilesCanBeAddedToDisk(ctx context.Context, diskID int64) []int64 {
	return analyze(ctx, s, "files_can_be_added_to_disk", []int64{}, func(r repository.AnalyticsRepository) ([]int64, error) {
		return r.FilesCanBeAddedToDisk(ctx, diskID)
	})
}

// FilesCanBeAddedToDiskAndRAM — до 5 ID файлов, помещающихся и на диск, и в его RAM.
func (s *Inventory) FilesCanBeAddedToDiskAndRAM(ctx context.Context, diskID int64) []int64 {
	return analyze(ctx, s, "files_can_be_added_to_disk_and_ram", []int64{}, func(r repository.AnalyticsRepository) ([]int64, error) {
		return r.FilesCanBeAddedToDiskAndRAM(ctx, diskID)
	})
}

// IsCompanyExclusive — вся RAM диска выпущена производителем диска.
func (s *Inventory) IsCompanyExclusive(ctx context.Context, diskID int64) bool {
	return analyze(ctx, s, "is_company_exclusive", false, func(r repository.AnalyticsRepository) (bool, error) {
		return r.IsCompanyExclusive(ctx, diskID)
	})
}

// ConflictingDisks — ID дисков, делящих файл с другим диском.
func (s *Inventory) ConflictingDisks(ctx context.Context) []int64 {
	return analyze(ctx, s, "conflicting_disks", []int64{}, func(r repository.AnalyticsRepository) ([]int64, error) {
		return r.ConflictingDisks(ctx)
	})
}

// MostAvailableDisks — топ-5 дисков по числу файлов, которые на них помещаются.
func (s *Inventory) MostAvailableDisks(ctx context.Context) []int64 {
	return analyze(ctx, s, "most_available_disks", []int64{}, func(r repository.AnalyticsRepository) ([]int64, error) {
		return r.MostAvailableDisks(ctx)
	})
}

// CloseFiles — до 10 файлов, близких к fileID по набору дисков.
func (s *Inventory) CloseFiles(ctx context.Context, fileID int64) []int64 {
	return analyze(ctx, s, "close_files", []int64{}, func(r repository.AnalyticsRepository) ([]int64, error) {
		return r.CloseFiles(ctx, fileID)
	})
}

// analyze выполняет аналитический запрос в read-only транзакции.
func analyze[T any](ctx context.Context, s *Inventory, op string, fallback T, fn func(r repository.AnalyticsRepository) (T, error)) T {
	start := time.Now()
	var result T
	err := s.tx.RunReadOnly(ctx, func(tx pgx.Tx) error {
		var err error
		result, err = fn(repository.NewAnalyticsRepository(tx))
		return err
	})
	if err != nil {
		operationsTotal.WithLabelValues(op, model.StatusError.String()).Inc()
		operationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		s.logger.Warn("Аналитический запрос не выполнен",
			slog.String("operation", op),
			slog.String("error", err.Error()),
		)
		return fallback
	}
	s.observe(op, model.StatusOK, start, nil)
	return result
}
