// dephealth.go — мониторинг PostgreSQL через topologymetrics.
// Метрики app_dependency_* публикуются на /metrics рядом с inv_*.
package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/BigKAA/topologymetrics/sdk-go/dephealth"
	"github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/pgcheck"
)

// DephealthConfig — параметры мониторинга зависимостей.
type DephealthConfig struct {
	// ServiceID — вершина графа зависимостей ("inventory-module")
	ServiceID string
	// Group — INV_DEPHEALTH_GROUP
	Group string
	// PostgresURL — только для лейблов метрик; проверка идёт через пул
	PostgresURL string
	// CheckInterval — INV_DEPHEALTH_CHECK_INTERVAL
	CheckInterval time.Duration
}

// DephealthService проверяет PostgreSQL через тот же пул, что и репозитории,
// поэтому исчерпание пула видно как отказ зависимости.
type DephealthService struct {
	dh     *dephealth.DepHealth
	logger *slog.Logger
}

// NewDephealthService создаёт мониторинг. db — адаптер пула
// (stdlib.OpenDBFromPool). extra дополняет опции SDK, например
// dephealth.WithRegisterer для изолированного registry в тестах.
func NewDephealthService(cfg DephealthConfig, db *sql.DB, logger *slog.Logger, extra ...dephealth.Option) (*DephealthService, error) {
	postgres := dephealth.AddDependency("postgresql", dephealth.TypePostgres,
		pgcheck.New(pgcheck.WithDB(db)),
		dephealth.FromURL(cfg.PostgresURL),
		dephealth.CheckInterval(cfg.CheckInterval),
		dephealth.Critical(true),
	)

	opts := append([]dephealth.Option{dephealth.WithLogger(logger), postgres}, extra...)
	dh, err := dephealth.New(cfg.ServiceID, cfg.Group, opts...)
	if err != nil {
		return nil, err
	}

	return &DephealthService{
		dh:     dh,
		logger: logger.With(slog.String("component", "dephealth")),
	}, nil
}

// Start запускает периодические проверки.
func (ds *DephealthService) Start(ctx context.Context) error {
	if err := ds.dh.Start(ctx); err != nil {
		return err
	}
	ds.logger.Info("Мониторинг PostgreSQL запущен")
	return nil
}

// Stop останавливает проверки.
func (ds *DephealthService) Stop() {
	ds.dh.Stop()
	ds.logger.Info("Мониторинг PostgreSQL остановлен")
}

// Health — состояние зависимостей по имени (true — ok).
func (ds *DephealthService) Health() map[string]bool {
	return ds.dh.Health()
}
