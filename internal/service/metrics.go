// metrics.go — Prometheus метрики операций инвентаря.
// Регистрирует метрики: inv_operations_total, inv_operation_duration_seconds.
package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// operationsTotal — количество операций по имени и итоговому статусу.
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inv_operations_total",
			Help: "Количество операций Inventory Module по статусу",
		},
		[]string{"operation", "status"},
	)

	// operationDuration — длительность операции, включая транзакцию.
	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inv_operation_duration_seconds",
			Help:    "Длительность операций Inventory Module в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)
