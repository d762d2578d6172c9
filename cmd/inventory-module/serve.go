package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/bigkaa/goartstore/inventory-module/internal/api/handlers"
	"github.com/bigkaa/goartstore/inventory-module/internal/config"
	"github.com/bigkaa/goartstore/inventory-module/internal/database"
	"github.com/bigkaa/goartstore/inventory-module/internal/repository"
	"github.com/bigkaa/goartstore/inventory-module/internal/server"
	"github.com/bigkaa/goartstore/inventory-module/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Применить схему и запустить HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// 1. Конфигурация и логирование
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("загрузка конфигурации: %w", err)
		}
		logger := config.SetupLogger(cfg)
		logger.Info("Inventory Module запускается",
			slog.String("version", config.Version),
			slog.Int("port", cfg.Port),
		)

		if os.Getenv("INV_DEPHEALTH_GROUP") == "" {
			logger.Warn("INV_DEPHEALTH_GROUP не задана, используется значение по умолчанию",
				slog.String("default", cfg.DephealthGroup),
			)
		}

		// 2. Схема БД (идемпотентно)
		logger.Info("Применение схемы БД...")
		if err := database.Migrate(cfg, logger); err != nil {
			return fmt.Errorf("схема БД: %w", err)
		}

		// 3. Подключение к PostgreSQL (pgxpool)
		ctx := cmd.Context()
		pool, err := database.Connect(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("подключение к PostgreSQL: %w", err)
		}
		defer pool.Close()

		// 3.1 Адаптер pgxpool → *sql.DB для topologymetrics (connection pool mode)
		pgDB := stdlib.OpenDBFromPool(pool)
		defer pgDB.Close()

		// 4. Сервисный слой
		inv := service.NewInventory(repository.NewTxRunner(pool), logger)

		// 5. topologymetrics — мониторинг PostgreSQL
		dephealthSvc, dephealthErr := service.NewDephealthService(service.DephealthConfig{
			ServiceID:     "inventory-module",
			Group:         cfg.DephealthGroup,
			PostgresURL:   cfg.DatabaseURL("postgres"),
			CheckInterval: cfg.DephealthCheckInterval,
		}, pgDB, logger)
		if dephealthErr != nil {
			logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
				slog.String("error", dephealthErr.Error()),
			)
		} else if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			defer dephealthSvc.Stop()
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}

		// 6. HTTP API
		healthHandler := handlers.NewHealthHandler(database.NewReadinessChecker(pool))
		apiHandler := handlers.NewAPIHandler(healthHandler, inv, logger)

		return server.New(cfg, logger, apiHandler).Run(ctx)
	},
}
