package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bigkaa/goartstore/inventory-module/internal/config"
	"github.com/bigkaa/goartstore/inventory-module/internal/database"
	"github.com/bigkaa/goartstore/inventory-module/internal/repository"
	"github.com/bigkaa/goartstore/inventory-module/internal/service"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Управление схемой инвентаря",
}

var schemaUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Создать таблицы и представления (идемпотентно)",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		return database.Migrate(cfg, logger)
	},
}

var schemaDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Удалить представления и таблицы вместе с данными",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		return database.Drop(cfg, logger)
	},
}

var schemaClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Удалить все данные, сохранив схему",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		pool, err := database.Connect(cmd.Context(), cfg, logger)
		if err != nil {
			return fmt.Errorf("подключение к PostgreSQL: %w", err)
		}
		defer pool.Close()

		return service.NewInventory(repository.NewTxRunner(pool), logger).ClearTables(cmd.Context())
	},
}

func init() {
	schemaCmd.AddCommand(schemaUpCmd, schemaDropCmd, schemaClearCmd)
}

// loadConfig загружает конфигурацию и настраивает логгер.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("загрузка конфигурации: %w", err)
	}
	return cfg, config.SetupLogger(cfg), nil
}
