// Точка входа Inventory Module — слой доступа к данным инвентаря
// (файлы, диски, модули RAM) поверх PostgreSQL.
// Команды: serve — HTTP API; schema up|drop|clear — управление схемой.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bigkaa/goartstore/inventory-module/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "inventory-module",
	Short:         "Inventory Module — файлы, диски и RAM поверх PostgreSQL",
	Version:       config.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(schemaCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
