// Package cmd provides the curator CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/geosamples/curator/config"
	"github.com/geosamples/curator/storage"
)

func setupLogger() {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "INFO"
	}

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var configFile string

var rootCmd = &cobra.Command{
	Use:   "curator",
	Short: "Curate research metadata and exchange it as DataCite documents",
	Long: `Curator maintains a normalized database of research metadata records
(datasets, physical samples, publications) and converts them to and from
the DataCite Metadata Schema (4.5/4.6) in JSON and XML.

Examples:
  curator init
  curator ingest samples.csv
  curator export 42 --format xml
  curator import record.json
  curator list`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Optional .env for LOG_LEVEL and CURATOR_CONFIG.
	_ = godotenv.Load()
	setupLogger()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: $CURATOR_CONFIG)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
}

// openStore loads the configuration and opens the database.
func openStore() (*config.Config, *storage.Store, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}
