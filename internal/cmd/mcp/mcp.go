// Package mcp parses MCP command flags and serves the dice tools on stdio.
package mcp

import (
	"context"
	"flag"
	"log"
	"time"

	mcpserver "github.com/Kartagia/diceodel/internal/mcp"
	"github.com/Kartagia/diceodel/internal/platform/config"
	"github.com/Kartagia/diceodel/internal/platform/otel"
	"github.com/Kartagia/diceodel/internal/services/roller/service"
	"github.com/Kartagia/diceodel/internal/services/roller/storage/sqlite"
)

// Config holds MCP command configuration.
type Config struct {
	StoragePath string `env:"DICEODEL_STORAGE_PATH" envDefault:""`
	Transport   string `env:"DICEODEL_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.StoragePath, "storage", cfg.StoragePath, "SQLite database path, empty disables roll history")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP dice server.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	svc, closeStore, err := newService(cfg.StoragePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	return mcpserver.Run(ctx, mcpserver.Config{Transport: mcpserver.TransportKind(cfg.Transport)}, svc)
}

// newService builds the roller service, with SQLite-backed history when a
// storage path is configured.
func newService(storagePath string) (*service.Service, func() error, error) {
	if storagePath == "" {
		return service.New(nil), func() error { return nil }, nil
	}

	store, err := sqlite.Open(storagePath)
	if err != nil {
		return nil, nil, err
	}
	return service.New(store), store.Close, nil
}
