// Package mcp parses MCP command flags and runs the stdio server.
package mcp

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/emberfall/lorekeeper/internal/platform/config"
	"github.com/emberfall/lorekeeper/internal/platform/otel"
	"github.com/emberfall/lorekeeper/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	ConfigPath string `env:"LOREKEEPER_CONFIG"     envDefault:"config.json"`
	StorePath  string `env:"LOREKEEPER_STORE_PATH" envDefault:"rulings.db"`
	Campaign   string `env:"LOREKEEPER_CAMPAIGN"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "path to the campaigns JSON file")
	fs.StringVar(&cfg.StorePath, "store", cfg.StorePath, "path to the ruling journal database (empty disables it)")
	fs.StringVar(&cfg.Campaign, "campaign", cfg.Campaign, "campaign to activate at startup (default from config)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server on stdio.
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

	return service.Run(ctx, service.Config{
		ConfigPath: cfg.ConfigPath,
		StorePath:  cfg.StorePath,
		Campaign:   cfg.Campaign,
	})
}
