package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/emberfall/lorekeeper/internal/campaign"
	"github.com/emberfall/lorekeeper/internal/services/mcp/domain"
	"github.com/emberfall/lorekeeper/internal/storage"
	"github.com/emberfall/lorekeeper/internal/storage/sqlite"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "lorekeeper"
	serverVersion = "0.1.0"
)

// Config configures the MCP server.
type Config struct {
	// ConfigPath locates the campaigns JSON document.
	ConfigPath string
	// StorePath locates the SQLite ruling journal. Empty disables ruling
	// persistence; track_ruling then fails with STORAGE_UNAVAILABLE.
	StorePath string
	// Campaign overrides the config's active campaign at startup.
	Campaign string
}

// Server hosts the MCP server over the knowledge engine.
type Server struct {
	mcpServer *mcp.Server
	session   *domain.Session
	store     *sqlite.Store
}

// New loads the campaign registry, activates the startup campaign, and
// binds every tool handler. Configuration problems fail here, before the
// first tool call.
func New(ctx context.Context, cfg Config) (*Server, error) {
	registry, err := campaign.LoadRegistry(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	session := domain.NewSession(registry)

	startupID := strings.TrimSpace(cfg.Campaign)
	if startupID == "" {
		startupID = registry.DefaultID()
	}
	resolved, report, err := session.Activate(ctx, startupID)
	if err != nil {
		return nil, fmt.Errorf("activate campaign %q: %w", startupID, err)
	}
	if report.Partial() {
		log.Printf("campaign %s loaded partially: %d missing paths, %d warnings",
			resolved.ID, len(report.Missing), len(report.Warnings)+len(report.FileErrors))
	}
	log.Printf("campaign %s active: %d documents, %d records", resolved.ID, report.Documents, report.Records)

	server := &Server{session: session}
	var rulings storage.RulingStore
	if strings.TrimSpace(cfg.StorePath) != "" {
		store, err := sqlite.Open(cfg.StorePath)
		if err != nil {
			return nil, fmt.Errorf("open ruling store: %w", err)
		}
		server.store = store
		rulings = store
	}

	server.mcpServer = mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerTools(server.mcpServer, session, rulings)
	return server, nil
}

// Serve runs the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Close releases the ruling store held by the server.
func (s *Server) Close() error {
	if s == nil || s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	return err
}

// serveWithTransport starts the MCP server using the provided transport.
// The server and the ruling store share a single exit path so cleanup is
// consistent however the run ends.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close ruling store: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close ruling store: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// Run is the service entrypoint for MCP and blocks until context
// cancellation.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// seedFromClock supplies roll entropy when a caller does not pin a seed.
func seedFromClock() int64 {
	return time.Now().UnixNano()
}
