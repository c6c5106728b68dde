package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// writeFixtureConfig lays a small two-file campaign down in a temp directory
// and returns a Config pointing at it.
func writeFixtureConfig(t *testing.T) Config {
	t.Helper()

	dir := t.TempDir()
	root := filepath.Join(dir, "embers")
	if err := os.MkdirAll(filepath.Join(root, "npcs"), 0o755); err != nil {
		t.Fatalf("mkdir npcs: %v", err)
	}

	npc := "# Thornwood\n\nStatus: dead\nAlso known as: The Old Smith\nLast seen: Session 4\n\nThe village blacksmith, buried by the mine collapse.\n"
	if err := os.WriteFile(filepath.Join(root, "npcs", "thornwood.md"), []byte(npc), 0o644); err != nil {
		t.Fatalf("write npc: %v", err)
	}
	rules := "# Flanking\n\nMelee attackers on opposite sides of a creature gain advantage.\n"
	if err := os.WriteFile(filepath.Join(root, "house-rules.md"), []byte(rules), 0o644); err != nil {
		t.Fatalf("write house rules: %v", err)
	}

	config := `{
  "active_campaign": "embers",
  "campaigns": {
    "embers": {"name": "Embers of the Fall", "layout": "standard", "root": "embers"}
  }
}`
	configPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return Config{
		ConfigPath: configPath,
		StorePath:  filepath.Join(dir, "rulings.db"),
	}
}

// startTestSession serves a fixture-backed server over in-memory transports
// and returns a connected client session.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())

	server, err := New(ctx, writeFixtureConfig(t))
	if err != nil {
		cancel()
		t.Fatalf("new server: %v", err)
	}

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), time.Second)

	type connectResult struct {
		session *mcp.ClientSession
		err     error
	}
	connectDone := make(chan connectResult, 1)
	go func() {
		session, err := client.Connect(clientCtx, clientTransport, nil)
		connectDone <- connectResult{session: session, err: err}
	}()

	var session *mcp.ClientSession
	select {
	case result := <-connectDone:
		if result.err != nil {
			clientCancel()
			cancel()
			t.Fatalf("connect client: %v", result.err)
		}
		session = result.session
	case <-time.After(2 * time.Second):
		clientCancel()
		cancel()
		t.Fatal("connect client timed out")
	}

	t.Cleanup(func() {
		_ = session.Close()
		clientCancel()
		cancel()
		select {
		case err := <-serveErr:
			if err != nil {
				t.Errorf("serve returned error: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("serve did not stop after cancel")
		}
	})
	return session
}

// callTool invokes a tool and decodes its structured output.
func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) map[string]any {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	if result.IsError {
		t.Fatalf("call %s returned tool error: %+v", name, result.Content)
	}

	raw, err := json.Marshal(result.StructuredContent)
	if err != nil {
		t.Fatalf("marshal %s output: %v", name, err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode %s output: %v", name, err)
	}
	return payload
}

// TestServerListsAllTools ensures every tool registers on the server.
func TestServerListsAllTools(t *testing.T) {
	session := startTestSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}

	want := []string{
		"list_campaigns", "switch_campaign", "get_campaign_info", "refresh_campaign",
		"lore_lookup", "build_context", "check_consistency",
		"query_rule", "check_house_rules", "compare_rules", "resolve_edge_case",
		"track_ruling", "roll_dice",
	}
	got := make(map[string]bool, len(tools.Tools))
	for _, tool := range tools.Tools {
		got[tool.Name] = true
	}
	if len(got) != len(want) {
		t.Errorf("expected %d tools, got %d", len(want), len(got))
	}
	for _, name := range want {
		if !got[name] {
			t.Errorf("tool %s not registered", name)
		}
	}
}

// TestServerRollsDiceDeterministically ensures a pinned seed reproduces a roll
// across calls.
func TestServerRollsDiceDeterministically(t *testing.T) {
	session := startTestSession(t)

	args := map[string]any{"dice_expression": "2d6+3", "seed": 7}
	first := callTool(t, session, "roll_dice", args)
	second := callTool(t, session, "roll_dice", args)

	total, ok := first["total"].(float64)
	if !ok {
		t.Fatalf("expected numeric total, got %T", first["total"])
	}
	if total < 5 || total > 15 {
		t.Errorf("total %v outside 2d6+3 bounds", total)
	}
	if second["total"] != first["total"] {
		t.Errorf("same seed produced different totals: %v vs %v", first["total"], second["total"])
	}
}

// TestServerResolvesAliasLookups ensures lore_lookup reaches the index built
// from the fixture corpus, alias included.
func TestServerResolvesAliasLookups(t *testing.T) {
	session := startTestSession(t)

	payload := callTool(t, session, "lore_lookup", map[string]any{"name": "the old smith"})
	if found, _ := payload["found"].(bool); !found {
		t.Fatalf("expected alias lookup to find a record, got %v", payload)
	}
	record, ok := payload["record"].(map[string]any)
	if !ok {
		t.Fatalf("expected record payload, got %T", payload["record"])
	}
	if record["name"] != "Thornwood" {
		t.Errorf("expected canonical name Thornwood, got %v", record["name"])
	}
}

// TestServerTracksRulings ensures track_ruling persists through the SQLite
// store wired at startup.
func TestServerTracksRulings(t *testing.T) {
	session := startTestSession(t)

	payload := callTool(t, session, "track_ruling", map[string]any{
		"session_number": 5,
		"situation":      "swinging from the chandelier",
		"ruling":         "acrobatics check at disadvantage",
	})
	recorded, ok := payload["recorded"].(map[string]any)
	if !ok {
		t.Fatalf("expected recorded ruling, got %v", payload)
	}
	if recorded["ruling"] != "acrobatics check at disadvantage" {
		t.Errorf("unexpected recorded ruling: %v", recorded["ruling"])
	}

	second := callTool(t, session, "track_ruling", map[string]any{
		"session_number": 5,
		"situation":      "same chandelier again",
		"ruling":         "same call",
	})
	recent, ok := second["recent"].([]any)
	if !ok || len(recent) != 1 {
		t.Fatalf("expected one prior ruling in recent, got %v", second["recent"])
	}
}

// TestServeWithTransportRejectsMissingServer ensures serve fails cleanly on
// nil or unconfigured servers.
func TestServeWithTransportRejectsMissingServer(t *testing.T) {
	var nilServer *Server
	if err := nilServer.serveWithTransport(context.Background(), &mcp.StdioTransport{}); err == nil {
		t.Fatal("expected error for nil server")
	}

	empty := &Server{}
	if err := empty.serveWithTransport(context.Background(), &mcp.StdioTransport{}); err == nil {
		t.Fatal("expected error for unconfigured server")
	}
}
