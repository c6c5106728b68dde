package campaign

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/emberfall/lorekeeper/internal/platform/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "campaigns.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoadRegistryResolvesStandardLayout ensures standard-layout campaigns
// derive every role path from the campaign root.
func TestLoadRegistryResolvesStandardLayout(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{
		"active_campaign": "embers",
		"campaigns": {
			"embers": {"name": "Embers of Ruin", "layout": "standard", "root": "embers"}
		}
	}`)

	registry, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}

	resolved, err := registry.Resolve("embers")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Layout != LayoutStandard {
		t.Fatalf("expected standard layout, got %q", resolved.Layout)
	}
	if got, want := resolved.Paths[RoleUniverse], filepath.Join(dir, "embers", "universe.md"); got != want {
		t.Fatalf("universe path = %q, want %q", got, want)
	}
	if got, want := resolved.Paths[RoleNPCs], filepath.Join(dir, "embers", "npcs"); got != want {
		t.Fatalf("npcs path = %q, want %q", got, want)
	}
}

// TestLoadRegistryResolvesLegacyLayout ensures legacy campaigns take paths
// verbatim from the per-field map, with alias keys normalized to roles.
func TestLoadRegistryResolvesLegacyLayout(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{
		"campaigns": {
			"fragments": {
				"name": "Fragments",
				"layout": "legacy",
				"paths": {
					"world": "frag/world.md",
					"rules": "frag/table-rules.md",
					"npcs": "frag/cast",
					"retired-key": "frag/old"
				}
			}
		}
	}`)

	registry, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}

	resolved, err := registry.Resolve("fragments")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got, want := resolved.Paths[RoleUniverse], filepath.Join(dir, "frag", "world.md"); got != want {
		t.Fatalf("universe path = %q, want %q", got, want)
	}
	if got, want := resolved.Paths[RoleHouseRules], filepath.Join(dir, "frag", "table-rules.md"); got != want {
		t.Fatalf("house rules path = %q, want %q", got, want)
	}
	if resolved.HasRole(RoleSessions) {
		t.Fatal("expected sessions role to be absent")
	}
}

// TestLoadRegistryRejectsUnsupportedLayout ensures an unknown layout kind
// fails at startup with UNSUPPORTED_LAYOUT.
func TestLoadRegistryRejectsUnsupportedLayout(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{
		"campaigns": {
			"weird": {"name": "Weird", "layout": "sharded", "root": "weird"}
		}
	}`)

	_, err := LoadRegistry(path)
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.IsCode(err, apperrors.CodeUnsupportedLayout) {
		t.Fatalf("expected UNSUPPORTED_LAYOUT, got %v", err)
	}
}

// TestResolveUnknownCampaign ensures unknown identifiers fail with
// UNKNOWN_CAMPAIGN and empty identifiers with CAMPAIGN_ID_EMPTY.
func TestResolveUnknownCampaign(t *testing.T) {
	registry, err := NewRegistry(Config{
		Campaigns: map[string]EntryConfig{
			"embers": {Layout: "standard", Root: "embers"},
		},
	}, t.TempDir())
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	if _, err := registry.Resolve("nope"); !apperrors.IsCode(err, apperrors.CodeUnknownCampaign) {
		t.Fatalf("expected UNKNOWN_CAMPAIGN, got %v", err)
	}
	if _, err := registry.Resolve("  "); !apperrors.IsCode(err, apperrors.CodeCampaignIDEmpty) {
		t.Fatalf("expected CAMPAIGN_ID_EMPTY, got %v", err)
	}
}

// TestDefaultIDFallsBackToFirstCampaign ensures the default campaign is the
// first identifier in sorted order when none is marked active.
func TestDefaultIDFallsBackToFirstCampaign(t *testing.T) {
	registry, err := NewRegistry(Config{
		Campaigns: map[string]EntryConfig{
			"zephyr": {Layout: "standard", Root: "z"},
			"aurora": {Layout: "standard", Root: "a"},
		},
	}, t.TempDir())
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if registry.DefaultID() != "aurora" {
		t.Fatalf("expected default aurora, got %q", registry.DefaultID())
	}

	campaigns := registry.List()
	if len(campaigns) != 2 || campaigns[0].ID != "aurora" || campaigns[1].ID != "zephyr" {
		t.Fatalf("unexpected list order: %+v", campaigns)
	}
}

// TestCoreRulesPathAppliesToEveryCampaign ensures a configured core rules
// path resolves onto each campaign regardless of layout.
func TestCoreRulesPathAppliesToEveryCampaign(t *testing.T) {
	dir := t.TempDir()
	registry, err := NewRegistry(Config{
		CoreRulesPath: "core",
		Campaigns: map[string]EntryConfig{
			"embers": {Layout: "standard", Root: "embers"},
		},
	}, dir)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	resolved, err := registry.Resolve("embers")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got, want := resolved.Paths[RoleCoreRules], filepath.Join(dir, "core"); got != want {
		t.Fatalf("core rules path = %q, want %q", got, want)
	}
}
