package campaign

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/emberfall/lorekeeper/internal/platform/errors"
)

// Config mirrors the on-disk campaigns.json document.
type Config struct {
	ActiveCampaign string                 `json:"active_campaign"`
	CoreRulesPath  string                 `json:"core_rules_path,omitempty"`
	Campaigns      map[string]EntryConfig `json:"campaigns"`
}

// EntryConfig describes one campaign entry in configuration.
type EntryConfig struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Layout      string            `json:"layout"`
	Root        string            `json:"root,omitempty"`
	Paths       map[string]string `json:"paths,omitempty"`
}

// Registry resolves campaign identifiers to resolved Campaigns. It is loaded
// once at process start and read-only afterwards; the active-campaign slot
// lives with the dispatch layer, not here.
type Registry struct {
	campaigns map[string]Campaign
	order     []string
	defaultID string
}

// LoadRegistry reads campaign configuration from the JSON file at path and
// resolves every entry eagerly. Relative paths in the config resolve against
// the config file's directory. An unrecognized layout kind fails here, at
// startup, so broken configuration is caught before the first tool call.
func LoadRegistry(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeConfigInvalid, fmt.Sprintf("read config %s", path), err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeConfigInvalid, fmt.Sprintf("parse config %s", path), err)
	}

	return NewRegistry(cfg, filepath.Dir(path))
}

// NewRegistry resolves a parsed Config against a base directory.
func NewRegistry(cfg Config, base string) (*Registry, error) {
	if len(cfg.Campaigns) == 0 {
		return nil, apperrors.New(apperrors.CodeConfigInvalid, "config defines no campaigns")
	}

	registry := &Registry{campaigns: make(map[string]Campaign, len(cfg.Campaigns))}
	for id, entry := range cfg.Campaigns {
		resolved, err := resolveEntry(id, entry, cfg.CoreRulesPath, base)
		if err != nil {
			return nil, err
		}
		registry.campaigns[id] = resolved
		registry.order = append(registry.order, id)
	}
	sort.Strings(registry.order)

	registry.defaultID = cfg.ActiveCampaign
	if registry.defaultID == "" {
		registry.defaultID = registry.order[0]
	}
	if _, ok := registry.campaigns[registry.defaultID]; !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeUnknownCampaign,
			fmt.Sprintf("active campaign %q is not defined", registry.defaultID),
			map[string]string{"campaign_id": registry.defaultID})
	}
	return registry, nil
}

// Resolve returns the resolved Campaign for the identifier.
func (r *Registry) Resolve(id string) (Campaign, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Campaign{}, apperrors.New(apperrors.CodeCampaignIDEmpty, "campaign id is required")
	}
	resolved, ok := r.campaigns[id]
	if !ok {
		return Campaign{}, apperrors.WithMetadata(apperrors.CodeUnknownCampaign,
			fmt.Sprintf("campaign %q is not defined", id),
			map[string]string{"campaign_id": id})
	}
	return resolved, nil
}

// List returns every resolved campaign in identifier order.
func (r *Registry) List() []Campaign {
	out := make([]Campaign, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.campaigns[id])
	}
	return out
}

// DefaultID returns the campaign marked active in configuration, falling back
// to the first campaign by identifier order.
func (r *Registry) DefaultID() string {
	return r.defaultID
}

// resolveEntry turns one config entry into a Campaign with absolute paths.
func resolveEntry(id string, entry EntryConfig, coreRules, base string) (Campaign, error) {
	resolved := Campaign{
		ID:          id,
		Name:        entry.Name,
		Description: entry.Description,
		Layout:      Layout(entry.Layout),
		Paths:       make(map[Role]string),
	}
	if resolved.Name == "" {
		resolved.Name = id
	}

	switch resolved.Layout {
	case LayoutLegacy:
		for key, rel := range entry.Paths {
			role, ok := legacyRole(key)
			if !ok {
				// Unknown keys in a legacy path map are skipped rather than
				// rejected: old configs carry retired roles.
				continue
			}
			resolved.Paths[role] = absPath(base, rel)
		}
	case LayoutStandard:
		if entry.Root == "" {
			return Campaign{}, apperrors.WithMetadata(apperrors.CodeConfigInvalid,
				fmt.Sprintf("campaign %q: standard layout requires a root", id),
				map[string]string{"campaign_id": id})
		}
		root := absPath(base, entry.Root)
		for role, sub := range standardSubpaths {
			resolved.Paths[role] = filepath.Join(root, sub)
		}
	default:
		return Campaign{}, apperrors.WithMetadata(apperrors.CodeUnsupportedLayout,
			fmt.Sprintf("campaign %q: layout %q is not supported", id, entry.Layout),
			map[string]string{"campaign_id": id, "layout": entry.Layout})
	}

	if coreRules != "" {
		resolved.Paths[RoleCoreRules] = absPath(base, coreRules)
	}
	return resolved, nil
}

// legacyRole maps a legacy path-map key to a document role.
func legacyRole(key string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "universe", "world", "lore":
		return RoleUniverse, true
	case "house-rules", "houserules", "rules":
		return RoleHouseRules, true
	case "npcs", "characters":
		return RoleNPCs, true
	case "sessions", "session-notes":
		return RoleSessions, true
	case "story", "plot":
		return RoleStory, true
	case "players", "pcs":
		return RolePlayers, true
	}
	return "", false
}

func absPath(base, rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(base, rel)
}
