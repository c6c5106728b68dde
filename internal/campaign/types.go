// Package campaign resolves campaign identifiers to concrete document
// layouts on disk.
package campaign

// Layout identifies the path convention used to locate campaign documents.
type Layout string

const (
	// LayoutLegacy names every document path explicitly in configuration.
	LayoutLegacy Layout = "legacy"
	// LayoutStandard derives document paths from a single campaign root.
	LayoutStandard Layout = "standard"
)

// Role identifies the purpose a document path serves within a campaign.
type Role string

const (
	RoleUniverse   Role = "universe"
	RoleHouseRules Role = "house-rules"
	RoleCoreRules  Role = "core-rules"
	RoleNPCs       Role = "npcs"
	RoleSessions   Role = "sessions"
	RoleStory      Role = "story"
	RolePlayers    Role = "players"
)

// standardSubpaths maps each role to its relative location under a
// standard-layout campaign root. Directory roles carry a trailing
// separator-free name; the loader discovers *.md files beneath them.
var standardSubpaths = map[Role]string{
	RoleUniverse:   "universe.md",
	RoleHouseRules: "house-rules.md",
	RoleNPCs:       "npcs",
	RoleSessions:   "sessions",
	RoleStory:      "story",
	RolePlayers:    "players",
}

// Roles lists every recognized document role in deterministic order.
// The loader walks roles in this order so document load order, and with it
// index merge order, is reproducible across rebuilds.
var Roles = []Role{
	RoleCoreRules,
	RoleUniverse,
	RoleHouseRules,
	RoleNPCs,
	RoleSessions,
	RoleStory,
	RolePlayers,
}

// Campaign is a resolved campaign: identifier, display metadata, layout kind
// and the absolute path for each recognized document role. A role missing
// from Paths is explicitly absent; the loader treats absence as zero
// documents for that role, never as an error.
type Campaign struct {
	ID          string
	Name        string
	Description string
	Layout      Layout
	Paths       map[Role]string
}

// HasRole reports whether the campaign resolved a path for the role.
func (c Campaign) HasRole(role Role) bool {
	_, ok := c.Paths[role]
	return ok
}
