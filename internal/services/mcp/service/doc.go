// Package service hosts the MCP server: it wires the campaign registry,
// the active-campaign session, and the ruling store into the tool surface
// defined by the domain package and serves it over stdio.
package service
