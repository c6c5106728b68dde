// Package domain defines the MCP tool surface: typed tool inputs and
// outputs, the tool schemas, and the handlers that route tool calls into the
// knowledge engine, the rules arbiter, and the ruling store.
package domain
