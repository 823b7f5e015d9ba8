// Package tools defines the shared [Tool] type used by the investor tool
// package. Each tool package exports a constructor function that returns a
// slice of [Tool] values ready for registration with the MCP server.
package tools

import "github.com/modelcontextprotocol/go-sdk/mcp"

// Tool represents one exposed MCP tool ready for registration.
//
// The operation table is a static list of name/description/register triples,
// built once at startup and never mutated afterwards. Register
// binds the typed handler (and its derived parameter schema) to the server;
// the indirection exists because the SDK's typed AddTool is generic over the
// handler's argument struct.
type Tool struct {
	// Name is the tool's wire name (e.g. "search_investors_by_criteria").
	Name string

	// Description is the LLM-facing description of when to use the tool.
	Description string

	// Register adds the tool with its typed handler to the server.
	Register func(s *mcp.Server)
}

// RegisterAll registers every tool in ts with the server.
func RegisterAll(s *mcp.Server, ts []Tool) {
	for _, t := range ts {
		t.Register(s)
	}
}
