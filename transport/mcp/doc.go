// Package mcp exposes room administration as MCP tools.
//
// The tool server is a thin client of the REST API: every tool call is
// translated into an HTTP request against the running server, so the tools
// can never bypass the room locking or see state the API would not show.
package mcp
