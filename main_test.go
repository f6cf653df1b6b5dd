package main

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/parlorhouse/parlor/transport/mcp"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}

	expectedVersion := "1.0.0"
	if Version != expectedVersion {
		t.Errorf("Expected version %s, got %s", expectedVersion, Version)
	}

	expectedAppName := "Parlor Game Room Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

// Note: main() and run() start a listening server and block, so they are
// exercised end to end by the transport tests rather than here.

func TestMCPEndpointMethodNotAllowed(t *testing.T) {
	handler := mcpEndpoint(mcp.NewClient("http://localhost:8193"))

	req := httptest.NewRequest("GET", "/mcp", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != 405 {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestMCPEndpointHandlesMessage(t *testing.T) {
	handler := mcpEndpoint(mcp.NewClient("http://localhost:8193"))

	body := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	req := httptest.NewRequest("POST", "/mcp", body)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	response := rec.Body.String()
	for _, tool := range []string{"create_room", "list_rooms", "room_state"} {
		if !strings.Contains(response, tool) {
			t.Errorf("tools/list response missing %s: %s", tool, response)
		}
	}
}
