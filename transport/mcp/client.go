package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Client is a thin MCP tool server that proxies to the REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates an MCP tool server calling the REST API at baseURL.
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	c.initMCPServer()
	return c
}

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Parlor Game Room Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Parlor - turn-based game room administration.

AVAILABLE TOOLS:
- create_room: Create a new game room, returns its session code
- list_rooms: List live rooms with connection counts and game phase
- room_state: Get the public game state of one room

Players join rooms over the websocket endpoint using the session code.`),
	)
	c.registerTools()
}

func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_room",
		Description: "Create a new game room and return its session code",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_type": map[string]interface{}{
					"type":        "string",
					"description": "Game to play in the room (e.g. pass_the_pebble)",
				},
				"seats": map[string]interface{}{
					"type":        "number",
					"description": "Number of player seats (optional)",
				},
			},
			Required: []string{"game_type"},
		},
	}, c.handleCreateRoom)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rooms",
		Description: "List all live game rooms",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListRooms)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "room_state",
		Description: "Get the public game state of a room",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"code": map[string]interface{}{
					"type":        "string",
					"description": "Session code of the room",
				},
			},
			Required: []string{"code"},
		},
	}, c.handleRoomState)
}

// GetMCPServer exposes the underlying server for HTTP mounting.
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// Tool handlers

func (c *Client) handleCreateRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameType, _ := args["game_type"].(string)

	body := map[string]interface{}{"game_type": gameType}
	if seats, ok := args["seats"].(float64); ok {
		body["seats"] = int(seats)
	}

	var created struct {
		Code string `json:"code"`
	}
	if err := c.apiCall("POST", "/api/rooms", body, &created); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Created room: %s\nGame: %s\n", created.Code, gameType)), nil
}

func (c *Client) handleListRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int `json:"count"`
		Rooms []struct {
			Code           string `json:"code"`
			NumConnections int    `json:"num_connections"`
			Seats          int    `json:"seats"`
			IsStarted      bool   `json:"is_started"`
			IsOver         bool   `json:"is_over"`
		} `json:"rooms"`
	}
	if err := c.apiCall("GET", "/api/rooms", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Live rooms (%d):\n\n", response.Count)
	for _, rm := range response.Rooms {
		phase := "lobby"
		if rm.IsOver {
			phase = "finished"
		} else if rm.IsStarted {
			phase = "playing"
		}
		result += fmt.Sprintf("- %s (%d/%d connected, %s)\n",
			rm.Code, rm.NumConnections, rm.Seats, phase)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRoomState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	code, _ := args["code"].(string)

	var state map[string]interface{}
	if err := c.apiCall("GET", fmt.Sprintf("/api/rooms/%s/state", code), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pretty, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(pretty)), nil
}
