// Command parlor runs the game room server: a REST API for creating and
// inspecting rooms, a websocket endpoint clients play through, and an /mcp
// endpoint exposing room administration tools.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v3"

	"github.com/parlorhouse/parlor/api"
	"github.com/parlorhouse/parlor/config"
	"github.com/parlorhouse/parlor/game/registry"
	"github.com/parlorhouse/parlor/transport/mcp"
	"github.com/parlorhouse/parlor/transport/websocket"
)

const (
	Version = "1.0.0"
	AppName = "Parlor Game Room Server"
)

func main() {
	// A .env file is optional; real environment variables win either way.
	godotenv.Load()

	cmd := &cli.Command{
		Name:    "parlor",
		Usage:   "turn-based game room server",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Usage: "bind address (overrides config)"},
			&cli.IntFlag{Name: "port", Usage: "HTTP port (overrides config)"},
			&cli.StringFlag{Name: "config", Usage: "path to a config file"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if err := config.Load(cmd.String("config")); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cmd.IsSet("host") {
		viper.Set(config.WebHost, cmd.String("host"))
	}
	if cmd.IsSet("port") {
		viper.Set(config.WebPort, int(cmd.Int("port")))
	}
	initLogger()

	reg := registry.New()
	wsHandler := websocket.NewHandler(reg)
	apiServer := api.NewServer(reg, wsHandler, viper.GetInt(config.GameDefaultSeats))

	addr := fmt.Sprintf("%s:%d", viper.GetString(config.WebHost), viper.GetInt(config.WebPort))
	mcpClient := mcp.NewClient("http://" + addr)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpEndpoint(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("%s v%s listening on %s", AppName, Version, addr)
		logrus.Infof("REST API: http://%s/api", addr)
		logrus.Infof("WebSocket: ws://%s/ws/{code}", addr)
		logrus.Infof("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logrus.Infof("received %s, shutting down", sig)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// mcpEndpoint adapts the MCP message handler to plain HTTP. The websocket
// write timeouts do not apply here; MCP requests are simple req/resp.
func mcpEndpoint(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}
