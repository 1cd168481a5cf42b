// The splitbridge MCP server exposes Splitwise expense splitting as
// typed MCP tools over stdio, for assistants that speak the Model
// Context Protocol instead of the Omi tool endpoints.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"splitbridge/internal/config"
	"splitbridge/internal/service"
	"splitbridge/internal/splitwise"
	"splitbridge/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	log := logging.Setup()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	client := splitwise.New(cfg.SplitwiseBaseURL, cfg.SplitwiseToken)
	svc := service.NewExpenseService(client, client, service.Options{
		Threshold:       cfg.MatchThreshold,
		DefaultCurrency: cfg.DefaultCurrency,
		Logger:          log,
	})

	server := mcp.NewServer(&mcp.Implementation{Name: "splitbridge", Version: "v1.0.0"}, nil)
	registerTools(server, &toolServer{svc: svc})

	log.Info("Starting MCP server on stdio")
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Error("MCP server stopped", "error", err)
		os.Exit(1)
	}
}
