// Package main runs the IronLog MCP server over stdio for one user (for local
// assistant use). The same tools are also served by the main backend at /mcp over HTTP,
// bound to the logged in user.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/ironlog/internal/config"
	"github.com/2beens/ironlog/internal/db"
	"github.com/2beens/ironlog/internal/gymstats/analytics"
	"github.com/2beens/ironlog/internal/gymstats/bodyweight"
	gymstatsmcp "github.com/2beens/ironlog/internal/gymstats/mcp"
	"github.com/2beens/ironlog/internal/gymstats/sessions"
	"github.com/2beens/ironlog/internal/logging"
	"github.com/2beens/ironlog/internal/users"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	username := flag.String("username", "", "IronLog user whose data the tools read")
	flag.Parse()

	// stdout carries the MCP protocol, logs go to stderr only
	log.SetOutput(os.Stderr)

	if *username == "" {
		log.Fatal("-username is required")
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.SetLevel(logging.GetLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     os.Getenv("IRONLOG_DB_PASS"),
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	user, err := users.NewRepo(dbPool).GetByUsername(ctx, *username)
	if err != nil {
		log.Fatalf("get user %s: %v", *username, err)
	}
	log.Debugf("serving mcp tools for user %s [%d]", user.Username, user.ID)

	service := gymstatsmcp.NewContextService(
		gymstatsmcp.NewPoolSchemaRepo(dbPool),
		analytics.NewAnalyzer(analytics.NewRepo(dbPool)),
		sessions.NewRepo(dbPool),
		bodyweight.NewRepo(dbPool),
	)
	server := gymstatsmcp.NewServer(service, user.ID)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}
