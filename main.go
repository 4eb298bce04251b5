package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"todo-server/confs"
	"todo-server/db"
	"todo-server/server"
	"todo-server/services"
	"todo-server/sessions"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "todo-server",
		Usage: "Multi-user to-do lists with a weather lookup",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file to load before reading the environment",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:  "port",
				Usage: "listen port (overrides PORT)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides LOG_LEVEL)",
			},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	// load config
	if err := confs.LoadEnvFile(cmd.String("env-file")); err != nil {
		return err
	}
	if port := cmd.String("port"); port != "" {
		os.Setenv("PORT", port)
	}
	if level := cmd.String("log-level"); level != "" {
		os.Setenv("LOG_LEVEL", level)
	}

	cfg, err := confs.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	logger := confs.NewLogger(os.Stderr, cfg.LogLevel)

	// connect to database Postgres
	database, err := db.Connect(cfg.DatabaseDSN, cfg.LogLevel == "debug", logger)
	if err != nil {
		return err
	}
	defer database.Close()

	if cfg.LogLevel != "debug" && os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// run server
	srv := server.NewServer(
		database,
		sessions.NewManager(cfg.SessionSecret, cfg.SessionTTL),
		services.NewWeatherClient(cfg.WeatherAPIKey),
		logger,
	)
	return srv.Start(ctx, cfg.Port)
}
