package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "taskboard/docs"
	"taskboard/internal/config"
	"taskboard/internal/logger"
	"taskboard/internal/migrations"
	"taskboard/internal/server"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// @title        Taskboard API
// @version      1.0
// @description  Users, boards, lists, cards and their memberships.

// @host      localhost:3000
// @BasePath  /

// @tag.name         Users
// @tag.description  User management operations

// @tag.name         Boards
// @tag.description  Boards and their admin membership

// @tag.name         Board Users
// @tag.description  Board membership operations

// @tag.name         Lists
// @tag.description  List operations

// @tag.name         Cards
// @tag.description  Card operations

// @tag.name         Card Users
// @tag.description  Card ownership operations

// @schemes http
func main() {
	l := logger.New(os.Stderr, log.InfoLevel)

	app := &cli.Command{
		Name:           "taskboard",
		Usage:          "Kanban REST API backed by PostgreSQL",
		Version:        server.Version,
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			serveCommand(l),
			migrateCommand(l),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		l.Fatal("application error", "err", err)
	}
}

func serveCommand(l *log.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Listening port (overrides PORT)",
			},
			&cli.BoolFlag{
				Name:  "skip-migrations",
				Usage: "Do not apply migrations on startup (overrides RUN_MIGRATIONS)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(l)
			if err != nil {
				return err
			}
			if port := cmd.String("port"); port != "" {
				cfg.ServerPort = port
			}
			if cmd.Bool("skip-migrations") {
				cfg.RunMigrations = false
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s, err := server.Init(ctx, cfg, l)
			if err != nil {
				return fmt.Errorf("server initialization failed: %w", err)
			}
			return s.Run(ctx)
		},
	}
}

func migrateCommand(l *log.Logger) *cli.Command {
	run := func(step func(m *migrations.Migrator) error) cli.ActionFunc {
		return func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(l)
			if err != nil {
				return err
			}
			m, err := migrations.New(cfg.DatabaseURL(), l.WithPrefix("migrate"))
			if err != nil {
				return err
			}
			defer func() {
				if err := m.Close(); err != nil {
					l.Warn("closing migrator", "err", err)
				}
			}()
			return step(m)
		}
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "Apply all pending migrations",
				Action: run((*migrations.Migrator).Up),
			},
			{
				Name:   "down",
				Usage:  "Revert the most recent migration",
				Action: run((*migrations.Migrator).Down),
			},
			{
				Name:  "version",
				Usage: "Print the applied schema version",
				Action: run(func(m *migrations.Migrator) error {
					version, dirty, err := m.Version()
					if err != nil {
						return err
					}
					fmt.Printf("version=%d dirty=%t\n", version, dirty)
					return nil
				}),
			},
		},
	}
}

func loadConfig(l *log.Logger) (*config.Config, error) {
	cfg, warnings, err := config.Load()
	for _, w := range warnings {
		l.Warn(w)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, ok := logger.ParseLevel(cfg.LogLevel)
	if !ok {
		l.Warn("unknown LOG_LEVEL, using info", "value", cfg.LogLevel)
	}
	l.SetLevel(level)
	return cfg, nil
}
