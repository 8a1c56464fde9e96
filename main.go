package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/customeros/replycraft/config"
	"github.com/customeros/replycraft/internal/database"
	"github.com/customeros/replycraft/internal/repository"
	"github.com/customeros/replycraft/server"
)

func main() {
	app := &cli.App{
		Name:  "replycraft",
		Usage: "Drafts email replies with the Gemini API",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Run database migrations",
				Action: migrate,
			},
			{
				Name:   "server",
				Usage:  "Start the application server",
				Action: serve,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func migrate(_ *cli.Context) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	db, err := database.InitDatabase(cfg.DatabaseConfig)
	if err != nil {
		return fmt.Errorf("database initialization failed: %w", err)
	}

	if err := repository.MigrateDB(cfg.DatabaseConfig, db); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	log.Println("Database migration completed successfully")
	return nil
}

func serve(_ *cli.Context) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	db, err := database.InitDatabase(cfg.DatabaseConfig)
	if err != nil {
		return fmt.Errorf("database initialization failed: %w", err)
	}

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("ReplyCraft starting up...")

	srv, err := server.NewServer(cfg, db)
	if err != nil {
		return fmt.Errorf("server setup failed: %w", err)
	}

	if err := srv.Run(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	log.Println("Shutdown complete")
	return nil
}
