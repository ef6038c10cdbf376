package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/KAsare1/blog-server/cmd/api"
	"github.com/KAsare1/blog-server/cmd/utils"
	"github.com/KAsare1/blog-server/config"
	"github.com/KAsare1/blog-server/db"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	log := utils.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogJSON)

	// Check for command-line arguments
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			runMigrations(cfg, log)
			return
		case "clear-db":
			runDatabaseClear(cfg, log)
			return
		default:
			fatal(log, "unknown command", "command", os.Args[1])
		}
	}

	startServer(cfg, log)
}

func fatal(log *slog.Logger, msg string, args ...any) {
	log.Error(msg, args...)
	os.Exit(1)
}

func openDatabase(cfg config.Config, log *slog.Logger) *gorm.DB {
	DB, err := db.NewStorage(db.OptionsFromConfig(cfg, log))
	if err != nil {
		fatal(log, "database initialization error", "error", err)
	}
	log.Info("connected to the database", "driver", cfg.DBDriver)
	return DB
}

func closeDatabase(DB *gorm.DB, log *slog.Logger) {
	if err := db.Close(DB); err != nil {
		log.Warn("closing database failed", "error", err)
		return
	}
	log.Info("database connection closed")
}

func runMigrations(cfg config.Config, log *slog.Logger) {
	DB := openDatabase(cfg, log)
	defer closeDatabase(DB, log)

	if err := db.Migrate(DB, utils.Named(log, "db.migrate")); err != nil {
		log.Error("migration error", "error", err)
		return
	}
	log.Info("migrations completed successfully")
}

func startServer(cfg config.Config, log *slog.Logger) {
	DB := openDatabase(cfg, log)
	defer closeDatabase(DB, log)

	if cfg.DBDriver == "sqlite" {
		// local databases are created on first start
		if err := db.Migrate(DB, utils.Named(log, "db.migrate")); err != nil {
			log.Error("migration error", "error", err)
			return
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewApiServer(cfg, DB, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", "error", err)
		}
		return
	case <-ctx.Done():
	}

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	if err := <-errCh; err != nil {
		log.Error("server error", "error", err)
	}
}

func runDatabaseClear(cfg config.Config, log *slog.Logger) {
	DB := openDatabase(cfg, log)
	defer closeDatabase(DB, log)

	log.Info("preparing to clear database...")
	in := bufio.NewReader(os.Stdin)

	fmt.Print("Are you sure you want to clear the database? (yes/no): ")
	confirmation, _ := in.ReadString('\n')
	if strings.TrimSpace(confirmation) != "yes" {
		log.Info("database clearing cancelled")
		return
	}

	fmt.Print("Enter table names to clear (comma separated) or leave blank to clear all: ")
	tableNames, _ := in.ReadString('\n')

	var tables []interface{}
	if names := strings.TrimSpace(tableNames); names != "" {
		for _, name := range strings.Split(names, ",") {
			table, ok := db.TableByName(name)
			if !ok {
				log.Warn("unknown table", "table", name)
				continue
			}
			tables = append(tables, table)
		}
		if len(tables) == 0 {
			log.Info("no known tables given, nothing cleared")
			return
		}
	}

	if err := db.DropTables(DB, utils.Named(log, "db.clear"), tables); err != nil {
		log.Error("error clearing database", "error", err)
		return
	}
	log.Info("database cleared successfully")
}
