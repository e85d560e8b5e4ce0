package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"storefront/internal/config"

	"github.com/golang-migrate/migrate"
	_ "github.com/golang-migrate/migrate/database/sqlite3"
	_ "github.com/golang-migrate/migrate/source/file"
)

func main() {
	var (
		upFlag      = flag.Bool("up", false, "Apply all pending migrations")
		downFlag    = flag.Bool("down", false, "Roll back one migration")
		versionFlag = flag.Bool("version", false, "Show current migration version")
		dir         = flag.String("dir", "migrations", "Migrations directory")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	m, err := migrate.New(
		fmt.Sprintf("file://%s", *dir),
		fmt.Sprintf("sqlite3://%s", cfg.Database.Path),
	)
	if err != nil {
		log.Fatalf("Failed to init migrator: %v", err)
	}
	defer m.Close()

	switch {
	case *upFlag:
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		fmt.Println("All migrations completed successfully!")
	case *downFlag:
		if err := m.Steps(-1); err != nil {
			log.Fatalf("Failed to roll back: %v", err)
		}
		fmt.Println("Rolled back one migration")
	case *versionFlag:
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("Failed to get version: %v", err)
		}
		fmt.Printf("Version: %d (dirty: %v)\n", version, dirty)
	default:
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/migrate/main.go -up        # Apply pending migrations")
		fmt.Println("  go run cmd/migrate/main.go -down      # Roll back one migration")
		fmt.Println("  go run cmd/migrate/main.go -version   # Show current version")
		os.Exit(1)
	}
}
