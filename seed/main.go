package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/lac-hong-legacy/lecture_api/seed/seeders"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, catalog, profiles")
		driver   = flag.String("driver", envOr("DB_DRIVER", "sqlite"), "Database driver: sqlite or postgres")
		dbPath   = flag.String("db", "", "SQLite path or postgres DSN (overrides DB_DATABASE / DATABASE_URL)")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	db, target, err := open(*driver, *dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Printf("Connected to %s database: %s", *driver, target)

	mainSeeder := seeders.NewMainSeeder(db)
	if err := mainSeeder.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	switch *seedType {
	case "all":
		log.Println("Running complete database seeding...")
		err = mainSeeder.SeedAll()
	case "catalog":
		log.Println("Seeding subjects, chapters and lectures only...")
		err = mainSeeder.SeedCatalogOnly()
	case "profiles":
		log.Println("Seeding profiles only...")
		err = mainSeeder.SeedProfilesOnly()
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'catalog' or 'profiles'", *seedType)
	}
	if err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	log.Println("Seeding operation completed successfully!")
}

func open(driver, target string) (*gorm.DB, string, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	switch driver {
	case "sqlite":
		if target == "" {
			target = envOr("DB_DATABASE", "lecture_api.db")
		}
		db, err := gorm.Open(sqlite.Open(target), cfg)
		return db, target, err
	case "postgres":
		if target == "" {
			target = os.Getenv("DATABASE_URL")
		}
		if target == "" {
			return nil, "", fmt.Errorf("postgres needs -db or DATABASE_URL")
		}
		db, err := gorm.Open(postgres.Open(target), cfg)
		return db, "DATABASE_URL", err
	default:
		return nil, "", fmt.Errorf("unknown driver %q", driver)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func showHelp() {
	log.Print(`
Database seeding tool for the lecture API

Usage: go run ./seed [flags]

Flags:
  -type string
        Type of seeding to perform (default "all")
        Options: all, catalog, profiles
  -driver string
        sqlite or postgres (default DB_DRIVER, then sqlite)
  -db string
        SQLite path or postgres DSN
  -help
        Show this help message

Examples:
  # Seed everything into the default sqlite file
  go run ./seed

  # Seed only the catalog into postgres
  go run ./seed -driver=postgres -type=catalog

Environment Variables:
  DB_DRIVER    - sqlite or postgres
  DB_DATABASE  - SQLite path (default: lecture_api.db)
  DATABASE_URL - Postgres DSN
`)
}
