// Command migrate applies the embedded schema migrations to the configured database.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/JaimeStill/lab-catalog/internal/config"
	"github.com/JaimeStill/lab-catalog/migrations"
)

func main() {
	_ = godotenv.Load()

	steps := flag.Int("steps", 0, "Number of migrations for up/down (0 applies all)")
	flag.Usage = func() {
		fmt.Println("usage: migrate [-steps n] up|down|version")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	db, err := sql.Open("pgx", cfg.Database.Dsn())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	m, err := newMigrate(db)
	if err != nil {
		log.Fatalf("migrate init failed: %v", err)
	}

	if err := run(m, flag.Arg(0), *steps); err != nil {
		log.Fatalf("migrate %s failed: %v", flag.Arg(0), err)
	}
}

func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("open migrations: %w", err)
	}

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return nil, fmt.Errorf("database driver: %w", err)
	}

	return migrate.NewWithInstance("iofs", source, "pgx5", driver)
}

func run(m *migrate.Migrate, command string, steps int) error {
	var err error
	switch command {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	case "version":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			fmt.Println("no migrations applied")
			return nil
		}
		if verr != nil {
			return verr
		}
		fmt.Printf("version %d (dirty: %t)\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("no change")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("migrate %s complete\n", command)
	return nil
}
