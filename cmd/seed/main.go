package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

const EnvDatabaseDSN = "DATABASE_DSN"

type fileSetter interface {
	SetFile(path string)
}

func main() {
	_ = godotenv.Load()

	var (
		dsn  = flag.String("dsn", "", "Database connection string")
		all  = flag.Bool("all", false, "Run all seeders")
		only = flag.String("seeder", "", "Run a single seeder by name")
		file = flag.String("file", "", "External seed file for -seeder (overrides embedded)")
		list = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range seeders {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	if !*all && *only == "" {
		fmt.Println("usage: seed -dsn <connection-string> [-all|-seeder <name>] [-file <path>] [-list]")
		flag.PrintDefaults()
		return
	}

	if *dsn == "" {
		*dsn = os.Getenv(EnvDatabaseDSN)
	}
	if *dsn == "" {
		log.Fatalf("database connection string required: use -dsn flag or %s env var", EnvDatabaseDSN)
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	ctx := context.Background()

	if *all {
		if err := runSeeders(ctx, db); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		fmt.Println("all seeders completed successfully")
		return
	}

	seeder, ok := getSeeder(*only)
	if !ok {
		log.Fatalf("seeder not found: %s", *only)
	}
	if *file != "" {
		if fs, ok := seeder.(fileSetter); ok {
			fs.SetFile(*file)
		}
	}
	if err := runSeeders(ctx, db, *only); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	fmt.Printf("%s seeded successfully\n", *only)
}
