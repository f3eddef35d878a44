// Package main provides the seed command for populating the database with
// initial or demonstration data. Seeders run individually or together within
// a single transaction.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/JaimeStill/lab-catalog/pkg/repository"
)

// Seeder defines the interface for database seeders.
type Seeder interface {
	Name() string
	Description() string

	// Seed executes the seeding logic within the provided transaction.
	Seed(ctx context.Context, tx *sql.Tx) error
}

// seeders run in this order; articles reference seeded users.
var seeders = []Seeder{
	&UserSeeder{},
	&ArticleSeeder{},
}

func getSeeder(name string) (Seeder, bool) {
	for _, s := range seeders {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// runSeeders executes the named seeders, or all of them when names is empty,
// in one transaction.
func runSeeders(ctx context.Context, db *sql.DB, names ...string) error {
	selected := seeders
	if len(names) > 0 {
		selected = make([]Seeder, 0, len(names))
		for _, name := range names {
			s, ok := getSeeder(name)
			if !ok {
				return fmt.Errorf("seeder not found: %s", name)
			}
			selected = append(selected, s)
		}
	}

	_, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (struct{}, error) {
		for _, s := range selected {
			if err := s.Seed(ctx, tx); err != nil {
				return struct{}{}, fmt.Errorf("seed %s: %w", s.Name(), err)
			}
		}
		return struct{}{}, nil
	})
	return err
}

// readSeed returns the external file at path when set, the embedded file otherwise.
func readSeed(path, embedded string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		return data, nil
	}

	data, err := seedFiles.ReadFile(embedded)
	if err != nil {
		return nil, fmt.Errorf("read embedded seed file: %w", err)
	}
	return data, nil
}
