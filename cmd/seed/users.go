package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type seedUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// UserSeeder mirrors identity-service users that own seeded content.
type UserSeeder struct {
	file string
}

func (s *UserSeeder) Name() string        { return "users" }
func (s *UserSeeder) Description() string { return "Seeds catalog users mirrored from the identity service" }
func (s *UserSeeder) SetFile(path string) { s.file = path }

func (s *UserSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	users, err := s.load()
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO users (id, username, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			updated_at = NOW()`

	for _, u := range users {
		if _, err := tx.ExecContext(ctx, query, u.ID, u.Username); err != nil {
			return fmt.Errorf("save user %s: %w", u.Username, err)
		}
	}
	return nil
}

func (s *UserSeeder) load() ([]seedUser, error) {
	content, err := readSeed(s.file, "seeds/users.json")
	if err != nil {
		return nil, err
	}

	var data struct {
		Users []seedUser `json:"users"`
	}
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	if len(data.Users) == 0 {
		return nil, fmt.Errorf("seed data contains no users")
	}
	return data.Users, nil
}
