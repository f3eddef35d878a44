package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/lab-catalog/internal/articles"
	"github.com/JaimeStill/lab-catalog/internal/bibliography"
)

// seedOwner is the first user in seeds/users.json.
var seedOwner = uuid.MustParse("0d6f8a8e-5c1b-4f0e-9a57-2b7f4c1d9e01")

// ArticleSeeder runs a plain-text reference list through the same
// segmentation and mapping used by document import and inserts the results.
type ArticleSeeder struct {
	file string
}

func (s *ArticleSeeder) Name() string        { return "articles" }
func (s *ArticleSeeder) Description() string { return "Seeds catalog articles from a reference list" }
func (s *ArticleSeeder) SetFile(path string) { s.file = path }

func (s *ArticleSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	content, err := readSeed(s.file, "seeds/references.txt")
	if err != nil {
		return err
	}

	parser, err := bibliography.NewParser(nil)
	if err != nil {
		return err
	}

	seg := parser.Extract(string(content))
	now := time.Now()

	for _, block := range seg.Blocks {
		cmd := articles.FromContent(block, seedOwner, now)

		var exists bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM articles WHERE title = $1 AND authors = $2)`,
			cmd.Title, cmd.Authors,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check article %q: %w", cmd.Title, err)
		}
		if exists {
			continue
		}

		if _, err := articles.Insert(ctx, tx, cmd); err != nil {
			return fmt.Errorf("insert article %q: %w", cmd.Title, err)
		}
	}
	return nil
}
