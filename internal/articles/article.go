// Package articles serves the public research article catalog and derives
// catalog entries from imported document blocks.
package articles

import (
	"time"

	"github.com/google/uuid"
)

// StatusPublished is the status assigned to imported articles.
const StatusPublished = "published"

// Article is a catalog entry.
type Article struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Authors       string     `json:"authors"`
	Journal       string     `json:"journal"`
	Volume        string     `json:"volume"`
	Issue         string     `json:"issue"`
	Pages         string     `json:"pages"`
	PublishedDate time.Time  `json:"published_date"`
	DOI           string     `json:"doi"`
	Abstract      string     `json:"abstract"`
	Keywords      string     `json:"keywords"`
	ImpactFactor  *float64   `json:"impact_factor"`
	CitationCount int        `json:"citation_count"`
	OpenAccess    bool       `json:"open_access"`
	Category      *string    `json:"category"`
	Status        string     `json:"status"`
	CreatedBy     *uuid.UUID `json:"created_by"`
	UpdatedBy     *uuid.UUID `json:"updated_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateCommand holds the fields for a new catalog entry.
type CreateCommand struct {
	Title         string
	Authors       string
	Journal       string
	Volume        string
	Issue         string
	Pages         string
	PublishedDate time.Time
	DOI           string
	Abstract      string
	Keywords      string
	ImpactFactor  *float64
	CitationCount int
	OpenAccess    bool
	Category      *string
	Status        string
	CreatedBy     uuid.UUID
}
