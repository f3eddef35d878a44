// Package bibliography turns extracted document text into candidate article
// blocks and pulls citation fields out of each block.
package bibliography

import (
	"bytes"
	"encoding/json"
	"strings"
)

// RecordType tags content that was stored as a structured Record.
const RecordType = "academic_paper"

// ParsedInfo holds the citation fields found in a block. Fields the parser
// could not find stay nil and are omitted from JSON.
type ParsedInfo struct {
	Authors       *string `json:"authors,omitempty"`
	Title         *string `json:"title,omitempty"`
	Journal       *string `json:"journal,omitempty"`
	PublishedDate *string `json:"publishedDate,omitempty"`
	Volume        *string `json:"volume,omitempty"`
	Issue         *string `json:"issue,omitempty"`
	Pages         *string `json:"pages,omitempty"`
	DOI           *string `json:"doi,omitempty"`
}

// Structured reports whether both authors and title were found.
func (p ParsedInfo) Structured() bool {
	return p.Authors != nil && p.Title != nil
}

// Record is the persisted form of a block whose citation parsed cleanly.
type Record struct {
	Type            string     `json:"type"`
	OriginalContent string     `json:"originalContent"`
	ParsedInfo      ParsedInfo `json:"parsedInfo"`
}

// NewRecord wraps block and info as a structured record.
func NewRecord(block string, info ParsedInfo) Record {
	return Record{
		Type:            RecordType,
		OriginalContent: block,
		ParsedInfo:      info,
	}
}

// Encode renders the record as compact JSON without HTML escaping.
func (r Record) Encode() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// DecodeRecord parses stored DocumentArticle content. It reports false for
// plain text and for JSON that is not a structured record.
func DecodeRecord(content string) (*Record, bool) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}

	var rec Record
	if err := json.Unmarshal([]byte(trimmed), &rec); err != nil {
		return nil, false
	}
	if rec.Type != RecordType {
		return nil, false
	}
	return &rec, true
}
