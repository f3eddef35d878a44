package articles

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/JaimeStill/lab-catalog/internal/bibliography"
)

const (
	excerptLen     = 50
	minYear        = 1900
	unknownAuthor  = "unknown author"
	unknownJournal = "unknown journal"
)

var (
	legacyYear   = regexp.MustCompile(`(\d{4})`)
	legacySpaces = regexp.MustCompile(`[,\s]+`)
)

// FromContent derives a catalog entry from stored block content. Structured
// records map their parsed fields; plain text falls back to a split on
// periods into authors, title, and journal. now supplies the published date
// when no usable year is found.
func FromContent(content string, createdBy uuid.UUID, now time.Time) CreateCommand {
	cmd := CreateCommand{
		PublishedDate: now,
		Abstract:      content,
		Status:        StatusPublished,
		CreatedBy:     createdBy,
	}

	if rec, ok := bibliography.DecodeRecord(content); ok {
		fromRecord(&cmd, rec, now)
		return cmd
	}

	fromLegacy(&cmd, content)
	return cmd
}

func fromRecord(cmd *CreateCommand, rec *bibliography.Record, now time.Time) {
	info := rec.ParsedInfo

	cmd.Title = value(info.Title)
	cmd.Authors = value(info.Authors)
	cmd.Journal = value(info.Journal)
	cmd.DOI = value(info.DOI)
	cmd.Volume = value(info.Volume)
	cmd.Issue = value(info.Issue)
	cmd.Pages = value(info.Pages)
	cmd.Abstract = rec.OriginalContent

	if info.PublishedDate != nil {
		if year, err := strconv.Atoi(*info.PublishedDate); err == nil && year > minYear && year <= now.Year() {
			cmd.PublishedDate = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		}
	}

	if cmd.Title == "" {
		cmd.Title = excerpt(rec.OriginalContent)
	}
}

func fromLegacy(cmd *CreateCommand, content string) {
	parts := strings.Split(content, ".")
	if len(parts) < 3 {
		cmd.Title = excerpt(content)
		cmd.Authors = unknownAuthor
		cmd.Journal = unknownJournal
		return
	}

	cmd.Authors = strings.TrimSpace(parts[0])
	cmd.Title = strings.TrimSpace(parts[1])

	journal := strings.TrimSpace(parts[2])
	m := legacyYear.FindStringSubmatch(journal)
	if m == nil {
		cmd.Journal = journal
		return
	}

	year, _ := strconv.Atoi(m[1])
	cmd.PublishedDate = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	journal = strings.Replace(journal, m[0], "", 1)
	cmd.Journal = strings.TrimSpace(legacySpaces.ReplaceAllString(journal, " "))
}

func excerpt(s string) string {
	if utf8.RuneCountInString(s) <= excerptLen {
		return s
	}
	return string([]rune(s)[:excerptLen]) + "..."
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
