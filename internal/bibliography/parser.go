package bibliography

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultJournalSuffixes are the words that end a recognized journal name.
var DefaultJournalSuffixes = []string{
	"Medicine", "Science", "Journal", "Review", "Research",
	"Nature", "Cell", "PNAS", "NEJM", "Lancet",
}

var (
	authorsPattern = regexp.MustCompile(`^([^.]+[#*]*(?:,\s*[^.]+[#*]*)*)\.\s*`)
	titlePattern   = regexp.MustCompile(`\.\s*([^.]+(?:\.[^.]*)*?)\s*\.`)
	yearPattern    = regexp.MustCompile(`\b(20\d{2})\b`)
	volumePattern  = regexp.MustCompile(`\b(\d+)\s*\(\s*(\d+)\s*\)`)
	pagesPattern   = regexp.MustCompile(`:\s*([a-zA-Z]*\d+(?:-\d+)?|e\d+)\s*\.`)
	doiPattern     = regexp.MustCompile(`(?i)doi:\s*([\w.-]+/[\w.-]+)`)
)

// Parser extracts citation fields from article blocks. It is safe for
// concurrent use.
type Parser struct {
	journal *regexp.Regexp
}

// NewParser builds a Parser whose journal pattern ends in one of suffixes.
// An empty list selects DefaultJournalSuffixes.
func NewParser(suffixes []string) (*Parser, error) {
	if len(suffixes) == 0 {
		suffixes = DefaultJournalSuffixes
	}

	quoted := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, errors.New("journal suffix must not be empty")
		}
		quoted = append(quoted, regexp.QuoteMeta(s))
	}

	expr := fmt.Sprintf(`\b([A-Z][a-zA-Z\s&]+(?:%s))\b`, strings.Join(quoted, "|"))
	journal, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile journal pattern: %w", err)
	}
	return &Parser{journal: journal}, nil
}

// Parse runs every field pattern against block. Each field takes the first
// match of its own pattern; a field without a match is left nil.
func (p *Parser) Parse(block string) ParsedInfo {
	var info ParsedInfo

	info.Authors = firstGroup(authorsPattern, block, 1)
	info.Title = firstGroup(titlePattern, block, 1)
	info.Journal = firstGroup(p.journal, block, 1)
	info.PublishedDate = firstGroup(yearPattern, block, 1)

	if m := volumePattern.FindStringSubmatch(block); m != nil {
		info.Volume = &m[1]
		info.Issue = &m[2]
	}

	info.Pages = firstGroup(pagesPattern, block, 1)
	info.DOI = firstGroup(doiPattern, block, 1)

	return info
}

// Format returns the stored content for block: a structured record when
// authors and title were found, the trimmed block otherwise.
func (p *Parser) Format(block string) string {
	block = strings.TrimSpace(block)

	info := p.Parse(block)
	if !info.Structured() {
		return block
	}

	encoded, err := NewRecord(block, info).Encode()
	if err != nil {
		return block
	}
	return encoded
}

// Extract segments text and formats each block. Numbered and paragraph
// blocks are field-parsed; line blocks are stored raw.
func (p *Parser) Extract(text string) Segments {
	seg := Segment(text)
	if seg.Tier == TierLine {
		return seg
	}

	contents := make([]string, len(seg.Blocks))
	for i, b := range seg.Blocks {
		contents[i] = p.Format(b)
	}
	return Segments{Tier: seg.Tier, Blocks: contents}
}

func firstGroup(re *regexp.Regexp, s string, group int) *string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	v := strings.TrimSpace(m[group])
	if v == "" {
		return nil
	}
	return &v
}
