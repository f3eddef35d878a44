package bibliography

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Tier identifies the segmentation strategy that produced a set of blocks.
type Tier int

const (
	TierNone Tier = iota
	TierNumbered
	TierParagraph
	TierLine
)

func (t Tier) String() string {
	switch t {
	case TierNumbered:
		return "numbered"
	case TierParagraph:
		return "paragraph"
	case TierLine:
		return "line"
	default:
		return "none"
	}
}

const (
	minNumberedLen  = 10
	minParagraphLen = 20
	minLineLen      = 10
)

// space matches what Word exports as whitespace, including no-break,
// ideographic, and zero-width no-break spaces.
const space = `[\s\x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]`

var (
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	numberMarker    = regexp.MustCompile(`(^|\n)` + space + `*(\d+)` + space + `*[.。]` + space + `*`)
	blankLine       = regexp.MustCompile(`\n` + space + `*\n`)
)

// Segments is the result of splitting a document into candidate blocks.
type Segments struct {
	Tier   Tier
	Blocks []string
}

// Normalize unifies line endings, collapses runs of spaces and tabs, and
// trims the text.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = horizontalSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Segment splits text into ordered candidate blocks. Numbered markers at the
// start of a line win; otherwise blank-line separated paragraphs are used when
// more than one qualifies; otherwise each sufficiently long line is a block.
func Segment(text string) Segments {
	clean := Normalize(text)

	if blocks := splitNumbered(clean); len(blocks) > 0 {
		return Segments{Tier: TierNumbered, Blocks: blocks}
	}
	if blocks := splitParagraphs(clean); len(blocks) > 1 {
		return Segments{Tier: TierParagraph, Blocks: blocks}
	}
	if blocks := splitLines(clean); len(blocks) > 0 {
		return Segments{Tier: TierLine, Blocks: blocks}
	}
	return Segments{Tier: TierNone, Blocks: []string{}}
}

// splitNumbered keeps the text following each marker up to the next one.
// Text before the first marker is discarded.
func splitNumbered(text string) []string {
	matches := numberMarker.FindAllStringIndex(text, -1)
	blocks := make([]string, 0, len(matches))

	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}

		block := strings.TrimSpace(text[m[1]:end])
		if utf8.RuneCountInString(block) > minNumberedLen {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func splitParagraphs(text string) []string {
	return keepLonger(blankLine.Split(text, -1), minParagraphLen)
}

func splitLines(text string) []string {
	return keepLonger(strings.Split(text, "\n"), minLineLen)
}

func keepLonger(parts []string, min int) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) > min {
			out = append(out, p)
		}
	}
	return out
}
