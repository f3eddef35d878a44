// Package docx extracts plain text from WordprocessingML packages (.docx).
//
// Paragraphs are emitted in document order, each followed by a blank line,
// so consumers can recover paragraph boundaries with a "\n\s*\n" split.
// Tabs and line breaks inside a paragraph are kept as "\t" and "\n".
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const documentPart = "word/document.xml"

// maxPartSize bounds the decompressed main document part.
const maxPartSize = 64 << 20

var (
	// ErrUnsupportedFormat is returned for legacy binary Word files (.doc).
	ErrUnsupportedFormat = errors.New("legacy .doc format is not supported, convert the file to .docx")
	// ErrInvalidDocument is returned when the input is not a readable .docx package.
	ErrInvalidDocument = errors.New("invalid .docx document")
)

// oleSignature prefixes OLE2 compound files such as legacy .doc.
var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// IsLegacy reports whether data looks like an OLE2 compound file.
func IsLegacy(data []byte) bool {
	return bytes.HasPrefix(data, oleSignature)
}

// Extract returns the plain text of the main document part.
func Extract(data []byte) (string, error) {
	if IsLegacy(data) {
		return "", ErrUnsupportedFormat
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", fmt.Errorf("%w: %s not found", ErrInvalidDocument, documentPart)
	}

	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", ErrInvalidDocument, documentPart, err)
	}
	defer rc.Close()

	text, err := readBody(io.LimitReader(rc, maxPartSize))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return text, nil
}

// readBody walks the document XML collecting text runs. Only character data
// inside w:t elements is text; field codes (w:instrText) and deleted runs
// (w:delText) are skipped. Tabs count only inside runs, so tab stop
// definitions in paragraph properties are ignored, and mc:Fallback content is
// skipped because it duplicates the mc:Choice branch.
func readBody(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		out       strings.Builder
		para      strings.Builder
		inPara    int
		inRun     int
		inText    bool
		sawParagr bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				if inPara == 0 {
					para.Reset()
				}
				inPara++
			case "Fallback":
				if err := dec.Skip(); err != nil {
					return "", err
				}
			case "r":
				inRun++
			case "t":
				inText = inPara > 0
			case "tab":
				if inPara > 0 && inRun > 0 {
					para.WriteByte('\t')
				}
			case "br", "cr":
				if inPara > 0 {
					para.WriteByte('\n')
				}
			}

		case xml.CharData:
			if inText {
				para.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "r":
				if inRun > 0 {
					inRun--
				}
			case "t":
				inText = false
			case "p":
				if inPara == 0 {
					continue
				}
				inPara--
				if inPara == 0 {
					out.WriteString(para.String())
					out.WriteString("\n\n")
					sawParagr = true
				}
			}
		}
	}

	if !sawParagr {
		return "", errors.New("document contains no paragraphs")
	}
	return out.String(), nil
}
