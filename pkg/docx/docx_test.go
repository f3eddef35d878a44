package docx_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/JaimeStill/lab-catalog/pkg/docx"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	ct, _ := zw.Create("[Content_Types].xml")
	ct.Write([]byte(`<?xml version="1.0"?><Types/>`))

	doc, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	doc.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><w:document ` + wordNS + `><w:body>` + body + `</w:body></w:document>`))

	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func para(runs ...string) string {
	return "<w:p>" + strings.Join(runs, "") + "</w:p>"
}

func run(text string) string {
	return `<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"paragraphs separated by blank lines",
			para(run("1. Smith J. A title. Nature 2021.")) + para(run("2. Doe K. Another. Cell 2020.")),
			"1. Smith J. A title. Nature 2021.\n\n2. Doe K. Another. Cell 2020.\n\n",
		},
		{
			"runs joined within a paragraph",
			para(run("Smith J"), run(", Lee K.")),
			"Smith J, Lee K.\n\n",
		},
		{
			"tabs and breaks",
			para(run("a"), "<w:r><w:tab/></w:r>", run("b"), "<w:r><w:br/></w:r>", run("c")),
			"a\tb\nc\n\n",
		},
		{
			"empty paragraph kept",
			para(run("first")) + para() + para(run("second")),
			"first\n\n\n\nsecond\n\n",
		},
		{
			"field codes skipped",
			para(`<w:r><w:instrText>HYPERLINK "x"</w:instrText></w:r>`, run("visible")),
			"visible\n\n",
		},
		{
			"tab stops in paragraph properties ignored",
			`<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/><w:tab w:val="left" w:pos="1440"/></w:tabs></w:pPr>` + run("Hello") + `</w:p>`,
			"Hello\n\n",
		},
		{
			"text box read once",
			para(`<w:r><mc:AlternateContent xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006">` +
				`<mc:Choice Requires="wps"><w:drawing><w:txbxContent>` + para(run("BoxText")) + `</w:txbxContent></w:drawing></mc:Choice>` +
				`<mc:Fallback><w:pict><w:txbxContent>` + para(run("BoxText")) + `</w:txbxContent></w:pict></mc:Fallback>` +
				`</mc:AlternateContent></w:r>`),
			"BoxText\n\n",
		},
		{
			"entities decoded",
			para(run("Cells &amp; Systems")),
			"Cells & Systems\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := docx.Extract(buildDocx(t, tt.body))
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtract_Legacy(t *testing.T) {
	data := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 64)...)

	if !docx.IsLegacy(data) {
		t.Error("IsLegacy() = false for OLE header")
	}
	if _, err := docx.Extract(data); !errors.Is(err, docx.ErrUnsupportedFormat) {
		t.Errorf("Extract() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtract_Invalid(t *testing.T) {
	var missingPart bytes.Buffer
	zw := zip.NewWriter(&missingPart)
	f, _ := zw.Create("word/other.xml")
	f.Write([]byte("<x/>"))
	zw.Close()

	tests := []struct {
		name string
		data []byte
	}{
		{"not a zip", []byte("plain text file")},
		{"empty", nil},
		{"missing document part", missingPart.Bytes()},
		{"malformed xml", buildDocx(t, "<w:p><w:r>")},
		{"no paragraphs", buildDocx(t, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := docx.Extract(tt.data); !errors.Is(err, docx.ErrInvalidDocument) {
				t.Errorf("Extract() error = %v, want ErrInvalidDocument", err)
			}
		})
	}
}
