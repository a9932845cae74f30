// Package pdftest builds small text PDFs for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

const (
	pageTop    = 800
	lineHeight = 14
)

// Build returns a PDF with one page per entry of pages, each line drawn as
// a separate text run in Helvetica with WinAnsi encoding.
func Build(title string, pages ...[]string) []byte {
	var objects []string

	// 1: catalog, 2: pages, 3: font, 4: info, then content/page pairs
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 6+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Title (%s) /Producer (pdftest) >>", escape(title)),
	)

	for i, lines := range pages {
		var content strings.Builder
		for j, line := range lines {
			fmt.Fprintf(&content, "BT /F1 10 Tf 50 %d Td (%s) Tj ET\n", pageTop-j*lineHeight, escape(line))
		}
		stream := content.String()
		objects = append(objects,
			fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(stream), stream),
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info 4 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xref)

	return buf.Bytes()
}

// Write builds a PDF into dir/name and returns its path.
func Write(t testing.TB, dir, name, title string, pages ...[]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, Build(title, pages...), 0o644); err != nil {
		t.Fatalf("failed to write PDF: %v", err)
	}
	return path
}

// Planning returns the lines of a two-day planning for person: Monday
// 2 December 2024 with 7.5 work hours and a meal break, Tuesday with a
// telework full day.
func Planning(person string) []string {
	return []string{
		"Planning de travail pour " + person,
		"Lundi",
		"2 décembre 2024",
		"08:00 - 12:00 VAL_ACCUEIL",
		"12:00 - 13:00 PAU_REPAS",
		"13:00 - 16:30 REU_EQUIPE",
		"Mardi",
		"3 décembre 2024",
		"Journée entière PRD_TELETRAVAIL",
	}
}

// escape encodes s as a WinAnsi PDF string literal body
func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)
	encoded, err := charmap.Windows1252.NewEncoder().String(s)
	if err != nil {
		encoded = s
	}
	return r.Replace(encoded)
}
