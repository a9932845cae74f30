package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned when a PDF has no extractable text layer.
var ErrNoText = errors.New("no text content could be extracted from PDF")

// Extractor reads the text layer of planning PDFs
type Extractor struct {
	maxFileSize int64
	maxTextSize int
}

// NewExtractor creates a new extractor with the specified constraints
func NewExtractor(maxFileSize int64) *Extractor {
	return &Extractor{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// ExtractFile reads and extracts the text of the PDF at path
func (e *Extractor) ExtractFile(path string) (*ExtractResult, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if err := checkFileInfo(path, fileInfo, e.maxFileSize); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return e.Extract(data)
}

// Extract returns the text of an in-memory PDF. Rows are read top to bottom,
// every text run becomes one line, and pages are separated by a blank line.
func (e *Extractor) Extract(data []byte) (*ExtractResult, error) {
	if int64(len(data)) > e.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", len(data), e.maxFileSize)
	}

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	text := e.extractTextContent(pdfReader)
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}

	return &ExtractResult{
		Text:  text,
		Pages: pdfReader.NumPage(),
		Title: documentTitle(pdfReader),
	}, nil
}

// extractTextContent walks the pages and collects their lines
func (e *Extractor) extractTextContent(pdfReader *pdf.Reader) string {
	var pages []string
	totalLength := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			// Continue with other pages even if one fails
			continue
		}

		var lines []string
		for _, row := range rows {
			lines = append(lines, rowLines(row.Content)...)
		}
		if len(lines) == 0 {
			continue
		}

		content := strings.Join(lines, "\n")
		if totalLength+len(content) > e.maxTextSize {
			break
		}
		totalLength += len(content)
		pages = append(pages, content)
	}

	return strings.Join(pages, "\n\n")
}

// rowLines returns one line per text run of the row, left to right.
func rowLines(texts pdf.TextHorizontal) []string {
	lines := make([]string, 0, len(texts))
	for _, t := range texts {
		if line := strings.TrimSpace(t.S); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// documentTitle reads the Info dictionary title when present
func documentTitle(r *pdf.Reader) (title string) {
	defer func() {
		// Malformed Info dictionaries are not worth failing the read for
		if recover() != nil {
			title = ""
		}
	}()

	trailer := r.Trailer()
	if trailer.IsNull() {
		return ""
	}
	info := trailer.Key("Info")
	if info.IsNull() {
		return ""
	}
	if t := info.Key("Title"); !t.IsNull() {
		return strings.TrimSpace(t.Text())
	}
	return ""
}

// checkFileInfo performs the cheap checks shared by every entry point
func checkFileInfo(filePath string, fileInfo os.FileInfo, maxFileSize int64) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if !isPDFFile(filePath) {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", filePath)
	}

	if fileInfo.Size() > maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), maxFileSize)
	}

	return nil
}

// isPDFFile checks if a file has a PDF extension
func isPDFFile(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}
