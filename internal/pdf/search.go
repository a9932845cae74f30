package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const modTimeLayout = "2006-01-02 15:04:05"

// Search finds planning PDFs on disk
type Search struct {
	validator *Validator
}

// NewSearch creates a new search handler with the specified constraints
func NewSearch(maxFileSize int64) *Search {
	return &Search{
		validator: NewValidator(maxFileSize),
	}
}

// isPathWithinDirectory checks if a path is within the specified directory
func (s *Search) isPathWithinDirectory(path, directory string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}

	absDir, err := filepath.Abs(directory)
	if err != nil {
		return false, fmt.Errorf("failed to resolve directory: %w", err)
	}

	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return false, fmt.Errorf("failed to evaluate symlinks: %w", err)
		}
		realPath = absPath
	}

	realDir, err := filepath.EvalSymlinks(absDir)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate directory symlinks: %w", err)
	}

	rel, err := filepath.Rel(filepath.Clean(realDir), filepath.Clean(realPath))
	if err != nil {
		return false, nil //nolint:nilerr // Unrelated paths are simply outside
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))), nil
}

// SearchDirectory lists the planning PDFs under a directory whose names match
// the query. Results are sorted by path.
func (s *Search) SearchDirectory(req SearchDirectoryRequest) (*SearchDirectoryResult, error) {
	files, err := s.find(req.Directory, strings.TrimSpace(req.Query), 0)
	if err != nil {
		return nil, err
	}

	absDirectory, _ := filepath.Abs(req.Directory)
	return &SearchDirectoryResult{
		Files:       files,
		TotalCount:  len(files),
		Directory:   absDirectory,
		SearchQuery: req.Query,
	}, nil
}

// FindPDFsInDirectoryLimited finds PDF files in a directory with a limit on the number of results
func (s *Search) FindPDFsInDirectoryLimited(directory string, limit int) ([]FileInfo, error) {
	return s.find(directory, "", limit)
}

func (s *Search) find(directory, query string, limit int) ([]FileInfo, error) {
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	if _, err := os.Stat(directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}

	absDirectory, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	var pdfFiles []FileInfo
	err = filepath.WalkDir(absDirectory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Continue walking even if we encounter an error with a specific file
			return nil
		}

		withinDir, err := s.isPathWithinDirectory(path, absDirectory)
		if err != nil || !withinDir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != absDirectory {
				return filepath.SkipDir
			}
			return nil
		}

		if limit > 0 && len(pdfFiles) >= limit {
			return filepath.SkipAll
		}

		if !isPDFFile(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		if err := s.validator.ValidateFileInfo(path, info); err != nil {
			return nil
		}

		if !matchesQuery(info.Name(), query) {
			return nil
		}

		pdfFiles = append(pdfFiles, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format(modTimeLayout),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	sort.Slice(pdfFiles, func(i, j int) bool { return pdfFiles[i].Path < pdfFiles[j].Path })
	return pdfFiles, nil
}

// matchesQuery reports whether every query word is found in a word of the
// file name, ignoring case and accents.
func matchesQuery(filename, query string) bool {
	if query == "" {
		return true
	}

	nameWithoutExt := strings.TrimSuffix(strings.ToLower(filename), ".pdf")
	words := splitIntoWords(nameWithoutExt)

	for _, queryWord := range splitIntoWords(query) {
		found := false
		for _, word := range words {
			if strings.Contains(fold(word), fold(queryWord)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// fold lowercases and strips combining accents.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// splitIntoWords splits a string into words using common separators
func splitIntoWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch r {
		case ' ', '_', '-', '.', '(', ')', '[', ']':
			return true
		}
		return false
	})
}
