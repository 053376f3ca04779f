// Package storage writes one Markdown file per article.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"jregfetch/internal/logger"
	"jregfetch/internal/models"
	"jregfetch/pkg/metadata"
)

// FileSuffix is appended to every article file name.
const FileSuffix = ".en.md"

const sourceLabel = "Fonte: "

// ErrExists is returned by Write when the target file is already present
// and overwriting is off.
var ErrExists = errors.New("target file already exists")

// Storage is a flat directory of article files named {date}_{slug}.en.md.
type Storage struct {
	dir       string
	sign      bool
	overwrite bool
	log       *logger.Logger
}

// New returns a storage rooted at dir, creating it and its parents.
// With sign set, written files get a provenance block. Without overwrite,
// Write never replaces an existing file.
func New(dir string, sign, overwrite bool, log *logger.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create output directory: %w", err)
	}

	return &Storage{dir: dir, sign: sign, overwrite: overwrite, log: log}, nil
}

// FileName returns the output file name for an article.
func FileName(a models.Article) string {
	return a.DatePrefix() + "_" + a.Slug + FileSuffix
}

// PathFor returns the full output path for an article.
func (s *Storage) PathFor(a models.Article) string {
	return filepath.Join(s.dir, FileName(a))
}

// FindExisting looks for a file written for url under any date prefix.
// It lets a re-run skip an article before fetching it, when the date that
// forms the rest of the name is not yet known. A file with the same slug
// whose Fonte line names a different URL belongs to another article and is
// not a match; a file without a Fonte line is.
func (s *Storage) FindExisting(slug, url string) (string, bool, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", false, fmt.Errorf("failed to list output directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		stem, ok := strings.CutSuffix(e.Name(), FileSuffix)
		if !ok {
			continue
		}

		// date prefixes never contain '_', so the first one ends the prefix
		_, rest, ok := strings.Cut(stem, "_")
		if !ok || rest != slug {
			continue
		}

		path := filepath.Join(s.dir, e.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			return "", false, fmt.Errorf("failed to read %s: %w", path, err)
		}

		if source := SourceOf(string(data)); source != "" && source != url {
			s.log.Debug("slug taken by another article", "path", path, "source", source, "url", url)

			continue
		}

		s.checkSignature(path, string(data))

		return path, true, nil
	}

	return "", false, nil
}

// Write stores the header and converted body for a and returns the path.
// Without overwrite it fails with ErrExists when the path is taken.
func (s *Storage) Write(a models.Article, body string) (string, error) {
	content := Compose(a, body)
	if s.sign {
		content = metadata.Sign(content, a.URL)
	}

	path := s.PathFor(a)

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !s.overwrite {
		flag = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return path, ErrExists
		}

		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()

		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

// Compose builds the file content: the metadata header followed by body.
func Compose(a models.Article, body string) string {
	header := []string{
		"# " + a.Title,
		"",
		labeled("Autor(es):", a.Author),
		labeled("Data:", a.DateDisplay),
		sourceLabel + a.URL,
		"",
		"---",
		"",
	}

	return strings.Join(header, "\n") + body
}

func labeled(label, value string) string {
	if value == "" {
		return label
	}

	return label + " " + value
}

// SourceOf returns the URL on the Fonte line of a header, or "" when the
// header has none.
func SourceOf(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if line == "---" {
			break
		}

		if source, ok := strings.CutPrefix(line, sourceLabel); ok {
			return strings.TrimSpace(source)
		}
	}

	return ""
}

// checkSignature warns when a signed file was edited after it was written.
func (s *Storage) checkSignature(path, content string) {
	if !s.sign {
		return
	}

	if _, err := metadata.Verify(content); err != nil {
		s.log.Warn("existing file failed verification", "path", path, "err", err)
	}
}
