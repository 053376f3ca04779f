// Package metadata appends and verifies a provenance block at the end of
// generated Markdown files.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// TagStart is the start of the metadata block.
	TagStart = "<!-- METADATA_START"
	// TagEnd is the end of the metadata block.
	TagEnd = "METADATA_END -->"
	// Version is written into every block this package signs.
	Version = "1"
)

// Metadata verification errors.
var (
	ErrNoMetadataBlock = errors.New("no metadata block found")
	ErrNoHashFound     = errors.New("no hash found in metadata")
	ErrHashMismatch    = errors.New("hash mismatch")
)

// Metadata describes where a document came from and what it hashed to.
type Metadata struct {
	FetchedAt time.Time
	Version   string
	Source    string
	Hash      string
}

var metadataRegex = regexp.MustCompile(`(?s)<!--\s*METADATA_START\s*\n(.*?)\n\s*METADATA_END\s*-->`)

// now is replaced in tests.
var now = time.Now

// Extract splits content into its metadata block (nil if absent) and the
// remaining text, which is what gets hashed.
func Extract(content string) (*Metadata, string) {
	match := metadataRegex.FindStringSubmatch(content)
	clean := strings.TrimRight(metadataRegex.ReplaceAllString(content, ""), "\n")

	if match == nil {
		return nil, clean
	}

	meta := &Metadata{}

	for line := range strings.SplitSeq(match[1], "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}

		val = strings.TrimSpace(val)

		switch strings.TrimSpace(key) {
		case "VERSION":
			meta.Version = val
		case "SOURCE":
			meta.Source = val
		case "FETCHED_AT":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				meta.FetchedAt = t
			}
		case "HASH":
			meta.Hash = val
		}
	}

	return meta, clean
}

// CalculateHash computes the SHA-256 of content with any metadata block removed.
func CalculateHash(content string) string {
	_, clean := Extract(content)
	sum := sha256.Sum256([]byte(clean))

	return hex.EncodeToString(sum[:])
}

// Sign replaces any existing block in content with a fresh one for source.
func Sign(content, source string) string {
	_, clean := Extract(content)

	block := fmt.Sprintf("%s\nVERSION: %s\nSOURCE: %s\nFETCHED_AT: %s\nHASH: %s\n%s",
		TagStart, Version, source, now().UTC().Format(time.RFC3339), CalculateHash(clean), TagEnd)

	return clean + "\n\n" + block + "\n"
}

// Verify checks that content still matches the hash in its metadata block.
func Verify(content string) (*Metadata, error) {
	meta, clean := Extract(content)
	if meta == nil {
		return nil, ErrNoMetadataBlock
	}

	if meta.Hash == "" {
		return meta, ErrNoHashFound
	}

	if calculated := CalculateHash(clean); calculated != meta.Hash {
		return meta, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, meta.Hash, calculated)
	}

	return meta, nil
}
