package crawler

import (
	"regexp"
	"strings"
)

const (
	divOpen  = "<div"
	divClose = "</div"
)

var contentOpenRegex = regexp.MustCompile(`<div\s+class="pf-content"[^>]*>`)

// ExtractContentRegion returns the inner markup of the pf-content container.
//
// Nested divs are tracked with a depth counter rather than a DOM parse, so the
// page must be well formed and must not self-close divs.
func ExtractContentRegion(page string) (string, error) {
	loc := contentOpenRegex.FindStringIndex(page)
	if loc == nil {
		return "", &StructureError{Landmark: "pf-content", Reason: "container not found"}
	}

	start := loc[1]
	pos := start
	depth := 1

	for {
		nextClose := indexFrom(page, divClose, pos)
		if nextClose == -1 {
			return "", &StructureError{Landmark: "pf-content", Reason: "unterminated container"}
		}

		nextOpen := indexFrom(page, divOpen, pos)
		if nextOpen != -1 && nextOpen < nextClose {
			// "<divider" and similar are not div tags
			if isTagBoundary(page, nextOpen+len(divOpen)) {
				depth++
			}

			pos = nextOpen + len(divOpen)

			continue
		}

		depth--
		if depth == 0 {
			return strings.TrimSpace(page[start:nextClose]), nil
		}

		pos = nextClose + len(divClose)
	}
}

func indexFrom(s, substr string, from int) int {
	if from >= len(s) {
		return -1
	}

	i := strings.Index(s[from:], substr)
	if i == -1 {
		return -1
	}

	return from + i
}

func isTagBoundary(s string, i int) bool {
	if i >= len(s) {
		return false
	}

	switch s[i] {
	case ' ', '>', '\t', '\n', '\r':
		return true
	}

	return false
}
