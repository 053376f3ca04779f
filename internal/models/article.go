// Package models defines the data passed between pipeline stages.
package models

// Article is one article page reduced to the fields the writer needs.
// Values are built once by the extractor and never modified afterwards.
type Article struct {
	URL         string
	Title       string
	Author      string
	DateDisplay string
	DateISO     string
	Slug        string
	BodyHTML    string
}

// DatePrefix returns the ISO date, or "unknown-date" when the page had none.
func (a Article) DatePrefix() string {
	if a.DateISO == "" {
		return "unknown-date"
	}

	return a.DateISO
}

// Result records what happened to a single article URL.
type Result struct {
	URL     string
	Path    string
	Skipped bool
	Reason  string
}
