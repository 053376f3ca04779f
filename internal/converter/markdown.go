package converter

import (
	"context"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// MarkdownConverter converts in-process with html-to-markdown.
type MarkdownConverter struct{}

// NewMarkdownConverter creates a MarkdownConverter.
func NewMarkdownConverter() *MarkdownConverter {
	return &MarkdownConverter{}
}

// Convert converts an HTML fragment into Markdown.
func (c *MarkdownConverter) Convert(_ context.Context, html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", &ConversionError{Engine: "html-to-markdown", Err: err}
	}

	return normalize(markdown), nil
}
