// Package converter turns article body HTML into GitHub-flavoured Markdown.
package converter

import (
	"context"
	"fmt"
	"strings"

	"jregfetch/internal/config"
)

// Converter converts an HTML fragment to Markdown without line wrapping.
type Converter interface {
	Convert(ctx context.Context, html string) (string, error)
}

// ConversionError reports a failed conversion together with the converter's diagnostics.
type ConversionError struct {
	Engine     string
	Diagnostic string
	Err        error
}

func (e *ConversionError) Error() string {
	if e.Diagnostic != "" {
		return fmt.Sprintf("%s conversion failed: %s", e.Engine, e.Diagnostic)
	}

	return fmt.Sprintf("%s conversion failed: %v", e.Engine, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// New builds the converter selected by cfg.Engine.
func New(cfg config.ConverterConfig) (Converter, error) {
	switch cfg.Engine {
	case config.EngineBuiltin, "":
		return NewMarkdownConverter(), nil
	case config.EnginePandoc:
		return NewPandocConverter(cfg.PandocPath), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidEngine, cfg.Engine)
	}
}

// normalize trims surrounding whitespace and ends the text with exactly one newline.
func normalize(markdown string) string {
	return strings.TrimSpace(markdown) + "\n"
}
