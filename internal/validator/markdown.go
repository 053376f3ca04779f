// Package validator inspects converted Markdown bodies before they are written.
package validator

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Stats counts the block and inline elements found in a body.
type Stats struct {
	Paragraphs int
	Headings   int
	Lists      int
	Links      int
	Tables     int
	CodeBlocks int
	RawHTML    int
}

// Report is the result of inspecting a converted body.
type Report struct {
	Warnings []string
	Stats    Stats
}

// OK reports whether the body produced no warnings.
func (r Report) OK() bool {
	return len(r.Warnings) == 0
}

var parser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// Inspect parses markdown and reports structural statistics. Problems are
// returned as warnings; nothing here rejects a body.
func Inspect(markdown string) Report {
	var report Report

	if strings.TrimSpace(markdown) == "" {
		report.Warnings = append(report.Warnings, "converted body is empty")

		return report
	}

	source := []byte(markdown)
	doc := parser.Parse(text.NewReader(source))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.Kind() {
		case ast.KindParagraph:
			report.Stats.Paragraphs++
		case ast.KindHeading:
			report.Stats.Headings++
		case ast.KindList:
			report.Stats.Lists++
		case ast.KindLink, ast.KindAutoLink:
			report.Stats.Links++
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			report.Stats.CodeBlocks++
		case ast.KindHTMLBlock, ast.KindRawHTML:
			report.Stats.RawHTML++
		case extast.KindTable:
			report.Stats.Tables++
		}

		return ast.WalkContinue, nil
	})

	if report.Stats.RawHTML > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("converted body still contains %d raw HTML fragment(s)", report.Stats.RawHTML))
	}

	if report.Stats.Paragraphs == 0 && report.Stats.Headings == 0 && report.Stats.Lists == 0 && report.Stats.Tables == 0 {
		report.Warnings = append(report.Warnings, "converted body has no text blocks")
	}

	return report
}
