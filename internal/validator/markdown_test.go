package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInspect_Counts(t *testing.T) {
	body := `## Background

The [APA](https://example.com/apa) requires notice and comment.

- first
- second

| Agency | Rule |
| ------ | ---- |
| FDA    | 11   |

` + "```\ncode\n```\n"

	report := Inspect(body)

	require.True(t, report.OK(), "unexpected warnings: %v", report.Warnings)
	require.Equal(t, 1, report.Stats.Headings)
	require.Equal(t, 1, report.Stats.Links)
	require.Equal(t, 1, report.Stats.Lists)
	require.Equal(t, 1, report.Stats.Tables)
	require.Equal(t, 1, report.Stats.CodeBlocks)
	require.GreaterOrEqual(t, report.Stats.Paragraphs, 1)
}

func TestInspect_Empty(t *testing.T) {
	report := Inspect(" \n\n")

	require.False(t, report.OK())
	require.Equal(t, []string{"converted body is empty"}, report.Warnings)
}

func TestInspect_RawHTML(t *testing.T) {
	report := Inspect("Hello\n\n<div class=\"embed\">x</div>\n")

	require.False(t, report.OK())
	require.Equal(t, 1, report.Stats.RawHTML)
	require.Len(t, report.Warnings, 1)
	require.Contains(t, report.Warnings[0], "raw HTML")
}
