package converter

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// PandocConverter shells out to pandoc. Failures are not retried since the
// same input fails the same way.
type PandocConverter struct {
	path string
}

// NewPandocConverter creates a converter that runs the pandoc binary at path.
func NewPandocConverter(path string) *PandocConverter {
	return &PandocConverter{path: path}
}

// Convert pipes html through `pandoc -f html -t gfm --wrap=none`.
func (c *PandocConverter) Convert(ctx context.Context, html string) (string, error) {
	cmd := exec.CommandContext(ctx, c.path, "-f", "html", "-t", "gfm", "--wrap=none")
	cmd.Stdin = strings.NewReader(html)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &ConversionError{
			Engine:     "pandoc",
			Diagnostic: strings.TrimSpace(stderr.String()),
			Err:        err,
		}
	}

	return normalize(stdout.String()), nil
}
