// Package main provides the jregfetch command-line tool, which saves the posts
// of a Yale JREG topic page as Markdown files.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"jregfetch/internal/crawler"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(execute(ctx, os.Args[1:]))
}

// execute runs the root command and maps its error to an exit code.
func execute(ctx context.Context, args []string) int {
	cmd := newRootCmd(os.Stdout)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if errors.Is(err, crawler.ErrNoArticles) {
		fmt.Fprintln(os.Stderr, "No article URLs found on topic page.")

		return 2
	}

	fmt.Fprintln(os.Stderr, "error:", err)

	return 1
}
