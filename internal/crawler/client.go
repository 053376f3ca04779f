// Package crawler discovers symposium articles and turns each into a Markdown file.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"jregfetch/internal/formatter"
	"jregfetch/internal/logger"
	"jregfetch/internal/models"
	"jregfetch/internal/storage"
	"jregfetch/internal/validator"
)

// Fetcher returns the raw markup of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Converter turns an HTML fragment into Markdown.
type Converter interface {
	Convert(ctx context.Context, html string) (string, error)
}

// Store persists converted articles. Write returns storage.ErrExists when
// the target file is already present and must be kept.
type Store interface {
	FindExisting(slug, url string) (string, bool, error)
	Write(a models.Article, body string) (string, error)
}

// Options tune a run.
type Options struct {
	Overwrite    bool
	Concurrency  int
	FormatTables bool
}

// Summary counts the outcome of a run.
type Summary struct {
	Found   int
	Written int
	Skipped int
}

// Client wires the fetch, extract, convert and write stages together.
type Client struct {
	fetcher   Fetcher
	converter Converter
	store     Store
	opts      Options
	log       *logger.Logger

	outMu sync.Mutex
	out   io.Writer
}

// NewClient creates a client. One "Wrote <path>" line per written file goes to out.
func NewClient(fetcher Fetcher, converter Converter, store Store, opts Options, log *logger.Logger, out io.Writer) *Client {
	return &Client{
		fetcher:   fetcher,
		converter: converter,
		store:     store,
		opts:      opts,
		log:       log,
		out:       out,
	}
}

// Run fetches the topic page and processes every article it links to.
// The first failing article aborts the run.
func (c *Client) Run(ctx context.Context, topicURL string) (Summary, error) {
	topic, err := c.fetcher.Fetch(ctx, topicURL)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to fetch topic page: %w", err)
	}

	urls := ExtractArticleURLs(topic)
	if len(urls) == 0 {
		return Summary{}, ErrNoArticles
	}

	c.log.Info("found articles", "topic", topicURL, "count", len(urls))

	summary := Summary{Found: len(urls)}

	record := func(r models.Result) {
		c.outMu.Lock()
		defer c.outMu.Unlock()

		if r.Skipped {
			summary.Skipped++

			return
		}

		summary.Written++
		fmt.Fprintf(c.out, "Wrote %s\n", r.Path)
	}

	if c.opts.Concurrency <= 1 {
		for _, url := range urls {
			result, err := c.ProcessArticle(ctx, url)
			if err != nil {
				return summary, err
			}

			record(result)
		}

		return summary, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)

	for _, url := range urls {
		g.Go(func() error {
			result, err := c.ProcessArticle(gctx, url)
			if err != nil {
				return err
			}

			record(result)

			return nil
		})
	}

	err = g.Wait()

	c.outMu.Lock()
	defer c.outMu.Unlock()

	return summary, err
}

// ProcessArticle runs fetch, extract, convert and write for one article URL.
// Unless overwriting, an article that already has a file is skipped before
// anything is fetched, and a target path taken by then is left untouched.
func (c *Client) ProcessArticle(ctx context.Context, url string) (models.Result, error) {
	if err := ctx.Err(); err != nil {
		return models.Result{}, err
	}

	log := c.log.With("url", url)

	if !c.opts.Overwrite {
		path, ok, err := c.store.FindExisting(SlugFromURL(url), url)
		if err != nil {
			return models.Result{}, err
		}

		if ok {
			log.Debug("skipping existing article", "path", path)

			return models.Result{URL: url, Path: path, Skipped: true, Reason: "exists"}, nil
		}
	}

	page, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return models.Result{}, err
	}

	article, err := ParseArticle(url, page)
	if err != nil {
		return models.Result{}, err
	}

	body, err := c.converter.Convert(ctx, article.BodyHTML)
	if err != nil {
		return models.Result{}, fmt.Errorf("%s: %w", url, err)
	}

	if c.opts.FormatTables {
		body = formatter.FormatTables(body)
	}

	report := validator.Inspect(body)
	for _, w := range report.Warnings {
		log.Warn(w)
	}

	log.Debug("converted article", "title", article.Title, "paragraphs", report.Stats.Paragraphs,
		"links", report.Stats.Links, "tables", report.Stats.Tables)

	path, err := c.store.Write(article, body)
	if errors.Is(err, storage.ErrExists) {
		log.Warn("target file already exists, keeping it", "path", path)

		return models.Result{URL: url, Path: path, Skipped: true, Reason: "exists"}, nil
	}

	if err != nil {
		return models.Result{}, err
	}

	return models.Result{URL: url, Path: path}, nil
}
