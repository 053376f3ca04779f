package crawler

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"jregfetch/internal/models"
)

// displayDateLayout matches "March 3, 2024" and "March 03, 2024".
const displayDateLayout = "January 2, 2006"

var (
	titleRegex  = regexp.MustCompile(`(?s)<h1\s+class="headline-title"[^>]*>(.*?)</h1>`)
	authorRegex = regexp.MustCompile(`(?s)<li\s+class="meta-author"[^>]*>(.*?)</li>`)
	dateRegex   = regexp.MustCompile(`(?s)<li\s+class="meta-date"[^>]*>(.*?)</li>`)
)

// ParseArticle extracts the article fields from an article page.
// A missing title or body container and an unparseable date are errors;
// a missing author or date is not.
func ParseArticle(url, page string) (models.Article, error) {
	m := titleRegex.FindStringSubmatch(page)
	if m == nil {
		return models.Article{}, &StructureError{URL: url, Landmark: "title", Reason: "headline not found"}
	}

	title := StripTags(m[1])

	dateDisplay := matchText(dateRegex, page)

	dateISO, err := NormalizeDate(dateDisplay)
	if err != nil {
		return models.Article{}, &DateParseError{URL: url, Value: dateDisplay, Err: err}
	}

	body, err := ExtractContentRegion(page)
	if err != nil {
		var se *StructureError
		if errors.As(err, &se) {
			se.URL = url
		}

		return models.Article{}, err
	}

	return models.Article{
		URL:         url,
		Title:       title,
		Author:      matchText(authorRegex, page),
		DateDisplay: dateDisplay,
		DateISO:     dateISO,
		Slug:        SlugFromURL(url),
		BodyHTML:    body,
	}, nil
}

// NormalizeDate turns a display date into YYYY-MM-DD. Empty input yields "".
func NormalizeDate(display string) (string, error) {
	if display == "" {
		return "", nil
	}

	t, err := time.Parse(displayDateLayout, display)
	if err != nil {
		return "", err
	}

	return t.Format(time.DateOnly), nil
}

// SlugFromURL returns the last path segment of url, ignoring trailing slashes.
func SlugFromURL(url string) string {
	trimmed := strings.TrimRight(url, "/")

	return trimmed[strings.LastIndex(trimmed, "/")+1:]
}

func matchText(re *regexp.Regexp, page string) string {
	m := re.FindStringSubmatch(page)
	if m == nil {
		return ""
	}

	return StripTags(m[1])
}
