package crawler

import "regexp"

// articleLinkRegex matches the permalink inside each article heading on a topic page.
var articleLinkRegex = regexp.MustCompile(`<h1\s+class="article-header__title[^>]*>\s*<a\s+href="([^"]+)"`)

// ExtractArticleURLs returns the distinct article links of a topic page in
// first-seen order. A page without matches yields an empty slice.
func ExtractArticleURLs(topicHTML string) []string {
	matches := articleLinkRegex.FindAllStringSubmatch(topicHTML, -1)

	seen := make(map[string]bool, len(matches))
	urls := make([]string, 0, len(matches))

	for _, m := range matches {
		u := m[1]
		if seen[u] {
			continue
		}

		seen[u] = true
		urls = append(urls, u)
	}

	return urls
}
