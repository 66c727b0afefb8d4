package textutil

import (
	"html"
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]+>`)
)

// RemoveLinks strips markdown links (keeping the link text) and bare URLs.
func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1")
	input = urlPattern.ReplaceAllString(input, "")

	return input
}

// Canonical is the classifier-facing form of an input: markdown rendered to
// plain text with links stripped. Input that is nothing but markup or URLs
// would normalize to empty, so the trimmed original is kept in that case —
// a non-empty input must always reach the classifiers.
func Canonical(input string) string {
	trimmed := strings.TrimSpace(input)

	normalized := Normalize(trimmed)
	if normalized == "" {
		return trimmed
	}

	return normalized
}

// Normalize renders markdown to plain text, strips links and collapses
// whitespace, so classifiers see prose instead of markup.
func Normalize(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := tagPattern.ReplaceAllString(string(output), " ")
	plain = html.UnescapeString(plain)
	plain = RemoveLinks(plain)

	return strings.Join(strings.Fields(plain), " ")
}
