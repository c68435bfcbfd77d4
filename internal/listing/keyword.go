package listing

import "strings"

const focusKeywordWords = 6

// ExtractFocusKeyword derives the default SEO focus keyword from a product title:
// the first six whitespace-separated words, with en-dashes turned into hyphens.
func ExtractFocusKeyword(title string) string {
	words := strings.Fields(strings.ReplaceAll(title, "–", "-"))
	if len(words) > focusKeywordWords {
		words = words[:focusKeywordWords]
	}
	return strings.Join(words, " ")
}
