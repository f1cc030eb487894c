// Package textkit implements the SEO text-analysis tools: keyword density,
// document statistics and FAQ schema markup. Like pkg/calc, everything here
// is a pure function over its input.
package textkit

import (
	"regexp"
	"sort"
	"strings"
)

// Keyword is a distinct token with its frequency and share of the document.
type Keyword struct {
	Word    string  `json:"word"`
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

// maxKeywords caps how many keywords a density report returns.
const maxKeywords = 20

var nonWord = regexp.MustCompile(`[^\w\s]`)

// KeywordDensity tokenizes the text, drops tokens of length two or less, and
// returns up to 20 keywords by descending count. Ties keep the order in which
// the distinct token was first encountered.
func KeywordDensity(text string) []Keyword {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), "")

	var tokens []string
	for _, w := range strings.Fields(cleaned) {
		if len(w) > 2 {
			tokens = append(tokens, w)
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, w := range tokens {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	keywords := make([]Keyword, 0, len(order))
	for _, w := range order {
		keywords = append(keywords, Keyword{
			Word:    w,
			Count:   counts[w],
			Density: float64(counts[w]) / float64(len(tokens)) * 100,
		})
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Count > keywords[j].Count
	})

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}
