package textkit

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TextStats summarizes a document for the word counter tool.
type TextStats struct {
	Words           int `json:"words"`
	Chars           int `json:"chars"`
	CharsNoSpaces   int `json:"chars_no_spaces"`
	Sentences       int `json:"sentences"`
	Paragraphs      int `json:"paragraphs"`
	ReadingTimeMins int `json:"reading_time_mins"`
}

// wordsPerMinute is the assumed average reading speed.
const wordsPerMinute = 200

var (
	paragraphSplit = regexp.MustCompile(`\n+`)
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
)

// Stats counts words, characters, sentences and paragraphs, and estimates
// reading time rounded up to the next whole minute.
func Stats(text string) TextStats {
	words := len(strings.Fields(text))

	noSpaces := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			noSpaces++
		}
	}

	paragraphs := 0
	for _, p := range paragraphSplit.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}

	sentences := 0
	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}

	reading := 0
	if words > 0 {
		reading = (words + wordsPerMinute - 1) / wordsPerMinute
	}

	return TextStats{
		Words:           words,
		Chars:           utf8.RuneCountInString(text),
		CharsNoSpaces:   noSpaces,
		Sentences:       sentences,
		Paragraphs:      paragraphs,
		ReadingTimeMins: reading,
	}
}
