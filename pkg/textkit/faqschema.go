package textkit

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FAQ is one question/answer pair for schema markup.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQSchema renders schema.org FAQPage JSON-LD wrapped in a script tag,
// ready to paste into a page head. Entries with a blank question or answer
// are skipped; if nothing remains the result is empty.
func FAQSchema(faqs []FAQ) (string, error) {
	type answer struct {
		Type string `json:"@type"`
		Text string `json:"text"`
	}
	type question struct {
		Type           string `json:"@type"`
		Name           string `json:"name"`
		AcceptedAnswer answer `json:"acceptedAnswer"`
	}
	type page struct {
		Context    string     `json:"@context"`
		Type       string     `json:"@type"`
		MainEntity []question `json:"mainEntity"`
	}

	var entities []question
	for _, f := range faqs {
		q := strings.TrimSpace(f.Question)
		a := strings.TrimSpace(f.Answer)
		if q == "" || a == "" {
			continue
		}
		entities = append(entities, question{
			Type: "Question",
			Name: q,
			AcceptedAnswer: answer{
				Type: "Answer",
				Text: a,
			},
		})
	}
	if len(entities) == 0 {
		return "", nil
	}

	data, err := json.MarshalIndent(page{
		Context:    "https://schema.org",
		Type:       "FAQPage",
		MainEntity: entities,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal faq schema: %w", err)
	}

	return fmt.Sprintf("<script type=\"application/ld+json\">\n%s\n</script>", data), nil
}
