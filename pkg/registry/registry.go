// Package registry holds the closed set of tool descriptors. The tool IDs are
// the stable kebab-case identifiers used as ledger keys and URL segments.
package registry

import "strings"

// Kind classifies how a tool produces its result.
type Kind string

// Tool kinds.
const (
	// KindCalculator tools are pure functions evaluated locally.
	KindCalculator Kind = "calculator"
	// KindGenerator tools call the generative-text provider.
	KindGenerator Kind = "generator"
)

// Tool describes one entry in the catalog.
type Tool struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Kind     Kind   `json:"kind"`
}

// tools is the full catalog, in dashboard order.
var tools = []Tool{
	{ID: "viral-title", Name: "Viral Title Generator", Category: "youtube", Kind: KindGenerator},
	{ID: "tags", Name: "Tag Generator", Category: "youtube", Kind: KindGenerator},
	{ID: "thumbnail-ctr", Name: "Thumbnail Analyzer", Category: "youtube", Kind: KindGenerator},
	{ID: "shorts-hook", Name: "Shorts Hook Generator", Category: "youtube", Kind: KindGenerator},
	{ID: "risk-reward", Name: "Risk Reward Calculator", Category: "trading", Kind: KindCalculator},
	{ID: "position-size", Name: "Position Size Calculator", Category: "trading", Kind: KindCalculator},
	{ID: "crypto-profit", Name: "Crypto Profit Calculator", Category: "trading", Kind: KindCalculator},
	{ID: "compounding", Name: "Compound Interest Calculator", Category: "trading", Kind: KindCalculator},
	{ID: "dca", Name: "DCA Calculator", Category: "trading", Kind: KindCalculator},
	{ID: "keyword-density", Name: "Keyword Density Checker", Category: "seo", Kind: KindCalculator},
	{ID: "meta-description", Name: "Meta Description Generator", Category: "seo", Kind: KindGenerator},
	{ID: "word-counter", Name: "Word Counter", Category: "seo", Kind: KindCalculator},
	{ID: "faq-schema", Name: "FAQ Schema Generator", Category: "seo", Kind: KindCalculator},
	{ID: "percentage", Name: "Percentage Calculator", Category: "utility", Kind: KindCalculator},
	{ID: "age", Name: "Age Calculator", Category: "utility", Kind: KindCalculator},
	{ID: "emi", Name: "EMI Calculator", Category: "utility", Kind: KindCalculator},
}

var byID = func() map[string]Tool {
	m := make(map[string]Tool, len(tools))
	for _, t := range tools {
		m[t.ID] = t
	}
	return m
}()

// Lookup returns the tool for an id.
func Lookup(id string) (Tool, bool) {
	t, ok := byID[id]
	return t, ok
}

// All returns the catalog in display order.
func All() []Tool {
	out := make([]Tool, len(tools))
	copy(out, tools)
	return out
}

// Humanize turns a kebab-case tool id into a display name: the catalog name
// when the id is known, otherwise Title Case of the id's words.
func Humanize(id string) string {
	if t, ok := byID[id]; ok {
		return t.Name
	}
	parts := strings.Split(id, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
