package generate

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/toolsathi/toolsathi/pkg/models"
)

// listPrefix matches the numbering or bullet a model often prepends to list
// items, like "1. ", "- " or "* ".
var listPrefix = regexp.MustCompile(`^[\d.\-*)]+\s*`)

// SplitLines splits generated text into non-empty trimmed lines with list
// numbering stripped.
func SplitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = listPrefix.ReplaceAllString(strings.TrimSpace(line), "")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// SplitComma splits generated text into non-empty trimmed comma-separated
// items.
func SplitComma(text string) []string {
	var out []string
	for _, item := range strings.Split(text, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// StripCodeFence unwraps a markdown code block around a payload. Models
// sometimes fence JSON even when asked for a bare document.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, "```json"); i >= 0 {
		text = text[i+len("```json"):]
	} else if i := strings.Index(text, "```"); i >= 0 {
		text = text[i+len("```"):]
	} else {
		return text
	}
	if i := strings.Index(text, "```"); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

// ParseCTRReport extracts the score and tips from a generated CTR analysis,
// tolerating code fences and stray prose. Malformed output maps to
// ErrBadGeneration rather than an error the caller could mistake for a
// transport failure.
func ParseCTRReport(text string) (models.CTRReport, error) {
	payload := StripCodeFence(text)
	if !gjson.Valid(payload) {
		return models.CTRReport{}, ErrBadGeneration
	}

	parsed := gjson.Parse(payload)
	score := parsed.Get("score")
	tips := parsed.Get("tips")
	if !score.Exists() || !tips.IsArray() {
		return models.CTRReport{}, ErrBadGeneration
	}

	report := models.CTRReport{Score: int(score.Int())}
	for _, tip := range tips.Array() {
		if s := strings.TrimSpace(tip.String()); s != "" {
			report.Tips = append(report.Tips, s)
		}
	}
	if report.Score < 0 || report.Score > 100 || len(report.Tips) == 0 {
		return models.CTRReport{}, ErrBadGeneration
	}
	return report, nil
}
