package generate

import (
	"errors"
	"testing"
)

func TestSplitLines(t *testing.T) {
	text := "1. First Title\n2) Second Title\n\n- Third Title\n* Fourth Title\n"
	lines := SplitLines(text)
	want := []string{"First Title", "Second Title", "Third Title", "Fourth Title"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d: expected %q, got %q", i, w, lines[i])
		}
	}
}

func TestSplitComma(t *testing.T) {
	tags := SplitComma("go tutorial, golang, , learn go ,go for beginners")
	want := []string{"go tutorial", "golang", "learn go", "go for beginners"}
	if len(tags) != len(want) {
		t.Fatalf("expected %d tags, got %d: %v", len(want), len(tags), tags)
	}
	for i, w := range want {
		if tags[i] != w {
			t.Errorf("tag %d: expected %q, got %q", i, w, tags[i])
		}
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"score": 80}`, `{"score": 80}`},
		{"json fence", "```json\n{\"score\": 80}\n```", `{"score": 80}`},
		{"plain fence", "```\n{\"score\": 80}\n```", `{"score": 80}`},
		{"fence with prose", "Here you go:\n```json\n{\"score\": 80}\n```\nHope it helps!", `{"score": 80}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := StripCodeFence(c.in); got != c.want {
				t.Errorf("expected %q, got %q", c.want, got)
			}
		})
	}
}

func TestParseCTRReport(t *testing.T) {
	report, err := ParseCTRReport("```json\n{\"score\": 72, \"tips\": [\"Shorter\", \"Add numbers\", \"Use power words\"]}\n```")
	if err != nil {
		t.Fatal(err)
	}
	if report.Score != 72 {
		t.Errorf("expected score 72, got %d", report.Score)
	}
	if len(report.Tips) != 3 {
		t.Errorf("expected 3 tips, got %d", len(report.Tips))
	}
}

func TestParseCTRReportMalformed(t *testing.T) {
	cases := []string{
		"not json at all",
		`{"score": 80}`,                      // missing tips
		`{"tips": ["a"]}`,                    // missing score
		`{"score": 150, "tips": ["a"]}`,      // score out of range
		`{"score": 80, "tips": []}`,          // empty tips
		"```json\nbroken {\n```",             // fenced garbage
	}
	for _, in := range cases {
		if _, err := ParseCTRReport(in); !errors.Is(err, ErrBadGeneration) {
			t.Errorf("ParseCTRReport(%q): expected ErrBadGeneration, got %v", in, err)
		}
	}
}
