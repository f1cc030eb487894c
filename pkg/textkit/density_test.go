package textkit

import (
	"strings"
	"testing"
)

func TestKeywordDensity(t *testing.T) {
	text := "go is great, go is fast, go is simple and fun"
	keywords := KeywordDensity(text)

	// "go" and "is" have length two and are dropped; the survivors are
	// great, fast, simple, and, fun — one occurrence each.
	if len(keywords) != 5 {
		t.Fatalf("expected 5 keywords, got %d", len(keywords))
	}
	for _, k := range keywords {
		if len(k.Word) <= 2 {
			t.Errorf("short token %q should have been dropped", k.Word)
		}
		if k.Count != 1 {
			t.Errorf("expected count 1 for %q, got %d", k.Word, k.Count)
		}
	}
}

func TestKeywordDensityTopAndSum(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("alpha ")
	}
	for i := 0; i < 10; i++ {
		b.WriteString("beta ")
	}
	b.WriteString("gamma delta epsilon zeta theta iota kappa lambda ")
	b.WriteString("word01 word02 word03 word04 word05 word06 word07 word08 word09 word10 ")
	b.WriteString("word11 word12 word13 word14 word15")

	keywords := KeywordDensity(b.String())
	if len(keywords) > 20 {
		t.Fatalf("expected at most 20 keywords, got %d", len(keywords))
	}
	if keywords[0].Word != "alpha" || keywords[0].Count != 30 {
		t.Errorf("expected alpha x30 first, got %+v", keywords[0])
	}
	if keywords[1].Word != "beta" {
		t.Errorf("expected beta second, got %+v", keywords[1])
	}

	sum := 0.0
	for _, k := range keywords {
		sum += k.Density
	}
	if sum > 100.0001 {
		t.Errorf("densities sum above 100%%: %.4f", sum)
	}
}

func TestKeywordDensityTieOrder(t *testing.T) {
	// Equal counts keep first-encounter order.
	keywords := KeywordDensity("zebra apple zebra apple mango mango")
	want := []string{"zebra", "apple", "mango"}
	if len(keywords) != 3 {
		t.Fatalf("expected 3 keywords, got %d", len(keywords))
	}
	for i, w := range want {
		if keywords[i].Word != w {
			t.Errorf("position %d: expected %q, got %q", i, w, keywords[i].Word)
		}
	}
}

func TestKeywordDensityPunctuation(t *testing.T) {
	keywords := KeywordDensity("Hello, hello! HELLO... world?")
	if len(keywords) != 2 {
		t.Fatalf("expected 2 keywords, got %d", len(keywords))
	}
	if keywords[0].Word != "hello" || keywords[0].Count != 3 {
		t.Errorf("expected hello x3, got %+v", keywords[0])
	}
}

func TestKeywordDensityEmpty(t *testing.T) {
	if kw := KeywordDensity("   "); kw != nil {
		t.Errorf("expected nil for blank input, got %v", kw)
	}
	if kw := KeywordDensity("a an is to"); kw != nil {
		t.Errorf("expected nil when every token is short, got %v", kw)
	}
}
