package textkit

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFAQSchema(t *testing.T) {
	out, err := FAQSchema([]FAQ{
		{Question: "What is DCA?", Answer: "Investing a fixed amount on a schedule."},
		{Question: "  ", Answer: "dropped"},
		{Question: "Is it free?", Answer: "Yes."},
	})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(out, `<script type="application/ld+json">`) {
		t.Error("missing script tag prefix")
	}
	if !strings.HasSuffix(out, "</script>") {
		t.Error("missing script tag suffix")
	}

	body := strings.TrimSuffix(strings.TrimPrefix(out, `<script type="application/ld+json">`), "</script>")
	var parsed struct {
		Context    string `json:"@context"`
		Type       string `json:"@type"`
		MainEntity []struct {
			Name           string `json:"name"`
			AcceptedAnswer struct {
				Text string `json:"text"`
			} `json:"acceptedAnswer"`
		} `json:"mainEntity"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(body)), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed.Type != "FAQPage" {
		t.Errorf("expected FAQPage, got %s", parsed.Type)
	}
	if len(parsed.MainEntity) != 2 {
		t.Fatalf("expected 2 entities (blank one skipped), got %d", len(parsed.MainEntity))
	}
	if parsed.MainEntity[0].Name != "What is DCA?" {
		t.Errorf("unexpected first question: %s", parsed.MainEntity[0].Name)
	}
}

func TestFAQSchemaEmpty(t *testing.T) {
	out, err := FAQSchema([]FAQ{{Question: "", Answer: ""}})
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}
