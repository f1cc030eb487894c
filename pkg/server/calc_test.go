package server

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/toolsathi/toolsathi/pkg/calc"
)

func TestEvaluateCalcDispatch(t *testing.T) {
	tests := []struct {
		tool    string
		payload string
	}{
		{"risk-reward", `{"entry":50000,"stop_loss":49000,"take_profit":53000}`},
		{"position-size", `{"account_size":10000,"risk_percent":1,"entry":50000,"stop_loss":49000}`},
		{"crypto-profit", `{"investment":1000,"buy_price":100,"sell_price":120,"fee_percent":0.1}`},
		{"compounding", `{"principal":1000,"monthly_contribution":100,"years":5,"annual_rate_percent":7}`},
		{"dca", `{"amount":100,"frequency":"monthly","years":5,"annual_return_percent":10}`},
		{"emi", `{"principal":1000000,"annual_rate_percent":10.5,"tenure_months":240}`},
		{"percentage", `{"mode":"percent-of","a":20,"b":150}`},
		{"age", `{"dob":"2000-01-31","target":"2024-03-01"}`},
		{"keyword-density", `{"text":"go is great and go is fast"}`},
		{"word-counter", `{"text":"One sentence. Another one."}`},
		{"faq-schema", `{"faqs":[{"question":"What?","answer":"That."}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			result, err := EvaluateCalc(tt.tool, json.RawMessage(tt.payload))
			if err != nil {
				t.Fatalf("EvaluateCalc(%s): %v", tt.tool, err)
			}
			if result == nil {
				t.Fatalf("EvaluateCalc(%s) returned nil result", tt.tool)
			}
			if _, err := json.Marshal(result); err != nil {
				t.Errorf("result not marshalable: %v", err)
			}
		})
	}
}

func TestEvaluateCalcRiskRewardRatio(t *testing.T) {
	result, err := EvaluateCalc("risk-reward", json.RawMessage(`{"entry":50000,"stop_loss":49000,"take_profit":53000}`))
	if err != nil {
		t.Fatal(err)
	}
	m := result.(map[string]float64)
	if m["ratio"] != 3 {
		t.Errorf("ratio = %f, want 3", m["ratio"])
	}
}

func TestEvaluateCalcBadInput(t *testing.T) {
	_, err := EvaluateCalc("emi", json.RawMessage(`{"principal":"oops"}`))
	if !errors.Is(err, ErrBadCalcInput) {
		t.Errorf("expected ErrBadCalcInput, got %v", err)
	}

	_, err = EvaluateCalc("percentage", json.RawMessage(`{"mode":"nonsense","a":1,"b":2}`))
	if !errors.Is(err, ErrBadCalcInput) {
		t.Errorf("expected ErrBadCalcInput for bad mode, got %v", err)
	}
}

func TestEvaluateCalcDomainErrors(t *testing.T) {
	_, err := EvaluateCalc("percentage", json.RawMessage(`{"mode":"of-what","a":10,"b":0}`))
	if !errors.Is(err, calc.ErrNotComputable) {
		t.Errorf("expected ErrNotComputable, got %v", err)
	}

	_, err = EvaluateCalc("age", json.RawMessage(`{"dob":"2030-01-01","target":"2020-01-01"}`))
	if !errors.Is(err, calc.ErrInvertedDates) {
		t.Errorf("expected ErrInvertedDates, got %v", err)
	}
}

func TestEvaluateCalcUnknownTool(t *testing.T) {
	_, err := EvaluateCalc("viral-title", json.RawMessage(`{}`))
	if !errors.Is(err, ErrUnknownTool) {
		t.Errorf("expected ErrUnknownTool, got %v", err)
	}
}
