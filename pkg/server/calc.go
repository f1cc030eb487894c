package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/toolsathi/toolsathi/pkg/calc"
	"github.com/toolsathi/toolsathi/pkg/textkit"
)

// ErrBadCalcInput is returned when a calculator payload cannot be decoded.
var ErrBadCalcInput = errors.New("invalid calculator input")

// ErrUnknownTool is returned when no calculator matches the tool id.
var ErrUnknownTool = errors.New("unknown calculator tool")

// EvaluateCalc dispatches a typed JSON payload to the calculator or text
// tool matching the id and returns its result. Domain errors from pkg/calc
// pass through unchanged so callers can map them to status codes.
func EvaluateCalc(toolID string, payload json.RawMessage) (any, error) {
	switch toolID {
	case "risk-reward":
		var in struct {
			Entry      float64 `json:"entry"`
			StopLoss   float64 `json:"stop_loss"`
			TakeProfit float64 `json:"take_profit"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		ratio, err := calc.RiskReward(in.Entry, in.StopLoss, in.TakeProfit)
		if err != nil {
			return nil, err
		}
		return map[string]float64{"ratio": ratio}, nil

	case "position-size":
		var in calc.PositionInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		return calc.PositionSize(in)

	case "crypto-profit":
		var in calc.CryptoInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		return calc.CryptoProfit(in)

	case "compounding":
		var in calc.CompoundInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		return map[string]any{"projection": calc.CompoundProjection(in)}, nil

	case "dca":
		var in calc.DCAInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		return calc.DCA(in)

	case "emi":
		var in calc.EMIInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		return calc.EMI(in)

	case "percentage":
		var in struct {
			Mode string  `json:"mode"`
			A    float64 `json:"a"`
			B    float64 `json:"b"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		switch in.Mode {
		case "percent-of":
			return map[string]float64{"result": calc.PercentOf(in.A, in.B)}, nil
		case "of-what":
			v, err := calc.PercentOfWhat(in.A, in.B)
			if err != nil {
				return nil, err
			}
			return map[string]float64{"result": v}, nil
		case "change":
			v, err := calc.PercentChange(in.A, in.B)
			if err != nil {
				return nil, err
			}
			return map[string]float64{"result": v}, nil
		default:
			return nil, fmt.Errorf("%w: mode %q", ErrBadCalcInput, in.Mode)
		}

	case "age":
		var in struct {
			DOB    string `json:"dob"`
			Target string `json:"target"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		dob, err := time.Parse("2006-01-02", in.DOB)
		if err != nil {
			return nil, fmt.Errorf("%w: dob %q", ErrBadCalcInput, in.DOB)
		}
		target := time.Now().UTC()
		if in.Target != "" {
			target, err = time.Parse("2006-01-02", in.Target)
			if err != nil {
				return nil, fmt.Errorf("%w: target %q", ErrBadCalcInput, in.Target)
			}
		}
		return calc.AgeDelta(dob, target)

	case "keyword-density":
		var in struct {
			Text string `json:"text"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		keywords := textkit.KeywordDensity(in.Text)
		if keywords == nil {
			keywords = []textkit.Keyword{}
		}
		return map[string]any{"keywords": keywords}, nil

	case "word-counter":
		var in struct {
			Text string `json:"text"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		return textkit.Stats(in.Text), nil

	case "faq-schema":
		var in struct {
			FAQs []textkit.FAQ `json:"faqs"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		schema, err := textkit.FAQSchema(in.FAQs)
		if err != nil {
			return nil, err
		}
		return map[string]string{"schema": schema}, nil

	default:
		return nil, ErrUnknownTool
	}
}

func decode(payload json.RawMessage, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadCalcInput, err)
	}
	return nil
}
