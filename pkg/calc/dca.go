package calc

import "math"

// Frequency is how often a DCA contribution is made.
type Frequency string

// Supported contribution frequencies.
const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// PeriodsPerYear returns the number of contribution periods in a year,
// or 0 for an unknown frequency.
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case Daily:
		return 365
	case Weekly:
		return 52
	case Monthly:
		return 12
	default:
		return 0
	}
}

// DCAInput describes a dollar-cost-averaging plan.
type DCAInput struct {
	Amount              float64   `json:"amount"`
	Frequency           Frequency `json:"frequency"`
	Years               float64   `json:"years"`
	AnnualReturnPercent float64   `json:"annual_return_percent"`
}

// DCAResult holds the projected outcome of a DCA plan.
type DCAResult struct {
	TotalInvested float64 `json:"total_invested"`
	FutureValue   float64 `json:"future_value"`
	Profit        float64 `json:"profit"`
	ROIPercent    float64 `json:"roi_percent"`
}

// DCA projects the future value of periodic investments made at the start of
// each period (annuity-due). A zero per-period rate degenerates to the plain
// sum of contributions; negative expected returns are allowed.
func DCA(in DCAInput) (DCAResult, error) {
	periods := in.Frequency.PeriodsPerYear()
	if in.Amount <= 0 || in.Years <= 0 || periods == 0 {
		return DCAResult{}, ErrNotComputable
	}

	n := in.Years * float64(periods)
	r := in.AnnualReturnPercent / 100 / float64(periods)
	invested := in.Amount * n

	var fv float64
	if r == 0 {
		fv = invested
	} else {
		fv = in.Amount * ((math.Pow(1+r, n) - 1) / r) * (1 + r)
	}

	profit := fv - invested
	return DCAResult{
		TotalInvested: invested,
		FutureValue:   fv,
		Profit:        profit,
		ROIPercent:    profit / invested * 100,
	}, nil
}
