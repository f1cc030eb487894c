package calc

import "math"

// EMIInput describes a loan amortization request.
type EMIInput struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	TenureMonths      int     `json:"tenure_months"`
}

// EMIResult holds the monthly installment and totals for a loan.
type EMIResult struct {
	EMI           float64 `json:"emi"`
	TotalAmount   float64 `json:"total_amount"`
	TotalInterest float64 `json:"total_interest"`
}

// EMI computes the fixed monthly installment for a loan.
// A zero rate degenerates to the simple split P/N rather than dividing 0 by 0.
func EMI(in EMIInput) (EMIResult, error) {
	if in.Principal <= 0 || in.TenureMonths <= 0 || in.AnnualRatePercent < 0 {
		return EMIResult{}, ErrNotComputable
	}

	n := float64(in.TenureMonths)
	r := in.AnnualRatePercent / 12 / 100

	var emi float64
	if r == 0 {
		emi = in.Principal / n
	} else {
		pow := math.Pow(1+r, n)
		emi = in.Principal * r * pow / (pow - 1)
	}

	total := emi * n
	return EMIResult{
		EMI:           emi,
		TotalAmount:   total,
		TotalInterest: total - in.Principal,
	}, nil
}
