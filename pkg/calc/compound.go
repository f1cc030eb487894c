package calc

// CompoundInput describes a monthly-compounded savings projection.
type CompoundInput struct {
	Principal           float64 `json:"principal"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	Years               int     `json:"years"`
	AnnualRatePercent   float64 `json:"annual_rate_percent"`
}

// CompoundYear is one year of a compounding projection.
type CompoundYear struct {
	Year          int     `json:"year"`
	Balance       float64 `json:"balance"`
	Contributions float64 `json:"contributions"`
	Interest      float64 `json:"interest"`
}

// CompoundProjection returns the year-by-year balance of a deposit compounded
// monthly with a fixed contribution added after each month's growth. Year 0
// carries the initial principal only. A non-positive year count yields an
// empty projection.
func CompoundProjection(in CompoundInput) []CompoundYear {
	if in.Years <= 0 {
		return nil
	}

	monthlyRate := in.AnnualRatePercent / 100 / 12
	balance := in.Principal
	contributions := in.Principal

	series := make([]CompoundYear, 0, in.Years+1)
	for year := 0; year <= in.Years; year++ {
		if year > 0 {
			for m := 0; m < 12; m++ {
				balance = balance*(1+monthlyRate) + in.MonthlyContribution
				contributions += in.MonthlyContribution
			}
		}
		series = append(series, CompoundYear{
			Year:          year,
			Balance:       balance,
			Contributions: contributions,
			Interest:      balance - contributions,
		})
	}
	return series
}
