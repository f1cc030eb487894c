package calc

import (
	"math"
	"testing"
)

func TestCompoundProjection(t *testing.T) {
	series := CompoundProjection(CompoundInput{
		Principal:           1000,
		MonthlyContribution: 100,
		Years:               2,
		AnnualRatePercent:   8,
	})
	if len(series) != 3 {
		t.Fatalf("expected 3 years (0..2), got %d", len(series))
	}

	// Year 0 is the untouched principal.
	if series[0].Balance != 1000 || series[0].Contributions != 1000 || series[0].Interest != 0 {
		t.Errorf("unexpected year 0: %+v", series[0])
	}

	// Recompute year 1 by hand.
	r := 8.0 / 100 / 12
	balance := 1000.0
	for m := 0; m < 12; m++ {
		balance = balance*(1+r) + 100
	}
	if math.Abs(series[1].Balance-balance) > 1e-9 {
		t.Errorf("expected year 1 balance %.4f, got %.4f", balance, series[1].Balance)
	}
	if series[1].Contributions != 1000+12*100 {
		t.Errorf("expected contributions 2200, got %.2f", series[1].Contributions)
	}
	if math.Abs(series[1].Interest-(series[1].Balance-series[1].Contributions)) > 1e-9 {
		t.Errorf("interest is not balance minus contributions: %+v", series[1])
	}

	// Balances grow monotonically with a positive rate and contributions.
	for i := 1; i < len(series); i++ {
		if series[i].Balance <= series[i-1].Balance {
			t.Errorf("balance not increasing at year %d", i)
		}
	}
}

func TestCompoundProjectionZeroRate(t *testing.T) {
	series := CompoundProjection(CompoundInput{
		Principal:           500,
		MonthlyContribution: 10,
		Years:               1,
		AnnualRatePercent:   0,
	})
	last := series[len(series)-1]
	if last.Balance != 500+120 {
		t.Errorf("expected 620 at zero rate, got %.2f", last.Balance)
	}
	if last.Interest != 0 {
		t.Errorf("expected zero interest, got %.2f", last.Interest)
	}
}

func TestCompoundProjectionEmpty(t *testing.T) {
	if series := CompoundProjection(CompoundInput{Principal: 1000, Years: 0}); series != nil {
		t.Errorf("expected empty series for zero years, got %d entries", len(series))
	}
	if series := CompoundProjection(CompoundInput{Principal: 1000, Years: -3}); series != nil {
		t.Errorf("expected empty series for negative years, got %d entries", len(series))
	}
}
