package calc

import "math"

// RiskReward returns the reward-to-risk ratio of a planned trade.
// A stop equal to the entry makes the ratio undefined.
func RiskReward(entry, stopLoss, takeProfit float64) (float64, error) {
	risk := math.Abs(entry - stopLoss)
	if risk == 0 {
		return 0, ErrNotComputable
	}
	reward := math.Abs(takeProfit - entry)
	return reward / risk, nil
}

// PositionInput describes a position-sizing request.
type PositionInput struct {
	AccountSize float64 `json:"account_size"`
	RiskPercent float64 `json:"risk_percent"`
	Entry       float64 `json:"entry"`
	StopLoss    float64 `json:"stop_loss"`
}

// PositionResult holds the sized position and its derived exposure.
type PositionResult struct {
	RiskAmount   float64 `json:"risk_amount"`
	PositionSize float64 `json:"position_size"`
	TotalValue   float64 `json:"total_value"`
	Leverage     float64 `json:"leverage"`
}

// PositionSize computes how many units to buy so that hitting the stop loses
// exactly the chosen fraction of the account.
func PositionSize(in PositionInput) (PositionResult, error) {
	if in.AccountSize <= 0 {
		return PositionResult{}, ErrNotComputable
	}
	priceDiff := math.Abs(in.Entry - in.StopLoss)
	if priceDiff == 0 {
		return PositionResult{}, ErrNotComputable
	}

	riskAmount := in.AccountSize * in.RiskPercent / 100
	size := riskAmount / priceDiff
	totalValue := size * in.Entry
	return PositionResult{
		RiskAmount:   riskAmount,
		PositionSize: size,
		TotalValue:   totalValue,
		Leverage:     totalValue / in.AccountSize,
	}, nil
}

// CryptoInput describes a buy-then-sell trade with symmetric exchange fees.
type CryptoInput struct {
	Investment float64 `json:"investment"`
	BuyPrice   float64 `json:"buy_price"`
	SellPrice  float64 `json:"sell_price"`
	FeePercent float64 `json:"fee_percent"`
}

// CryptoResult holds the net outcome of a crypto round trip.
type CryptoResult struct {
	Profit     float64 `json:"profit"`
	ROIPercent float64 `json:"roi_percent"`
	NetReturn  float64 `json:"net_return"`
	TotalFees  float64 `json:"total_fees"`
}

// CryptoProfit computes the profit of buying and later selling a coin with the
// exchange fee charged on both legs. The fee timing is asymmetric on purpose,
// mirroring real exchange mechanics: the buy fee is deducted from the invested
// capital before it converts to coins, while the sell fee is taken from the
// gross proceeds after conversion.
func CryptoProfit(in CryptoInput) (CryptoResult, error) {
	if in.Investment <= 0 || in.BuyPrice <= 0 || in.SellPrice <= 0 {
		return CryptoResult{}, ErrNotComputable
	}

	fee := in.FeePercent / 100
	buyFee := in.Investment * fee
	coins := (in.Investment - buyFee) / in.BuyPrice

	gross := coins * in.SellPrice
	sellFee := gross * fee
	net := gross - sellFee

	profit := net - in.Investment
	return CryptoResult{
		Profit:     profit,
		ROIPercent: profit / in.Investment * 100,
		NetReturn:  net,
		TotalFees:  buyFee + sellFee,
	}, nil
}
