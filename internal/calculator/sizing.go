package calculator

import (
	"errors"
	"math"

	"OptionSentinel/internal/model"
)

// ErrInvalidPrice is returned when sizing is attempted on a non-positive price.
var ErrInvalidPrice = errors.New("calculator: reference price must be positive")

// OrderSize is the sized, bracket-annotated result of a sizing calculation.
type OrderSize struct {
	Quantity     int
	LimitPrice   float64
	StopLoss     float64
	Target       float64
	TrailingStop float64
}

// Size converts a reference price into a capital-bounded order quantity and
// bracket parameters. Quantity is floored to whole lots and capped at a single
// lot regardless of capital headroom. The limit price carries a small slippage
// buffer to improve fill probability. Quantity may legitimately be 0; the
// engine treats that as a rejection.
func Size(referencePrice float64, risk model.RiskParameters) (OrderSize, error) {
	if referencePrice <= 0 {
		return OrderSize{}, ErrInvalidPrice
	}

	lot := float64(risk.LotSize)
	rawQty := math.Floor(risk.CapitalCeiling/referencePrice/lot) * lot
	qty := int(rawQty)
	if qty > risk.LotSize {
		qty = risk.LotSize
	}

	return OrderSize{
		Quantity:     qty,
		LimitPrice:   referencePrice + risk.SlippageBuffer,
		StopLoss:     risk.StopLossPoints,
		Target:       risk.TargetPoints,
		TrailingStop: risk.TrailingPoints,
	}, nil
}
