package model

// RiskParameters is the immutable, process-wide risk configuration.
// Built once from config at startup and never mutated afterwards.
type RiskParameters struct {
	CapitalCeiling   float64
	LotSize          int
	StopLossPoints   float64
	TargetPoints     float64
	TrailingPoints   float64
	SlippageBuffer   float64
	MaxTradesPerSide int
}
