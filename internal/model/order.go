package model

import "time"

// OrderIntent is the fully-sized bracket order the engine hands to the
// broker transport. The engine does not track the order after submission.
type OrderIntent struct {
	ClientOrderID string
	Side          Side
	Instrument    Instrument
	Quantity      int
	LimitPrice    float64
	StopLoss      float64
	Target        float64
	TrailingStop  float64
	CreatedAt     time.Time
}

// OrderConfirmation is the broker's acknowledgement of an accepted order.
type OrderConfirmation struct {
	OrderID   string
	PlacedAt  time.Time
	AvgPrice  float64
	ClientRef string
}
