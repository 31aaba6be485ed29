package recorder

import "OptionSentinel/internal/model"

// SignalCheck holds one per-side evaluation outcome.
type SignalCheck struct {
	Side  model.Side
	RSI   float64
	Entry bool
	Note  string
}

// OrderEvent records an order submission attempt and its outcome.
type OrderEvent struct {
	Side          model.Side
	Symbol        string
	Quantity      int
	LimitPrice    float64
	StopLoss      float64
	Target        float64
	TrailingStop  float64
	Status        string // "PLACED", "REJECTED"
	BrokerOrderID string
	Reason        string
}

// LedgerEvent records a trade-cap counter change.
type LedgerEvent struct {
	Side       model.Side
	Count      int
	MaxPerSide int
	EventType  string // "TRADE", "RESET"
}

// Recorder persists run history for later analysis.
type Recorder interface {
	RecordSignalCheck(evt *SignalCheck) error
	RecordOrder(evt *OrderEvent) error
	RecordLedgerEvent(evt *LedgerEvent) error
	Close() error
}
