package model

// Side is an option leg. Call and Put are fully independent trade lines
// with independent instruments, signals and daily counters.
type Side string

const (
	SideCall Side = "CE"
	SidePut  Side = "PE"
)

// Sides lists both legs in evaluation order.
var Sides = []Side{SideCall, SidePut}

// SignalResult is the outcome of one momentum evaluation. RSI is kept for
// observability only; Entry alone drives the order decision.
type SignalResult struct {
	Entry bool
	RSI   float64
}
