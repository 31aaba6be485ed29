package broker

import (
	"context"
	"fmt"

	"OptionSentinel/internal/model"
)

// OrderRejection is a broker-declined order. It is an expected operational
// outcome, not a transport failure: the caller logs it, skips the ledger
// increment and keeps polling.
type OrderRejection struct {
	Side   model.Side
	Symbol string
	Reason string
}

func (r *OrderRejection) Error() string {
	return fmt.Sprintf("order rejected for %s %s: %s", r.Symbol, r.Side, r.Reason)
}

// Broker is the order-submission surface the engine needs. SubmitOrder is
// called exactly once per accepted decision; a declined order comes back as
// *OrderRejection, anything else is a transport error.
type Broker interface {
	Name() string
	SubmitOrder(ctx context.Context, intent *model.OrderIntent) (*model.OrderConfirmation, error)
}
