package broker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"OptionSentinel/internal/model"
)

// PaperBroker accepts every order in memory. Used for dry runs and tests;
// RejectReason flips it into a broker that declines everything.
type PaperBroker struct {
	mu           sync.Mutex
	Placed       []*model.OrderIntent
	RejectReason string
}

// NewPaperBroker creates an in-memory order transport.
func NewPaperBroker() *PaperBroker { return &PaperBroker{} }

func (p *PaperBroker) Name() string { return "paper" }

func (p *PaperBroker) SubmitOrder(_ context.Context, intent *model.OrderIntent) (*model.OrderConfirmation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.RejectReason != "" {
		return nil, &OrderRejection{
			Side:   intent.Side,
			Symbol: intent.Instrument.Symbol,
			Reason: p.RejectReason,
		}
	}

	p.Placed = append(p.Placed, intent)
	log.Printf("[INFO] paper order: %s %s qty=%d limit=%.2f", intent.Side, intent.Instrument.Symbol, intent.Quantity, intent.LimitPrice)
	return &model.OrderConfirmation{
		OrderID:   uuid.NewString(),
		PlacedAt:  time.Now(),
		AvgPrice:  intent.LimitPrice,
		ClientRef: intent.ClientOrderID,
	}, nil
}

// PlacedOrders returns a copy of all accepted intents.
func (p *PaperBroker) PlacedOrders() []*model.OrderIntent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*model.OrderIntent, len(p.Placed))
	copy(out, p.Placed)
	return out
}
