package collector

import (
	"context"
	"fmt"
	"math"
	"time"

	"OptionSentinel/internal/model"
)

// Resolver maps an index and strike offset to the concrete option contract
// to trade: at-the-money strike rounded to the exchange step, offset by
// strikeOffset steps, on the nearest weekly expiry.
type Resolver struct {
	Fetcher    Fetcher
	Index      model.Instrument // spot index instrument, e.g. NSE NIFTY
	StrikeStep float64
	LotSize    int
	Now        func() time.Time
}

// NewResolver creates a resolver for the given index instrument.
func NewResolver(fetcher Fetcher, index model.Instrument, strikeStep float64, lotSize int) *Resolver {
	return &Resolver{
		Fetcher:    fetcher,
		Index:      index,
		StrikeStep: strikeStep,
		LotSize:    lotSize,
		Now:        time.Now,
	}
}

// ATMStrike rounds the spot price to the nearest strike step and applies the
// offset in whole steps. Exported for direct testing.
func ATMStrike(spot, step float64, offset int) float64 {
	return math.Round(spot/step)*step + float64(offset)*step
}

// NearestWeeklyExpiry returns the next Thursday on or after the given day,
// the standard weekly expiry for NSE index options.
func NearestWeeklyExpiry(from time.Time) time.Time {
	d := from
	for d.Weekday() != time.Thursday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// Resolve builds the tradable option instrument for the side at the current
// at-the-money level.
func (r *Resolver) Resolve(ctx context.Context, strikeOffset int, side model.Side) (model.Instrument, error) {
	spot, err := r.Fetcher.FetchLTP(ctx, r.Index)
	if err != nil {
		return model.Instrument{}, fmt.Errorf("resolve %s: %w", side, err)
	}

	strike := ATMStrike(spot, r.StrikeStep, strikeOffset)
	expiry := NearestWeeklyExpiry(r.Now())
	symbol := fmt.Sprintf("%s%s%.0f%s", r.Index.Symbol, expiry.Format("02Jan06"), strike, side)

	return model.Instrument{
		Exchange: "NFO",
		Symbol:   symbol,
		Token:    symbol, // token equals symbol until looked up in the contract master
		LotSize:  r.LotSize,
	}, nil
}
