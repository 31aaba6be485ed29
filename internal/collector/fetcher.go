package collector

import (
	"context"
	"errors"

	"OptionSentinel/internal/model"
)

// ErrDataUnavailable signals a failed or empty market-data fetch. The engine
// treats it as a no-entry for the affected side this tick.
var ErrDataUnavailable = errors.New("collector: market data unavailable")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchSeries(ctx context.Context, inst model.Instrument, tf model.Timeframe, lookbackDays int) ([]model.ClosePoint, error)
	FetchLTP(ctx context.Context, inst model.Instrument) (float64, error)
	Name() string
}
