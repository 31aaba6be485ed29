package collector

import (
	"context"
	"time"

	"OptionSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	LTP    float64
	Series map[model.Timeframe][]model.ClosePoint
	Err    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_ context.Context, _ model.Instrument, tf model.Timeframe, lookbackDays int) ([]model.ClosePoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if pts, ok := m.Series[tf]; ok {
		return pts, nil
	}
	return generateMockSeries(m.LTP, 20), nil
}

func (m *MockFetcher) FetchLTP(_ context.Context, _ model.Instrument) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.LTP, nil
}

func generateMockSeries(basePrice float64, count int) []model.ClosePoint {
	pts := make([]model.ClosePoint, count)
	for i := 0; i < count; i++ {
		pts[i] = model.ClosePoint{
			Time:  time.Now().Add(-time.Duration(count-i) * 3 * time.Minute),
			Close: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return pts
}
