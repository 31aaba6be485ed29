package series

import (
	"errors"
	"fmt"

	"OptionSentinel/internal/model"
)

// ErrInsufficientData is returned when a timeframe holds fewer than 2 points.
var ErrInsufficientData = errors.New("series: insufficient data")

// Store holds the aligned close-price series per timeframe for one instrument.
// It owns no external resources; Load replaces state wholesale.
type Store struct {
	series map[model.Timeframe][]model.ClosePoint
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{series: make(map[model.Timeframe][]model.ClosePoint)}
}

// Load replaces the stored series for the given timeframe.
// Timestamps must be non-decreasing; gaps are the fetcher's concern.
func (s *Store) Load(tf model.Timeframe, points []model.ClosePoint) error {
	for i := 1; i < len(points); i++ {
		if points[i].Time.Before(points[i-1].Time) {
			return fmt.Errorf("series: %s points out of order at index %d", tf, i)
		}
	}
	s.series[tf] = points
	return nil
}

// Latest returns the last close for the timeframe.
func (s *Store) Latest(tf model.Timeframe) (float64, error) {
	pts := s.series[tf]
	if len(pts) < 2 {
		return 0, fmt.Errorf("%w: %s has %d points", ErrInsufficientData, tf, len(pts))
	}
	return pts[len(pts)-1].Close, nil
}

// Previous returns the second-to-last close for the timeframe.
func (s *Store) Previous(tf model.Timeframe) (float64, error) {
	pts := s.series[tf]
	if len(pts) < 2 {
		return 0, fmt.Errorf("%w: %s has %d points", ErrInsufficientData, tf, len(pts))
	}
	return pts[len(pts)-2].Close, nil
}

// Closes returns the raw close values for the timeframe, oldest first.
func (s *Store) Closes(tf model.Timeframe) []float64 {
	pts := s.series[tf]
	closes := make([]float64, len(pts))
	for i, p := range pts {
		closes[i] = p.Close
	}
	return closes
}

// Complete reports whether all three timeframes hold enough data to evaluate.
func (s *Store) Complete() bool {
	for _, tf := range model.Timeframes {
		if len(s.series[tf]) < 2 {
			return false
		}
	}
	return true
}
