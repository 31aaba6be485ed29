package series

import (
	"errors"
	"testing"
	"time"

	"OptionSentinel/internal/model"
)

func points(closes ...float64) []model.ClosePoint {
	base := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	pts := make([]model.ClosePoint, len(closes))
	for i, c := range closes {
		pts[i] = model.ClosePoint{Time: base.Add(time.Duration(i) * 3 * time.Minute), Close: c}
	}
	return pts
}

func TestStore_LatestPrevious(t *testing.T) {
	s := NewStore()
	if err := s.Load(model.TimeframeShort, points(100, 101, 102.5)); err != nil {
		t.Fatalf("load: %v", err)
	}
	last, err := s.Latest(model.TimeframeShort)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if last != 102.5 {
		t.Errorf("latest = %v, want 102.5", last)
	}
	prev, err := s.Previous(model.TimeframeShort)
	if err != nil {
		t.Fatalf("previous: %v", err)
	}
	if prev != 101 {
		t.Errorf("previous = %v, want 101", prev)
	}
}

func TestStore_InsufficientData(t *testing.T) {
	s := NewStore()
	if err := s.Load(model.TimeframeMedium, points(100)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := s.Latest(model.TimeframeMedium); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("latest with 1 point: got %v, want ErrInsufficientData", err)
	}
	if _, err := s.Previous(model.TimeframeLong); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("previous of empty timeframe: got %v, want ErrInsufficientData", err)
	}
}

func TestStore_LoadReplaces(t *testing.T) {
	s := NewStore()
	_ = s.Load(model.TimeframeShort, points(1, 2, 3))
	_ = s.Load(model.TimeframeShort, points(10, 20))
	last, _ := s.Latest(model.TimeframeShort)
	if last != 20 {
		t.Errorf("after replace, latest = %v, want 20", last)
	}
	if got := len(s.Closes(model.TimeframeShort)); got != 2 {
		t.Errorf("after replace, len = %d, want 2", got)
	}
}

func TestStore_RejectsOutOfOrder(t *testing.T) {
	s := NewStore()
	pts := points(1, 2, 3)
	pts[2].Time = pts[0].Time.Add(-time.Minute)
	if err := s.Load(model.TimeframeShort, pts); err == nil {
		t.Error("expected error for out-of-order timestamps")
	}
}

func TestStore_Complete(t *testing.T) {
	s := NewStore()
	_ = s.Load(model.TimeframeShort, points(1, 2))
	_ = s.Load(model.TimeframeMedium, points(1, 2))
	if s.Complete() {
		t.Error("complete with missing long timeframe")
	}
	_ = s.Load(model.TimeframeLong, points(1, 2))
	if !s.Complete() {
		t.Error("expected complete with all three timeframes")
	}
}
