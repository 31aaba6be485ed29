package collector

import (
	"context"
	"strings"
	"testing"
	"time"

	"OptionSentinel/internal/model"
)

func TestATMStrike(t *testing.T) {
	tests := []struct {
		spot   float64
		step   float64
		offset int
		want   float64
	}{
		{22510, 50, 0, 22500},
		{22530, 50, 0, 22550},
		{22525, 50, 0, 22550}, // round half away from zero
		{22510, 50, -1, 22450},
		{22510, 50, 2, 22600},
		{44980, 100, 0, 45000},
	}
	for _, tt := range tests {
		if got := ATMStrike(tt.spot, tt.step, tt.offset); got != tt.want {
			t.Errorf("ATMStrike(%v, %v, %d) = %v, want %v", tt.spot, tt.step, tt.offset, got, tt.want)
		}
	}
}

func TestNearestWeeklyExpiry(t *testing.T) {
	// Monday 2025-06-02 → Thursday 2025-06-05.
	mon := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	if got := NearestWeeklyExpiry(mon); got.Day() != 5 {
		t.Errorf("expiry from Monday = %v, want the 5th", got)
	}
	// A Thursday resolves to itself.
	thu := time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)
	if got := NearestWeeklyExpiry(thu); !got.Equal(thu) {
		t.Errorf("expiry from Thursday = %v, want same day", got)
	}
}

func TestResolver_BuildsSymbol(t *testing.T) {
	fetcher := &MockFetcher{LTP: 22512}
	index := model.Instrument{Exchange: "NSE", Symbol: "NIFTY", Token: "26000"}
	r := NewResolver(fetcher, index, 50, 50)
	r.Now = func() time.Time { return time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC) }

	inst, err := r.Resolve(context.Background(), -1, model.SideCall)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if inst.Exchange != "NFO" {
		t.Errorf("exchange = %s, want NFO", inst.Exchange)
	}
	if want := "NIFTY05Jun2522450CE"; inst.Symbol != want {
		t.Errorf("symbol = %s, want %s", inst.Symbol, want)
	}
	if inst.LotSize != 50 {
		t.Errorf("lot size = %d, want 50", inst.LotSize)
	}
}

func TestResolver_PropagatesDataUnavailable(t *testing.T) {
	fetcher := &MockFetcher{Err: ErrDataUnavailable}
	r := NewResolver(fetcher, model.Instrument{Symbol: "NIFTY"}, 50, 50)
	if _, err := r.Resolve(context.Background(), 0, model.SidePut); err == nil ||
		!strings.Contains(err.Error(), "unavailable") {
		t.Errorf("expected data-unavailable error, got %v", err)
	}
}
