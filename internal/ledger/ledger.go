package ledger

import (
	"fmt"
	"log"
	"sync"

	"OptionSentinel/internal/model"
)

// Ledger enforces the per-side daily trade cap with concurrency safety.
// Counts survive a same-day restart via the JSON state file so a crash can
// never grant extra trades.
type Ledger struct {
	mu         sync.Mutex
	state      *State
	filePath   string
	maxPerSide int
}

// New creates a Ledger, loading or initializing state from disk. A state
// file from a previous trading day is discarded.
func New(filePath string, maxPerSide int) (*Ledger, error) {
	if maxPerSide <= 0 {
		return nil, fmt.Errorf("ledger: max trades per side must be positive, got %d", maxPerSide)
	}
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	if state.Stale() {
		state = NewState()
	}
	l := &Ledger{state: state, filePath: filePath, maxPerSide: maxPerSide}
	if err := l.save(); err != nil {
		return nil, err
	}
	return l, nil
}

// CanTrade reports whether the side is still under its daily cap.
func (l *Ledger) CanTrade(side model.Side) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Counts[side] < l.maxPerSide
}

// RecordTrade increments the side's counter. It must be called exactly once
// per confirmed submission, and only after the broker accepts the order.
func (l *Ledger) RecordTrade(side model.Side) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state.Counts[side] >= l.maxPerSide {
		return fmt.Errorf("ledger: %s already at daily cap %d", side, l.maxPerSide)
	}
	l.state.Counts[side]++
	if err := l.save(); err != nil {
		log.Printf("[ERROR] failed to save ledger state: %v", err)
	}
	return nil
}

// Counts returns a copy of the per-side counters.
func (l *Ledger) Counts() map[model.Side]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[model.Side]int, len(l.state.Counts))
	for side, n := range l.state.Counts {
		out[side] = n
	}
	return out
}

// ResetDay zeroes all counters for a new trading session.
func (l *Ledger) ResetDay() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state = NewState()
	if err := l.save(); err != nil {
		log.Printf("[ERROR] failed to save ledger state after reset: %v", err)
	}
}

func (l *Ledger) save() error {
	return SaveState(l.filePath, l.state)
}
