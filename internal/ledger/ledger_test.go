package ledger

import (
	"path/filepath"
	"testing"

	"OptionSentinel/internal/model"
)

func newTestLedger(t *testing.T, maxPerSide int) *Ledger {
	t.Helper()
	l, err := New(filepath.Join(t.TempDir(), "ledger.json"), maxPerSide)
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	return l
}

func TestLedger_CapPerSide(t *testing.T) {
	l := newTestLedger(t, 5)
	for i := 0; i < 5; i++ {
		if !l.CanTrade(model.SideCall) {
			t.Fatalf("CanTrade(CE) false after %d trades, cap is 5", i)
		}
		if err := l.RecordTrade(model.SideCall); err != nil {
			t.Fatalf("record trade %d: %v", i, err)
		}
	}
	if l.CanTrade(model.SideCall) {
		t.Error("CanTrade(CE) true at cap")
	}
	if !l.CanTrade(model.SidePut) {
		t.Error("CE cap must not affect PE")
	}
}

func TestLedger_RecordPastCapFails(t *testing.T) {
	l := newTestLedger(t, 1)
	if err := l.RecordTrade(model.SidePut); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := l.RecordTrade(model.SidePut); err == nil {
		t.Error("expected error recording past the cap")
	}
	if got := l.Counts()[model.SidePut]; got != 1 {
		t.Errorf("count = %d, want 1 (never exceeds cap)", got)
	}
}

func TestLedger_ResetDay(t *testing.T) {
	l := newTestLedger(t, 2)
	_ = l.RecordTrade(model.SideCall)
	_ = l.RecordTrade(model.SideCall)
	l.ResetDay()
	if !l.CanTrade(model.SideCall) {
		t.Error("expected CanTrade true after reset")
	}
	if got := l.Counts()[model.SideCall]; got != 0 {
		t.Errorf("count after reset = %d, want 0", got)
	}
}

func TestLedger_PersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	l, err := New(path, 3)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_ = l.RecordTrade(model.SideCall)
	_ = l.RecordTrade(model.SideCall)

	reloaded, err := New(path, 3)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.Counts()[model.SideCall]; got != 2 {
		t.Errorf("reloaded count = %d, want 2", got)
	}
}

func TestLedger_InvalidCap(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "l.json"), 0); err == nil {
		t.Error("expected error for non-positive cap")
	}
}
