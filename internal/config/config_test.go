package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Market.Index != "NIFTY" {
		t.Errorf("index = %s, want NIFTY", cfg.Market.Index)
	}
	if cfg.Risk.CapitalCeiling != 70000 {
		t.Errorf("capital = %v, want 70000", cfg.Risk.CapitalCeiling)
	}
	if cfg.Risk.MaxTradesPerSide != 5 {
		t.Errorf("max trades = %d, want 5", cfg.Risk.MaxTradesPerSide)
	}
	if cfg.Schedule.PollInterval != 60*time.Second {
		t.Errorf("poll interval = %v, want 60s", cfg.Schedule.PollInterval)
	}
	if cfg.Schedule.EntryStart != "09:26" || cfg.Schedule.EntryEnd != "15:00" {
		t.Errorf("window = %s-%s, want 09:26-15:00", cfg.Schedule.EntryStart, cfg.Schedule.EntryEnd)
	}
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
risk:
  capital_ceiling: 50000
  lot_size: 25
market:
  index: BANKNIFTY
  strike_step: 100
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("MAX_CAPITAL", "90000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Risk.CapitalCeiling != 90000 {
		t.Errorf("env override lost: capital = %v, want 90000", cfg.Risk.CapitalCeiling)
	}
	if cfg.Risk.LotSize != 25 {
		t.Errorf("lot size = %d, want 25 from yaml", cfg.Risk.LotSize)
	}
	if cfg.Market.Index != "BANKNIFTY" || cfg.Market.StrikeStep != 100 {
		t.Errorf("market = %+v, want BANKNIFTY/100", cfg.Market)
	}
}

func TestValidate_PaperModeNeedsNoCredentials(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Broker.Paper = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("paper mode validation failed: %v", err)
	}
}

func TestValidate_LiveModeRequiresCredentials(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Broker.Paper = false
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error without broker credentials")
	}
}

func TestValidate_RejectsBadRisk(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Broker.Paper = true
	cfg.Risk.MaxTradesPerSide = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative trade cap")
	}
}
