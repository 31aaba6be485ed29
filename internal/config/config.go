package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Broker struct {
		BaseURL    string `yaml:"base_url"`
		UserID     string `yaml:"user_id"`
		APIKey     string `yaml:"-"`
		Password   string `yaml:"-"`
		TOTPSecret string `yaml:"-"`
		Paper      bool   `yaml:"paper"`
	} `yaml:"broker"`
	Market struct {
		Index        string  `yaml:"index"`
		IndexToken   string  `yaml:"index_token"`
		StrikeStep   float64 `yaml:"strike_step"`
		StrikeOffset int     `yaml:"strike_offset"`
		LookbackDays int     `yaml:"lookback_days"`
	} `yaml:"market"`
	Risk struct {
		CapitalCeiling   float64 `yaml:"capital_ceiling"`
		LotSize          int     `yaml:"lot_size"`
		StopLossPoints   float64 `yaml:"stop_loss_points"`
		TargetPoints     float64 `yaml:"target_points"`
		TrailingPoints   float64 `yaml:"trailing_points"`
		SlippageBuffer   float64 `yaml:"slippage_buffer"`
		MaxTradesPerSide int     `yaml:"max_trades_per_side"`
	} `yaml:"risk"`
	Schedule struct {
		PollInterval time.Duration `yaml:"poll_interval"`
		EntryStart   string        `yaml:"entry_start"`
		EntryEnd     string        `yaml:"entry_end"`
		ResetCron    string        `yaml:"reset_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"-"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Ledger struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"ledger"`
	Metrics struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"metrics"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Credentials come from the environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("BROKER_BASE_URL"); v != "" {
		cfg.Broker.BaseURL = v
	}
	if v := os.Getenv("BROKER_USER_ID"); v != "" {
		cfg.Broker.UserID = v
	}
	cfg.Broker.APIKey = os.Getenv("BROKER_API_KEY")
	cfg.Broker.Password = os.Getenv("BROKER_PASSWORD")
	cfg.Broker.TOTPSecret = os.Getenv("BROKER_TOTP_SECRET")
	if v := os.Getenv("PAPER_MODE"); v != "" {
		cfg.Broker.Paper = v == "true" || v == "1"
	}
	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("MAX_CAPITAL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Risk.CapitalCeiling = f
		}
	}
	if v := os.Getenv("MAX_TRADES_PER_DAY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Risk.MaxTradesPerSide = n
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Market.Index == "" {
		cfg.Market.Index = "NIFTY"
	}
	if cfg.Market.IndexToken == "" {
		cfg.Market.IndexToken = "26000"
	}
	if cfg.Market.StrikeStep == 0 {
		cfg.Market.StrikeStep = 50
	}
	if cfg.Market.StrikeOffset == 0 {
		cfg.Market.StrikeOffset = -1
	}
	if cfg.Market.LookbackDays == 0 {
		cfg.Market.LookbackDays = 3
	}
	if cfg.Risk.CapitalCeiling == 0 {
		cfg.Risk.CapitalCeiling = 70000
	}
	if cfg.Risk.LotSize == 0 {
		cfg.Risk.LotSize = 50
	}
	if cfg.Risk.StopLossPoints == 0 {
		cfg.Risk.StopLossPoints = 50
	}
	if cfg.Risk.TargetPoints == 0 {
		cfg.Risk.TargetPoints = 25
	}
	if cfg.Risk.TrailingPoints == 0 {
		cfg.Risk.TrailingPoints = 5
	}
	if cfg.Risk.SlippageBuffer == 0 {
		cfg.Risk.SlippageBuffer = 0.05
	}
	if cfg.Risk.MaxTradesPerSide == 0 {
		cfg.Risk.MaxTradesPerSide = 5
	}
	if cfg.Schedule.PollInterval == 0 {
		cfg.Schedule.PollInterval = 60 * time.Second
	}
	if cfg.Schedule.EntryStart == "" {
		cfg.Schedule.EntryStart = "09:26"
	}
	if cfg.Schedule.EntryEnd == "" {
		cfg.Schedule.EntryEnd = "15:00"
	}
	if cfg.Schedule.ResetCron == "" {
		cfg.Schedule.ResetCron = "0 0 9 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/option_sentinel.db"
	}
	if cfg.Ledger.StateFile == "" {
		cfg.Ledger.StateFile = "data/ledger_state.json"
	}
	if cfg.Metrics.ListenAddr == "" {
		cfg.Metrics.ListenAddr = ":9107"
	}

	return cfg, nil
}

// Validate checks that the bot can trade safely with this configuration.
// A validation failure is fatal: the polling loop must not start.
func (c *Config) Validate() error {
	if !c.Broker.Paper {
		if c.Broker.BaseURL == "" {
			return fmt.Errorf("broker.base_url is required in live mode")
		}
		if c.Broker.UserID == "" || c.Broker.APIKey == "" {
			return fmt.Errorf("broker credentials are required in live mode")
		}
	}
	if c.Risk.CapitalCeiling <= 0 {
		return fmt.Errorf("risk.capital_ceiling must be positive")
	}
	if c.Risk.LotSize <= 0 {
		return fmt.Errorf("risk.lot_size must be positive")
	}
	if c.Risk.MaxTradesPerSide <= 0 {
		return fmt.Errorf("risk.max_trades_per_side must be positive")
	}
	if c.Risk.StopLossPoints <= 0 || c.Risk.TargetPoints <= 0 {
		return fmt.Errorf("risk stop-loss and target points must be positive")
	}
	if c.Market.StrikeStep <= 0 {
		return fmt.Errorf("market.strike_step must be positive")
	}
	if c.Schedule.PollInterval <= 0 {
		return fmt.Errorf("schedule.poll_interval must be positive")
	}
	return nil
}
