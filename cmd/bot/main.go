package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"OptionSentinel/internal/broker"
	"OptionSentinel/internal/collector"
	"OptionSentinel/internal/config"
	"OptionSentinel/internal/engine"
	"OptionSentinel/internal/ledger"
	"OptionSentinel/internal/model"
	"OptionSentinel/internal/notifier"
	"OptionSentinel/internal/recorder"
	"OptionSentinel/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] OptionSentinel starting...")

	// Load .env before config so credential overrides are visible.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	risk := model.RiskParameters{
		CapitalCeiling:   cfg.Risk.CapitalCeiling,
		LotSize:          cfg.Risk.LotSize,
		StopLossPoints:   cfg.Risk.StopLossPoints,
		TargetPoints:     cfg.Risk.TargetPoints,
		TrailingPoints:   cfg.Risk.TrailingPoints,
		SlippageBuffer:   cfg.Risk.SlippageBuffer,
		MaxTradesPerSide: cfg.Risk.MaxTradesPerSide,
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Broker session, transport and data fetcher. The fetch/submit timeout
	// is bounded by the poll cadence so a tick can never overlap the next.
	callTimeout := cfg.Schedule.PollInterval / 2
	var (
		trans   broker.Broker
		fetcher collector.Fetcher
	)
	if cfg.Broker.Paper {
		trans = broker.NewPaperBroker()
		fetcher = &collector.MockFetcher{LTP: 100}
		log.Println("[INFO] paper mode: in-memory broker and mock data")
	} else {
		session := broker.NewSession(cfg.Broker.BaseURL, callTimeout)
		loginCtx, loginCancel := context.WithTimeout(ctx, 30*time.Second)
		err := session.Login(loginCtx, broker.Credentials{
			UserID:     cfg.Broker.UserID,
			APIKey:     cfg.Broker.APIKey,
			Password:   cfg.Broker.Password,
			TOTPSecret: cfg.Broker.TOTPSecret,
		})
		loginCancel()
		if err != nil {
			log.Fatalf("[FATAL] broker login: %v", err)
		}
		trans = broker.NewHTTPBroker(cfg.Broker.BaseURL, session, callTimeout)
		fetcher = collector.NewHTTPFetcher(cfg.Broker.BaseURL, session, callTimeout)
	}
	log.Printf("[INFO] order transport: %s, data source: %s", trans.Name(), fetcher.Name())

	index := model.Instrument{
		Exchange: "NSE",
		Symbol:   cfg.Market.Index,
		Token:    cfg.Market.IndexToken,
	}
	resolver := collector.NewResolver(fetcher, index, cfg.Market.StrikeStep, cfg.Risk.LotSize)

	// Trade ledger
	tl, err := ledger.New(cfg.Ledger.StateFile, cfg.Risk.MaxTradesPerSide)
	if err != nil {
		log.Fatalf("[FATAL] init trade ledger: %v", err)
	}

	// Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)

	// Recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	eng := &engine.Engine{
		Fetcher:      fetcher,
		Resolver:     resolver,
		Broker:       trans,
		Ledger:       tl,
		Recorder:     rec,
		Notifier:     tn,
		Risk:         risk,
		StrikeOffset: cfg.Market.StrikeOffset,
		LookbackDays: cfg.Market.LookbackDays,
	}

	windowStart, err := scheduler.ParseMinuteOfDay(cfg.Schedule.EntryStart)
	if err != nil {
		log.Fatalf("[FATAL] entry_start: %v", err)
	}
	windowEnd, err := scheduler.ParseMinuteOfDay(cfg.Schedule.EntryEnd)
	if err != nil {
		log.Fatalf("[FATAL] entry_end: %v", err)
	}

	sched := scheduler.New(eng, tl, tn, rec, cfg.Schedule.PollInterval, windowStart, windowEnd)
	if err := sched.RegisterCron(cfg.Schedule.ResetCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	defer sched.Stop()

	// Prometheus metrics endpoint
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.Metrics.ListenAddr, nil); err != nil {
			log.Printf("[WARN] metrics server: %v", err)
		}
	}()
	log.Printf("[INFO] metrics on %s/metrics", cfg.Metrics.ListenAddr)

	// Telegram command polling
	go tn.StartPolling(ctx, sched.HandleCommand)

	// Shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("[INFO] shutdown signal received, stopping...")
		cancel()
	}()

	// Run the polling loop until the entry window closes.
	if err := sched.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("[FATAL] polling loop: %v", err)
	}
	log.Println("[INFO] OptionSentinel stopped")
}
