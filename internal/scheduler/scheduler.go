package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"OptionSentinel/internal/engine"
	"OptionSentinel/internal/ledger"
	"OptionSentinel/internal/notifier"
	"OptionSentinel/internal/recorder"
)

// MinuteOfDay is a wall-clock instant within a trading day.
type MinuteOfDay int

// ParseMinuteOfDay parses "HH:MM".
func ParseMinuteOfDay(s string) (MinuteOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return MinuteOfDay(t.Hour()*60 + t.Minute()), nil
}

func minuteOf(t time.Time) MinuteOfDay {
	return MinuteOfDay(t.Hour()*60 + t.Minute())
}

// Scheduler drives the polling loop: one tick per interval while inside the
// entry window, stopping once the window has passed. Ticks run to completion
// before the next wait begins; there are no overlapping cycles.
type Scheduler struct {
	Engine   *engine.Engine
	Ledger   *ledger.Ledger
	Notifier *notifier.TelegramNotifier
	Recorder recorder.Recorder

	Interval    time.Duration
	WindowStart MinuteOfDay
	WindowEnd   MinuteOfDay
	Now         func() time.Time

	cron   *cron.Cron
	paused atomic.Bool
}

// New creates a Scheduler polling at the given interval inside the window.
func New(e *engine.Engine, l *ledger.Ledger, tn *notifier.TelegramNotifier, rec recorder.Recorder,
	interval time.Duration, windowStart, windowEnd MinuteOfDay) *Scheduler {
	return &Scheduler{
		Engine:      e,
		Ledger:      l,
		Notifier:    tn,
		Recorder:    rec,
		Interval:    interval,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		Now:         time.Now,
		cron:        cron.New(cron.WithSeconds()),
	}
}

// RegisterCron registers the daily housekeeping tasks: the ledger reset
// before the entry window opens.
func (s *Scheduler) RegisterCron(resetCron string) error {
	if _, err := s.cron.AddFunc(resetCron, func() {
		s.Ledger.ResetDay()
		if err := s.Recorder.RecordLedgerEvent(&recorder.LedgerEvent{EventType: "RESET"}); err != nil {
			log.Printf("[ERROR] record ledger reset: %v", err)
		}
		log.Println("[INFO] daily ledger reset")
	}); err != nil {
		return fmt.Errorf("register ledger reset: %w", err)
	}
	s.cron.Start()
	return nil
}

// Stop stops the cron tasks gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// InWindow reports whether t is inside the entry window. The upper bound is
// inclusive: a tick at exactly the window end still evaluates.
func (s *Scheduler) InWindow(t time.Time) bool {
	m := minuteOf(t)
	return m >= s.WindowStart && m <= s.WindowEnd
}

// PastWindow reports whether t is strictly past the entry window end.
func (s *Scheduler) PastWindow(t time.Time) bool {
	return minuteOf(t) > s.WindowEnd
}

// RunTickNow executes one synchronous tick, ignoring the window and pause
// state. Used by tests and the manual trigger command.
func (s *Scheduler) RunTickNow(ctx context.Context) {
	s.Engine.ProcessTick(ctx)
}

// Run executes the polling loop until the entry window closes or ctx is
// cancelled. Returns nil on normal window expiry.
func (s *Scheduler) Run(ctx context.Context) error {
	log.Printf("[INFO] polling every %v inside window %02d:%02d-%02d:%02d",
		s.Interval, s.WindowStart/60, s.WindowStart%60, s.WindowEnd/60, s.WindowEnd%60)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		now := s.Now()
		switch {
		case s.PastWindow(now):
			log.Println("[INFO] entry window closed")
			s.sendSummary(ctx)
			return nil
		case s.InWindow(now):
			if s.paused.Load() {
				log.Println("[INFO] paused, skipping tick")
			} else {
				// Each tick carries a deadline bounded by the poll cadence so a
				// stalled fetch or submit cannot overlap the next cycle.
				tickCtx, cancel := context.WithTimeout(ctx, s.Interval)
				s.Engine.ProcessTick(tickCtx)
				cancel()
			}
		default:
			// Before the window opens: keep waiting.
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Pause suspends order evaluation without stopping the loop.
func (s *Scheduler) Pause() { s.paused.Store(true) }

// Resume re-enables evaluation.
func (s *Scheduler) Resume() { s.paused.Store(false) }

// Paused reports the pause state.
func (s *Scheduler) Paused() bool { return s.paused.Load() }

// HandleCommand processes an operator command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/ledger":
		return notifier.FormatLedgerStatus(s.Ledger.Counts(), s.Engine.Risk.MaxTradesPerSide)
	case "/status":
		state := "running"
		if s.paused.Load() {
			state = "paused"
		}
		return fmt.Sprintf("Bot %s | broker: %s | window %02d:%02d-%02d:%02d",
			state, s.Engine.Broker.Name(),
			s.WindowStart/60, s.WindowStart%60, s.WindowEnd/60, s.WindowEnd%60)
	case "/pause":
		s.Pause()
		return "Evaluation paused."
	case "/resume":
		s.Resume()
		return "Evaluation resumed."
	default:
		return "Commands:\n• /ledger\n• /status\n• /pause\n• /resume"
	}
}

func (s *Scheduler) sendSummary(ctx context.Context) {
	if s.Notifier == nil || !s.Notifier.Enabled() {
		return
	}
	text := notifier.FormatDaySummary(s.Ledger.Counts(), s.Engine.Risk.MaxTradesPerSide)
	if err := s.Notifier.SendWithRetry(ctx, text, 3); err != nil {
		log.Printf("[ERROR] send day summary: %v", err)
	}
}
