package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"OptionSentinel/internal/broker"
	"OptionSentinel/internal/calculator"
	"OptionSentinel/internal/collector"
	"OptionSentinel/internal/ledger"
	"OptionSentinel/internal/metrics"
	"OptionSentinel/internal/model"
	"OptionSentinel/internal/notifier"
	"OptionSentinel/internal/recorder"
	"OptionSentinel/internal/series"
	"OptionSentinel/internal/strategy"
)

// Engine runs the per-side decision pipeline on every polling tick:
// resolve → fetch → evaluate → size → gate → submit. Each side is fully
// independent; a Call-side failure never blocks the Put side.
type Engine struct {
	Fetcher  collector.Fetcher
	Resolver *collector.Resolver
	Broker   broker.Broker
	Ledger   *ledger.Ledger
	Recorder recorder.Recorder
	Notifier *notifier.TelegramNotifier

	Risk         model.RiskParameters
	StrikeOffset int
	LookbackDays int
}

// ProcessTick evaluates both sides sequentially. Per-side errors are logged
// and isolated.
func (e *Engine) ProcessTick(ctx context.Context) {
	metrics.Ticks.Inc()
	for _, side := range model.Sides {
		if err := e.ProcessSide(ctx, side); err != nil {
			log.Printf("[ERROR] %s side: %v", side, err)
		}
	}
}

// ProcessSide runs one decision cycle for a single side. A nil return means
// the cycle completed, whether or not an order was placed.
func (e *Engine) ProcessSide(ctx context.Context, side model.Side) error {
	inst, err := e.Resolver.Resolve(ctx, e.StrikeOffset, side)
	if err != nil {
		metrics.SignalChecks.WithLabelValues(string(side), "error").Inc()
		return fmt.Errorf("resolve instrument: %w", err)
	}

	store, err := e.buildSnapshot(ctx, inst)
	if err != nil {
		// Data unavailable is equivalent to no entry this cycle.
		metrics.SignalChecks.WithLabelValues(string(side), "error").Inc()
		e.recordSignal(&recorder.SignalCheck{Side: side, RSI: calculator.NeutralRSI, Entry: false, Note: err.Error()})
		if errors.Is(err, collector.ErrDataUnavailable) {
			log.Printf("[WARN] %s %s: %v", side, inst.Symbol, err)
			return nil
		}
		return err
	}

	res := strategy.Evaluate(store)
	metrics.LastRSI.WithLabelValues(string(side)).Set(res.RSI)
	e.recordSignal(&recorder.SignalCheck{Side: side, RSI: res.RSI, Entry: res.Entry})
	if !res.Entry {
		metrics.SignalChecks.WithLabelValues(string(side), "no_entry").Inc()
		return nil
	}
	metrics.SignalChecks.WithLabelValues(string(side), "entry").Inc()
	log.Printf("[INFO] %s entry signal on %s (RSI=%.1f)", side, inst.Symbol, res.RSI)

	ltp, err := e.Fetcher.FetchLTP(ctx, inst)
	if err != nil {
		log.Printf("[WARN] %s %s: ltp fetch failed: %v", side, inst.Symbol, err)
		return nil
	}

	size, err := calculator.Size(ltp, e.Risk)
	if err != nil {
		if errors.Is(err, calculator.ErrInvalidPrice) {
			log.Printf("[WARN] %s %s: %v (ltp=%.2f)", side, inst.Symbol, err, ltp)
			return nil
		}
		return fmt.Errorf("size order: %w", err)
	}
	if size.Quantity == 0 {
		log.Printf("[INFO] %s %s: capital %.0f cannot cover one lot at %.2f, skipping",
			side, inst.Symbol, e.Risk.CapitalCeiling, ltp)
		return nil
	}

	if !e.Ledger.CanTrade(side) {
		metrics.LedgerBlocked.WithLabelValues(string(side)).Inc()
		log.Printf("[INFO] %s at daily trade cap, skipping", side)
		return nil
	}

	intent := &model.OrderIntent{
		ClientOrderID: uuid.NewString(),
		Side:          side,
		Instrument:    inst,
		Quantity:      size.Quantity,
		LimitPrice:    size.LimitPrice,
		StopLoss:      size.StopLoss,
		Target:        size.Target,
		TrailingStop:  size.TrailingStop,
		CreatedAt:     time.Now(),
	}
	return e.submit(ctx, intent)
}

func (e *Engine) buildSnapshot(ctx context.Context, inst model.Instrument) (*series.Store, error) {
	store := series.NewStore()
	for _, tf := range model.Timeframes {
		pts, err := e.Fetcher.FetchSeries(ctx, inst, tf, e.LookbackDays)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", tf, err)
		}
		if err := store.Load(tf, pts); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func (e *Engine) submit(ctx context.Context, intent *model.OrderIntent) error {
	conf, err := e.Broker.SubmitOrder(ctx, intent)
	if err != nil {
		var rej *broker.OrderRejection
		if errors.As(err, &rej) {
			// The slot is only consumed by a confirmed submission.
			metrics.Rejections.WithLabelValues(string(intent.Side)).Inc()
			log.Printf("[WARN] %v", rej)
			e.recordOrder(intent, "REJECTED", "", rej.Reason)
			e.notify(ctx, notifier.FormatOrderRejected(intent.Side, intent.Instrument.Symbol, rej.Reason))
			return nil
		}
		return fmt.Errorf("submit order: %w", err)
	}

	if err := e.Ledger.RecordTrade(intent.Side); err != nil {
		// Order went through but the counter refused: log loudly, the cap
		// invariant was checked before submission.
		log.Printf("[ERROR] record trade after confirmation: %v", err)
	}
	metrics.Orders.WithLabelValues(string(intent.Side), e.Broker.Name()).Inc()
	log.Printf("[INFO] order placed: %s %s qty=%d limit=%.2f id=%s",
		intent.Side, intent.Instrument.Symbol, intent.Quantity, intent.LimitPrice, conf.OrderID)

	e.recordOrder(intent, "PLACED", conf.OrderID, "")
	e.recordLedger(intent.Side)
	e.notify(ctx, notifier.FormatOrderPlaced(intent, conf))
	return nil
}

func (e *Engine) recordSignal(evt *recorder.SignalCheck) {
	if err := e.Recorder.RecordSignalCheck(evt); err != nil {
		log.Printf("[ERROR] record signal check: %v", err)
	}
}

func (e *Engine) recordOrder(intent *model.OrderIntent, status, brokerID, reason string) {
	if err := e.Recorder.RecordOrder(&recorder.OrderEvent{
		Side:          intent.Side,
		Symbol:        intent.Instrument.Symbol,
		Quantity:      intent.Quantity,
		LimitPrice:    intent.LimitPrice,
		StopLoss:      intent.StopLoss,
		Target:        intent.Target,
		TrailingStop:  intent.TrailingStop,
		Status:        status,
		BrokerOrderID: brokerID,
		Reason:        reason,
	}); err != nil {
		log.Printf("[ERROR] record order: %v", err)
	}
}

func (e *Engine) recordLedger(side model.Side) {
	if err := e.Recorder.RecordLedgerEvent(&recorder.LedgerEvent{
		Side:       side,
		Count:      e.Ledger.Counts()[side],
		MaxPerSide: e.Risk.MaxTradesPerSide,
		EventType:  "TRADE",
	}); err != nil {
		log.Printf("[ERROR] record ledger event: %v", err)
	}
}

func (e *Engine) notify(ctx context.Context, text string) {
	if e.Notifier == nil || !e.Notifier.Enabled() {
		return
	}
	if err := e.Notifier.SendWithRetry(ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
