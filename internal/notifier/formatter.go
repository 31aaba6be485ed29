package notifier

import (
	"fmt"
	"strings"
	"time"

	"OptionSentinel/internal/model"
)

// FormatOrderPlaced formats a confirmed bracket order for the operator.
func FormatOrderPlaced(intent *model.OrderIntent, conf *model.OrderConfirmation) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("✅ <b>Order placed</b> | %s\n\n", time.Now().Format("15:04:05")))
	b.WriteString(fmt.Sprintf("%s %s\n", intent.Side, intent.Instrument.Symbol))
	b.WriteString(fmt.Sprintf("Qty: %d @ limit %.2f\n", intent.Quantity, intent.LimitPrice))
	b.WriteString(fmt.Sprintf("SL %.0f | Target %.0f | Trail %.0f\n", intent.StopLoss, intent.Target, intent.TrailingStop))
	b.WriteString(fmt.Sprintf("Broker ID: %s", conf.OrderID))
	return b.String()
}

// FormatOrderRejected formats a broker rejection. The ledger slot is not
// consumed on this path, which is worth surfacing to the operator.
func FormatOrderRejected(side model.Side, symbol, reason string) string {
	return fmt.Sprintf("❌ <b>Order rejected</b>\n\n%s %s\nReason: %s\nTrade slot not consumed.", side, symbol, reason)
}

// FormatLedgerStatus formats the per-side counters.
func FormatLedgerStatus(counts map[model.Side]int, maxPerSide int) string {
	var b strings.Builder
	b.WriteString("📒 <b>Trade ledger</b>\n\n")
	for _, side := range model.Sides {
		b.WriteString(fmt.Sprintf("%s: %d/%d\n", side, counts[side], maxPerSide))
	}
	return b.String()
}

// FormatDaySummary formats the end-of-window summary.
func FormatDaySummary(counts map[model.Side]int, maxPerSide int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🏁 <b>Entry window closed</b> | %s\n\n", time.Now().Format("2006-01-02")))
	total := 0
	for _, side := range model.Sides {
		b.WriteString(fmt.Sprintf("%s trades: %d/%d\n", side, counts[side], maxPerSide))
		total += counts[side]
	}
	b.WriteString(fmt.Sprintf("\nTotal orders today: %d", total))
	return b.String()
}
