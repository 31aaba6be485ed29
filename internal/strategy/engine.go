package strategy

import (
	"OptionSentinel/internal/calculator"
	"OptionSentinel/internal/model"
	"OptionSentinel/internal/series"
)

const (
	rsiPeriod     = 14
	rsiLowerBound = 35.0
	rsiUpperBound = 65.0
	minMovePct    = 1.0
)

// Evaluate decides whether the current multi-timeframe price action is an
// entry opportunity. Entry requires every timeframe to be rising with a
// same-direction move of at least 1%, and the short-timeframe RSI to sit
// strictly inside the 35–65 band.
//
// Evaluate is a pure function of the store and fails closed: any missing or
// insufficient data yields Entry=false rather than an error.
func Evaluate(store *series.Store) model.SignalResult {
	rsi, err := calculator.RSI(store.Closes(model.TimeframeShort), rsiPeriod)
	if err != nil {
		return model.SignalResult{Entry: false, RSI: calculator.NeutralRSI}
	}

	for _, tf := range model.Timeframes {
		latest, err := store.Latest(tf)
		if err != nil {
			return model.SignalResult{Entry: false, RSI: rsi}
		}
		previous, err := store.Previous(tf)
		if err != nil || previous == 0 {
			return model.SignalResult{Entry: false, RSI: rsi}
		}
		if latest <= previous {
			return model.SignalResult{Entry: false, RSI: rsi}
		}
		if (latest-previous)/previous*100 < minMovePct {
			return model.SignalResult{Entry: false, RSI: rsi}
		}
	}

	return model.SignalResult{Entry: rsiInBand(rsi), RSI: rsi}
}

// rsiInBand reports whether the oscillator sits strictly inside the entry
// band. A reading of exactly 35 or 65 does not qualify.
func rsiInBand(rsi float64) bool {
	return rsi > rsiLowerBound && rsi < rsiUpperBound
}
