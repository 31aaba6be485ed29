package calculator

import "errors"

// NeutralRSI is returned whenever the oscillator is undefined: fewer deltas
// than the period, or a one-sided series with zero average loss. The neutral
// midpoint keeps the 35–65 entry gate closed without raising an error.
const NeutralRSI = 50.0

// RSI computes the relative-strength oscillator from simple average gain and
// loss over the trailing `period` price changes.
func RSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return NeutralRSI, nil
	}

	var avgGain, avgLoss float64
	start := len(closes) - period
	for i := start; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	if avgLoss == 0 {
		return NeutralRSI, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
