package model

import "time"

// Timeframe identifies one of the three candle intervals the bot watches.
type Timeframe string

const (
	TimeframeShort  Timeframe = "3minute"
	TimeframeMedium Timeframe = "15minute"
	TimeframeLong   Timeframe = "60minute"
)

// Timeframes lists all intervals in short → long order.
var Timeframes = []Timeframe{TimeframeShort, TimeframeMedium, TimeframeLong}

// ClosePoint is a single (timestamp, close) pair of a price series.
type ClosePoint struct {
	Time  time.Time
	Close float64
}

// Instrument is an opaque reference to a tradable contract, as resolved
// by the broker's symbol master.
type Instrument struct {
	Exchange string
	Symbol   string
	Token    string
	LotSize  int
}
