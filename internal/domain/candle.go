package domain

import "time"

// PriceBar represents one trading day's OHLCV values for an index or ticker.
type PriceBar struct {
	Symbol string    `json:"symbol"`
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// DefaultPriceSymbol is the S&P 500 index on Yahoo Finance.
const DefaultPriceSymbol = "^GSPC"

// TradingDaysPerYear is used to annualize daily volatility.
const TradingDaysPerYear = 252
