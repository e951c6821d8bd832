// Package domain defines domain-level errors for the rankings feature.
package domain

import "errors"

// Domain errors for ranking computations.
// These errors represent the failure taxonomy of the ranking engine and
// should be handled appropriately by upper layers.
var (
	// ErrInvalidRequest indicates parameters that fail validation before any
	// fetch is issued (bad symbol format, unsupported timeframe, out-of-range
	// values). Surfaced to the caller as a 4xx response.
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrDataUnavailable indicates the market-data provider is unreachable,
	// returned a malformed payload, or does not know the symbol. The affected
	// symbol is excluded from that timeframe's ranking; sibling computations
	// continue.
	ErrDataUnavailable = errors.New("market data unavailable")

	// ErrInsufficientData indicates fewer candles than the longest indicator
	// lookback were available. Treated identically to ErrDataUnavailable for
	// ranking purposes: a short-window EMA mislabeled as a long one would
	// corrupt downstream scoring, so the symbol is excluded instead.
	ErrInsufficientData = errors.New("insufficient candle data")
)
