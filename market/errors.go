package market

import "errors"

// Error kinds surfaced by every stage of an analysis run. Callers wrap them
// with context and test with errors.Is.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownTenor    = errors.New("unknown tenor")
	ErrDataUnavailable = errors.New("market data unavailable")
)
