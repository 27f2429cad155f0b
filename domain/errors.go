package domain

import "errors"

var (
	// ErrInvalidAmount the amount is missing or not a number
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrUnsupportedPair the built-in table lacks one of the codes
	ErrUnsupportedPair = errors.New("unsupported currency pair")

	// ErrRatesUnavailable the remote table is empty or lacks one of the codes
	ErrRatesUnavailable = errors.New("rates unavailable")

	// ErrFetchFailed loading rates from the provider failed
	ErrFetchFailed = errors.New("fetch failed")

	// ErrConversionFailed wraps a rate lookup failure during conversion
	ErrConversionFailed = errors.New("conversion failed")
)

// Messages shown to users for each error kind.
const (
	MessageInvalidAmount    = "Invalid Input"
	MessageUnsupportedPair  = "Unsupported currency pair"
	MessageRatesUnavailable = "Rates unavailable"
	MessageFetchFailed      = "Failed to fetch exchange rates"
	MessageUnknown          = "Conversion failed"
)

// Message maps err onto the fixed string the UI displays for it.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidAmount):
		return MessageInvalidAmount
	case errors.Is(err, ErrUnsupportedPair):
		return MessageUnsupportedPair
	case errors.Is(err, ErrFetchFailed):
		return MessageFetchFailed
	case errors.Is(err, ErrRatesUnavailable):
		return MessageRatesUnavailable
	default:
		return MessageUnknown
	}
}
