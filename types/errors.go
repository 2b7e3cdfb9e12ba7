package types

import "errors"

// Failure conditions of the advisory engine. Wrapped with %w at the point of
// failure and matched with errors.Is at the HTTP boundary; the engine itself
// never retries and never masks one of these with stale or default data.
var (
	// ErrUpstreamUnavailable covers transport errors, timeouts and
	// unexpected status codes from the price feed.
	ErrUpstreamUnavailable = errors.New("price feed unavailable")

	// ErrUpstreamMalformed covers schema violations in the feed payload:
	// undecodable JSON, missing or non-numeric prices, unparsable timestamps.
	ErrUpstreamMalformed = errors.New("price feed response malformed")

	// ErrInsufficientHorizon means the fetched horizon holds fewer future
	// slots than the requested window needs. Client-correctable.
	ErrInsufficientHorizon = errors.New("not enough future prices for requested window")

	// ErrUnsupportedLanguage means the requested locale is outside the
	// closed supported set.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
