package model

import "errors"

// Error kinds surfaced by the aggregation core. Callers match them with errors.Is.
var (
	// ErrSearchFailure means the keyword search call did not succeed.
	ErrSearchFailure = errors.New("search request failed")
	// ErrStatsFailure means the batched statistics call did not succeed.
	ErrStatsFailure = errors.New("statistics request failed")
	// ErrCommentsUnavailable means comments could not be fetched or are disabled.
	ErrCommentsUnavailable = errors.New("comments unavailable")
	// ErrMalformedInput is a caller error: empty keyword or unknown page token.
	ErrMalformedInput = errors.New("malformed input")

	ErrSessionNotFound = errors.New("search session not found")
	ErrVideoNotFound   = errors.New("video not found")
)
