// CLAUDE:SUMMARY Sentinel errors for the retrieval pipeline: not found, unavailable, render timeout, parse, encoding.
package puzzle

import "errors"

// ErrNotFound is returned when the upstream site reports that the
// requested puzzle ID does not exist.
var ErrNotFound = errors.New("puzzle: not found upstream")

// ErrUnavailable is returned on network, browser-launch, or navigation
// failure — the upstream could not be reached at all.
var ErrUnavailable = errors.New("puzzle: upstream unavailable")

// ErrRenderTimeout is returned when a rendered page never produced the
// expected data within the wait budget.
var ErrRenderTimeout = errors.New("puzzle: render timeout")

// ErrParse is returned when an upstream response was received but did
// not match the expected structure.
var ErrParse = errors.New("puzzle: upstream parse error")

// ErrEncoding is returned when a puzzle is too incomplete to serialize
// in the requested format.
var ErrEncoding = errors.New("puzzle: encoding error")
