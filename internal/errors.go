package internal

import (
	"errors"
	"fmt"
)

// Whole-operation failures surfaced to the caller. Per-provider and per-item
// failures are logged and recovered locally, never returned.
var (
	ErrInvalidMagnet      = errors.New("invalid magnet URI")
	ErrDownloaderNotFound = errors.New("peerflix not installed. Install with: npm install -g peerflix")
	ErrNoPlayerFound      = errors.New("no video player found. Please install mpv or vlc")
	ErrAcquisitionTimeout = errors.New("timed out waiting for downloaded media")
)

type fetchKind int

const (
	fetchNetwork fetchKind = iota
	fetchHTTPStatus
	fetchBadBody
)

// FetchError is a typed per-provider failure: transport error, non-2xx status
// or a response body that doesn't match the expected shape.
type FetchError struct {
	URL    string
	Kind   fetchKind
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case fetchHTTPStatus:
		return fmt.Sprintf("HTTP error: %d from %s", e.Status, e.URL)
	case fetchBadBody:
		return fmt.Sprintf("JSON parse error from %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("network error from %s: %v", e.URL, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// AggregateError means every provider failed or returned nothing for an
// operation. Last carries the most recent underlying per-provider failure.
type AggregateError struct {
	Op   string
	Last error
}

func (e *AggregateError) Error() string {
	if e.Last == nil {
		return fmt.Sprintf("%s: no results from any addon", e.Op)
	}
	return fmt.Sprintf("%s: no results from any addon. Last error: %v", e.Op, e.Last)
}

func (e *AggregateError) Unwrap() error { return e.Last }
