package errors

import "errors"

// Common errors
var (
	ErrInvalidInput = errors.New("invalid input")
)

// Graph errors
var (
	ErrUnknownGraphKind = errors.New("unknown graph kind")
)

// Query errors
var (
	ErrInvalidSortOrder = errors.New("invalid sort order")
	ErrInvalidDateRange = errors.New("start date is after end date")
)

// Archive errors
var (
	ErrSnapshotNotLoaded   = errors.New("archive snapshot not loaded")
	ErrSourceUnavailable   = errors.New("archive source unavailable")
	ErrAutoReloadRunning   = errors.New("auto reload already running")
	ErrUnknownSourceType   = errors.New("unknown archive source type")
	ErrUnknownCacheDriver  = errors.New("unknown cache driver")
	ErrArchiveDocumentSize = errors.New("archive document exceeds size limit")
)
