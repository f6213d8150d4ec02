package entities

import "errors"

// Domain errors
var (
	// Archive errors
	ErrNotSequence = errors.New("archive is not a sequence of records")

	// Record errors
	ErrRecordNotObject      = errors.New("record is not an object")
	ErrMissingWorkgroupID   = errors.New("missing required field: workgroup_id")
	ErrMissingWorkgroupName = errors.New("missing required field: workgroup")
	ErrMissingDate          = errors.New("missing required field: meetingInfo.date")
	ErrInvalidDate          = errors.New("invalid date")

	// Sub-entity errors
	ErrMissingDecisionText = errors.New("decision text must be non-empty")
	ErrMissingActionText   = errors.New("action item text must be non-empty")
)
