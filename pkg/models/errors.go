package models

import "errors"

// Sentinel errors for invalid model values. Check with errors.Is.
var (
	ErrInvalidComplexity = errors.New("invalid complexity")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidDate       = errors.New("invalid date")
)
