package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound = errors.New("run/tag not found")
	ErrSnapshot = errors.New("snapshot read failed")
)
