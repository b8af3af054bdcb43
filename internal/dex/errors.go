package dex

import "errors"

// ErrInvalidID is returned when a detail lookup id is not a positive
// integer.
var ErrInvalidID = errors.New("dex: id must be a positive integer")
