package contract

import "errors"

// ErrDuplicateKey is returned when a write violates a unique index (slug, email).
var ErrDuplicateKey = errors.New("duplicate key")
