package models

import "errors"

// ErrProfileNotFound reports a single-row profile lookup that matched no
// row. It is a normal empty state ("profile not completed yet"), distinct
// from a failed query, and is mapped from the store-specific error by the
// repository layer.
var ErrProfileNotFound = errors.New("profile not found")
