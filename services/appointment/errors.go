package appointment

import "errors"

// ErrNotFound is returned when an appointment lookup matches no record.
var ErrNotFound = errors.New("appointment not found")
