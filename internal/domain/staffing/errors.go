package staffing

import "errors"

// Commit errors.
var (
	ErrStaleState        = errors.New("consultant state changed since the team was assembled")
	ErrUnknownConsultant = errors.New("consultant not found in pool")
)
