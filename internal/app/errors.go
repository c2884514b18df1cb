package service

import "errors"

// Sentinel errors returned by Service.
var (
	ErrNotStarted  = errors.New("service not started")
	ErrQueueFull   = errors.New("staffing queue full")
	ErrInFlight    = errors.New("request with this idempotency key is still in flight")
	ErrJobNotFound = errors.New("job not found")
)
