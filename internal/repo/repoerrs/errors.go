package repoerrs

import "errors"

var (
	ErrInvalidRecord = errors.New("record violates table constraints")
	ErrNoTable       = errors.New("api_logs table is missing")
)
