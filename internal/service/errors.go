package service

import "fmt"

var (
	ErrCannotCreateLog  = fmt.Errorf("cannot create log")
	ErrCannotGetLogs    = fmt.Errorf("cannot get logs")
	ErrCannotGetLatest  = fmt.Errorf("cannot get latest logs")
	ErrCannotGetStats   = fmt.Errorf("cannot get log statistics")
	ErrInvalidPageQuery = fmt.Errorf("limit and page must be positive")
)
