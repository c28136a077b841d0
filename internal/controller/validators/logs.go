package validators

import (
	"errors"

	"github.com/Egor213/CallTrack/internal/domain"
)

const MaxPageLimit = 1000

var (
	ErrEmptyService     = errors.New("service must be specified")
	ErrEmptyMethod      = errors.New("method must be specified")
	ErrEmptyPath        = errors.New("path must be specified")
	ErrNegativeDuration = errors.New("duration must not be negative")
	ErrInvalidLimit     = errors.New("limit must be between 1 and 1000")
	ErrInvalidPage      = errors.New("page must be positive")
)

func Validate(l *domain.LogInput) error {
	if l.Service == "" {
		return ErrEmptyService
	}

	if l.Method == "" {
		return ErrEmptyMethod
	}

	if l.Path == "" {
		return ErrEmptyPath
	}

	if l.Duration < 0 {
		return ErrNegativeDuration
	}

	return nil
}

// ValidateQuery checks pagination. Zero values mean "use the default".
func ValidateQuery(q domain.LogQuery) error {
	if q.Limit < 0 || q.Limit > MaxPageLimit {
		return ErrInvalidLimit
	}

	if q.Page < 0 {
		return ErrInvalidPage
	}

	return nil
}
