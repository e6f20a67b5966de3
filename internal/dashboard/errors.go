package dashboard

import (
	"errors"
	"fmt"

	"FxDash/internal/domain/models"
)

// Error kinds. Match with errors.Is.
var (
	ErrTransport = errors.New("could not reach the analytics service")
	ErrDecode    = errors.New("the analytics service sent an unreadable response")
	ErrShape     = errors.New("the analytics service response is missing expected data")
)

// Error describes a failed data-access call.
type Error struct {
	Resource models.Resource
	Base     string
	Target   string
	Kind     error
	Status   int // proxy status, when one was received
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("loading %s for %s/%s: %v", e.Resource, e.Base, e.Target, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
