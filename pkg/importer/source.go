package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meetcal/meetcal/pkg/schedule"
	"github.com/meetcal/meetcal/pkg/user"
)

// Source is an external calendar the current schedule can import events from.
type Source interface {
	Name() string
	// Fetch returns the user's events between from and to. Every returned event
	// has ExternalId set and ids are unique within the result.
	Fetch(ctx context.Context, u user.User, from, to time.Time) ([]schedule.Event, error)
}

// ErrNotConnected is returned by sources the user has not set up yet.
var ErrNotConnected = errors.New("import source is not connected")

// FetchError reports a failure of the external calendar itself.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
