package ics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/meetcal/meetcal/internal/config"
	"github.com/meetcal/meetcal/pkg/importer"
	"github.com/meetcal/meetcal/pkg/schedule"
	"github.com/meetcal/meetcal/pkg/user"
	log "github.com/sirupsen/logrus"
)

const SourceName = "ics"

// Source imports the ICS feed configured in the user's settings.
type Source struct {
	client *http.Client
}

func NewSource(cfg config.Ics) *Source {
	return &Source{
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

func (s *Source) Name() string {
	return SourceName
}

func (s *Source) Fetch(ctx context.Context, u user.User, from, to time.Time) ([]schedule.Event, error) {
	url := u.Settings.IcsUrl
	if url == "" {
		return nil, fmt.Errorf("%w: no feed url for user %d", importer.ErrNotConnected, u.Id)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &importer.FetchError{Source: SourceName, Err: err}
	}
	req.Header.Set("Accept", "text/calendar")

	log.Debugf("fetching feed of user %d", u.Id)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &importer.FetchError{Source: SourceName, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &importer.FetchError{Source: SourceName, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	events, err := Parse(resp.Body, u.Settings.Location(), from, to)
	if err != nil {
		return nil, &importer.FetchError{Source: SourceName, Err: err}
	}
	for i := range events {
		events[i].CalendarId = url
	}
	return events, nil
}
