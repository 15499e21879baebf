package google

import (
	"context"
	"fmt"
	"time"

	"github.com/meetcal/meetcal/pkg/importer"
	"github.com/meetcal/meetcal/pkg/user"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const primaryCalendar = "primary"

var ErrUnauthenticated = fmt.Errorf("user is unauthenticated, authentication is required: %w", importer.ErrNotConnected)

type CalendarItem struct {
	ID      string
	Summary string
	Primary bool
}

type Service interface {
	ListCalendars(ctx context.Context) ([]CalendarItem, error)
	// ListEvents returns single (expanded) events of calendarId starting between from and to.
	ListEvents(ctx context.Context, userId int, calendarId string, from, to time.Time) ([]*calendar.Event, error)
}

type ServiceImpl struct {
	auth *GoogleAuth
}

func NewService(auth *GoogleAuth) *ServiceImpl {
	return &ServiceImpl{
		auth: auth,
	}
}

func (s *ServiceImpl) ListCalendars(ctx context.Context) ([]CalendarItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	googleService, err := s.prepareGoogleService(ctx, userId)
	if err != nil {
		return nil, err
	}
	calendars, err := googleService.CalendarList.List().Context(ctx).Do()
	if err != nil {
		err := &importer.FetchError{Source: SourceName, Err: fmt.Errorf("unable to retrieve calendars: %w", err)}
		log.Error(err)
		return nil, err
	}
	googleCalendars := make([]CalendarItem, 0, len(calendars.Items))
	for _, cal := range calendars.Items {
		googleCalendars = append(googleCalendars, CalendarItem{
			ID:      cal.Id,
			Summary: cal.Summary,
			Primary: cal.Primary,
		})
	}
	return googleCalendars, nil
}

func (s *ServiceImpl) ListEvents(ctx context.Context, userId int, calendarId string, from, to time.Time) ([]*calendar.Event, error) {
	googleService, err := s.prepareGoogleService(ctx, userId)
	if err != nil {
		return nil, err
	}

	var events []*calendar.Event
	err = googleService.Events.List(calendarId).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		ShowDeleted(false).
		SingleEvents(true).
		OrderBy("startTime").
		Pages(ctx, func(page *calendar.Events) error {
			events = append(events, page.Items...)
			return nil
		})
	if err != nil {
		err := &importer.FetchError{Source: SourceName, Err: fmt.Errorf("unable to retrieve events: %w", err)}
		log.Error(err)
		return nil, err
	}
	return events, nil
}

func (s *ServiceImpl) prepareGoogleService(ctx context.Context, userId int) (*calendar.Service, error) {
	client, err := s.auth.getClient(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Google auth client: %w", err)
	}
	if client == nil {
		log.Debug("user is unauthenticated, authentication is required")
		return nil, ErrUnauthenticated
	}
	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to retrieve Calendar client: %w", err)
		log.Error(err)
		return nil, err
	}
	return service, nil
}
