package importer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/meetcal/meetcal/internal/config"
	"github.com/meetcal/meetcal/pkg/schedule"
	"github.com/meetcal/meetcal/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedUsersStub struct {
	users []user.User
	err   error
}

func (s *feedUsersStub) FindUsersWithIcsFeed(ctx context.Context) ([]user.User, error) {
	return s.users, s.err
}

type failingForUser struct {
	sourceStub
	failFor int
}

func (s *failingForUser) Fetch(ctx context.Context, u user.User, from, to time.Time) ([]schedule.Event, error) {
	if u.Id == s.failFor {
		return nil, &FetchError{Source: s.name, Err: errors.New("feed down")}
	}
	return s.sourceStub.Fetch(ctx, u, from, to)
}

func TestScheduler_SyncAll(t *testing.T) {
	t.Run("should import feed of every user and continue after failures", func(t *testing.T) {
		// given
		source := &failingForUser{sourceStub: sourceStub{name: "ics"}, failFor: 2}
		_, service, _, completed := setupServiceTest(t, source)
		users := &feedUsersStub{users: []user.User{{Id: 1}, {Id: 2}, {Id: 3}}}
		scheduler := NewScheduler(config.Sync{Enabled: true, Schedule: "*/30 * * * *"}, service, users, "ics")

		// when
		synced := scheduler.SyncAll(context.Background())

		// then
		assert.Equal(t, 2, synced)
		assert.Equal(t, []int{1, 3}, source.users)
		require.Len(t, *completed, 2)
		assert.Equal(t, 3, (*completed)[1].UserId)
	})

	t.Run("should sync nobody when users cannot be listed", func(t *testing.T) {
		_, service, _, _ := setupServiceTest(t)
		scheduler := NewScheduler(config.Sync{}, service, &feedUsersStub{err: errors.New("db down")}, "ics")

		assert.Equal(t, 0, scheduler.SyncAll(context.Background()))
	})
}

func TestScheduler_Start(t *testing.T) {
	_, service, _, _ := setupServiceTest(t)

	t.Run("should reject invalid schedule", func(t *testing.T) {
		scheduler := NewScheduler(config.Sync{Enabled: true, Schedule: "every now and then"}, service, &feedUsersStub{}, "ics")

		assert.Error(t, scheduler.Start())
	})

	t.Run("should start and stop", func(t *testing.T) {
		scheduler := NewScheduler(config.Sync{Enabled: true, Schedule: "*/30 * * * *"}, service, &feedUsersStub{}, "ics")

		require.NoError(t, scheduler.Start())
		<-scheduler.Stop().Done()
	})

	t.Run("should not schedule when disabled", func(t *testing.T) {
		scheduler := NewScheduler(config.Sync{Enabled: false, Schedule: "invalid"}, service, &feedUsersStub{}, "ics")

		assert.NoError(t, scheduler.Start())
	})
}
