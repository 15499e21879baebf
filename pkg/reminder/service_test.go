package reminder

import (
	"context"
	"testing"

	"github.com/meetcal/meetcal/internal/test_utils"
	"github.com/meetcal/meetcal/pkg/schedule"
	"github.com/meetcal/meetcal/pkg/timeutil"
	"github.com/meetcal/meetcal/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServiceTest(t *testing.T) (*ServiceImpl, context.Context) {
	return NewService(NewRepositoryStub()), test_utils.WithTestUser(context.Background())
}

func TestService_Add(t *testing.T) {
	t.Run("should create incomplete reminder with id", func(t *testing.T) {
		service, ctx := setupServiceTest(t)

		created, err := service.Add(ctx, Reminder{Text: "Call mentor", Date: "2025-07-14", Time: "9:00", Completed: true})

		require.NoError(t, err)
		assert.NotEmpty(t, created.Id)
		assert.Equal(t, "09:00", created.Time)
		assert.False(t, created.Completed)
	})

	testCases := []struct {
		name     string
		reminder Reminder
	}{
		{"missing text", Reminder{Date: "2025-07-14"}},
		{"invalid date", Reminder{Text: "x", Date: "tomorrow"}},
		{"invalid time", Reminder{Text: "x", Date: "2025-07-14", Time: "noon"}},
	}
	for _, tc := range testCases {
		t.Run("should reject "+tc.name, func(t *testing.T) {
			service, ctx := setupServiceTest(t)

			_, err := service.Add(ctx, tc.reminder)

			assert.ErrorIs(t, err, timeutil.ErrInvalidFormat)
		})
	}

	t.Run("should require user", func(t *testing.T) {
		service, _ := setupServiceTest(t)

		_, err := service.Add(context.Background(), Reminder{Text: "x", Date: "2025-07-14"})

		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestService_List(t *testing.T) {
	// given
	service, ctx := setupServiceTest(t)
	for _, r := range []Reminder{
		{Text: "late", Date: "2025-07-14", Time: "18:00"},
		{Text: "other day", Date: "2025-07-15"},
		{Text: "early", Date: "2025-07-14", Time: "08:00"},
	} {
		_, err := service.Add(ctx, r)
		require.NoError(t, err)
	}

	t.Run("should list reminders of a day in time order", func(t *testing.T) {
		reminders, err := service.List(ctx, "2025-07-14")

		require.NoError(t, err)
		require.Len(t, reminders, 2)
		assert.Equal(t, "early", reminders[0].Text)
		assert.Equal(t, "late", reminders[1].Text)
	})

	t.Run("should list all reminders without date", func(t *testing.T) {
		reminders, err := service.List(ctx, "")

		require.NoError(t, err)
		assert.Len(t, reminders, 3)
	})

	t.Run("should keep reminders of other users apart", func(t *testing.T) {
		otherCtx := user.WithUser(context.Background(), user.User{Id: 999})

		reminders, err := service.List(otherCtx, "")

		require.NoError(t, err)
		assert.Empty(t, reminders)
	})
}

func TestService_Toggle(t *testing.T) {
	t.Run("should flip completed flag", func(t *testing.T) {
		service, ctx := setupServiceTest(t)
		created, err := service.Add(ctx, Reminder{Text: "Submit form", Date: "2025-07-14"})
		require.NoError(t, err)

		toggled, err := service.Toggle(ctx, created.Id)
		require.NoError(t, err)
		again, err := service.Toggle(ctx, created.Id)
		require.NoError(t, err)

		assert.True(t, toggled.Completed)
		assert.False(t, again.Completed)
	})

	t.Run("should report unknown reminder as not found", func(t *testing.T) {
		service, ctx := setupServiceTest(t)

		_, err := service.Toggle(ctx, "1b4e28ba-2fa1-11d2-883f-0016d3cca427")

		assert.ErrorIs(t, err, ErrReminderNotFound)
		assert.ErrorIs(t, err, schedule.ErrNotFound)
	})
}
