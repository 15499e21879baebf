package schedule

import (
	"context"
	"testing"

	"github.com/meetcal/meetcal/pkg/timeutil"
	"github.com/meetcal/meetcal/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type baselineProviderStub struct {
	baselines map[string]Baseline
}

func (p baselineProviderStub) Baseline(cohort, group string) Baseline {
	return p.baselines[cohort+"/"+group]
}

func setupServiceTest(t *testing.T) (*ServiceImpl, *StoreImpl, context.Context) {
	e1 := lecture("E1", "09:00", "10:00")
	e2 := lecture("E2", "10:00", "11:00")
	e3 := lecture("E3", "09:00", "10:30")
	e3.Date = "2025-07-15"
	provider := baselineProviderStub{baselines: map[string]Baseline{
		"2025/A": {
			GroupMentor:        "Dana",
			Events:             []Event{e1, e2, e3},
			GeneralAssignments: []Assignment{{Id: "GA1", Title: "Reflection", DueDate: "2025-07-31"}},
		},
	}}
	store, _, _ := setupStoreTest(t)
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Cohort: "2025", Group: "A"})
	return NewService(store, provider), store, ctx
}

func TestService_GetSchedule(t *testing.T) {
	t.Run("should merge custom events onto the cohort baseline", func(t *testing.T) {
		// given
		service, store, ctx := setupServiceTest(t)
		_, err := store.Add(ctx, Event{Id: "P1", Title: "Gym", Date: "2025-07-14", StartTime: "18:00", EndTime: "19:00"})
		require.NoError(t, err)

		// when
		schedule, err := service.GetSchedule(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, "Dana", schedule.GroupMentor)
		assert.Equal(t, []string{"E1", "E2", "E3", "P1"}, ids(schedule.Events))
		assert.Len(t, schedule.GeneralAssignments, 1)
	})

	t.Run("should serve empty baseline for unknown cohort", func(t *testing.T) {
		service, _, _ := setupServiceTest(t)
		ctx := user.WithUser(context.Background(), user.User{Id: 1, Cohort: "1999", Group: "Z"})

		schedule, err := service.GetSchedule(ctx)

		require.NoError(t, err)
		assert.Empty(t, schedule.Events)
	})

	t.Run("should require user", func(t *testing.T) {
		service, _, _ := setupServiceTest(t)

		_, err := service.GetSchedule(context.Background())

		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestService_GetDay(t *testing.T) {
	t.Run("should select events of the day", func(t *testing.T) {
		service, _, ctx := setupServiceTest(t)

		day, err := service.GetDay(ctx, "2025-07-14")

		require.NoError(t, err)
		assert.Equal(t, []string{"E1", "E2"}, ids(day))
	})

	t.Run("should follow an event moved to another day", func(t *testing.T) {
		// given
		service, store, ctx := setupServiceTest(t)
		moved := lecture("E1", "09:00", "10:00")
		moved.Date = "2025-07-15"
		_, err := store.Update(ctx, moved)
		require.NoError(t, err)

		// when
		day, err := service.GetDay(ctx, "2025-07-15")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"E1", "E3"}, ids(day))
	})

	t.Run("should reject invalid date", func(t *testing.T) {
		service, _, ctx := setupServiceTest(t)

		_, err := service.GetDay(ctx, "2025-7-14")

		assert.ErrorIs(t, err, timeutil.ErrInvalidFormat)
	})
}

func TestService_GetMonthSummary(t *testing.T) {
	service, store, ctx := setupServiceTest(t)
	_, err := store.Add(ctx, Event{Id: "P1", Date: "2025-08-01", StartTime: "08:00", EndTime: "09:00"})
	require.NoError(t, err)

	summary, err := service.GetMonthSummary(ctx, "2025-07")

	require.NoError(t, err)
	assert.Equal(t, []DayCount{{Date: "2025-07-14", Events: 2}, {Date: "2025-07-15", Events: 1}}, summary)
}
