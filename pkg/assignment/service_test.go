package assignment

import (
	"context"
	"testing"

	"github.com/meetcal/meetcal/internal/test_utils"
	"github.com/meetcal/meetcal/pkg/schedule"
	"github.com/meetcal/meetcal/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scheduleReaderStub struct {
	schedule schedule.Schedule
}

func (s *scheduleReaderStub) GetSchedule(ctx context.Context) (schedule.Schedule, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return schedule.Schedule{}, err
	}
	return s.schedule, nil
}

func setupServiceTest(t *testing.T) (context.Context, *ServiceImpl, *RepositoryStub) {
	repo := NewRepositoryStub()
	reader := &scheduleReaderStub{schedule: schedule.Schedule{
		Events: []schedule.Event{
			{Id: "E1", Title: "Kickoff", Assignments: []schedule.Assignment{task("a1", "2025-07-20"), task("a2", "2025-07-18")}},
		},
		GeneralAssignments: []schedule.Assignment{task("g1", "2025-07-19")},
	}}
	return test_utils.WithTestUser(context.Background()), NewService(repo, reader), repo
}

func TestServiceImpl_GetWorklist(t *testing.T) {
	t.Run("should sort by due date when nothing started", func(t *testing.T) {
		ctx, service, _ := setupServiceTest(t)

		worklist, err := service.GetWorklist(ctx, ByStatus)

		require.NoError(t, err)
		assert.Equal(t, []string{"a2", "g1", "a1"}, entryIds(worklist.Entries))
		assert.Equal(t, Summary{Completed: 0, Total: 3, Percent: 0}, worklist.Summary)
	})

	t.Run("should apply stored statuses", func(t *testing.T) {
		// given
		ctx, service, repo := setupServiceTest(t)
		require.NoError(t, repo.SetStatus(ctx, test_utils.TestUser.Id, "a2", Done))
		require.NoError(t, repo.SetStatus(ctx, test_utils.TestUser.Id, "a1", InProgress))

		// when
		byStatus, err := service.GetWorklist(ctx, ByStatus)
		require.NoError(t, err)
		doneLast, err := service.GetWorklist(ctx, DoneLastOrder)
		require.NoError(t, err)

		// then
		assert.Equal(t, []string{"g1", "a1", "a2"}, entryIds(byStatus.Entries))
		assert.Equal(t, []string{"g1", "a1", "a2"}, entryIds(doneLast.Entries))
		assert.Equal(t, Summary{Completed: 1, Total: 3, Percent: 33}, byStatus.Summary)
	})

	t.Run("should fail without user", func(t *testing.T) {
		_, service, _ := setupServiceTest(t)

		_, err := service.GetWorklist(context.Background(), ByStatus)

		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestServiceImpl_Status(t *testing.T) {
	t.Run("should set status of known assignment", func(t *testing.T) {
		ctx, service, repo := setupServiceTest(t)

		status, err := service.SetStatus(ctx, "g1", InProgress)

		require.NoError(t, err)
		assert.Equal(t, InProgress, status)
		stored, _ := repo.GetStatuses(ctx, test_utils.TestUser.Id)
		assert.Equal(t, InProgress, stored.Of("g1"))
	})

	t.Run("should reject assignment outside the schedule", func(t *testing.T) {
		ctx, service, repo := setupServiceTest(t)

		_, err := service.SetStatus(ctx, "unknown", Done)

		assert.ErrorIs(t, err, schedule.ErrNotFound)
		stored, _ := repo.GetStatuses(ctx, test_utils.TestUser.Id)
		assert.Empty(t, stored)
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		ctx, service, _ := setupServiceTest(t)

		_, err := service.SetStatus(ctx, "a1", Status("paused"))

		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("should cycle back to not started", func(t *testing.T) {
		ctx, service, _ := setupServiceTest(t)

		var seen []Status
		for i := 0; i < 4; i++ {
			status, err := service.CycleStatus(ctx, "a1")
			require.NoError(t, err)
			seen = append(seen, status)
		}

		assert.Equal(t, []Status{InProgress, Done, NotStarted, InProgress}, seen)
	})

	t.Run("should not cycle unknown assignment", func(t *testing.T) {
		ctx, service, _ := setupServiceTest(t)

		_, err := service.CycleStatus(ctx, "unknown")

		assert.ErrorIs(t, err, ErrAssignmentNotFound)
	})
}
