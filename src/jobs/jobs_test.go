package jobs

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"Backend-UniClub/src/models"
	"Backend-UniClub/src/testutil"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestEventEnd(t *testing.T) {
	date := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 5, 1, 17, 0, 0, 0, time.UTC), EventEnd(date, "14:00 - 17:00", nil))
	assert.Equal(t, time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), EventEnd(date, "", nil))
	assert.Equal(t, time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), EventEnd(date, "all day", time.UTC))

	// an end time before the start time falls back to the start
	start := time.Date(2025, 5, 1, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, start, EventEnd(start, "09:00", nil))
}

func TestEventEndInSiteZone(t *testing.T) {
	plus8 := time.FixedZone("UTC+8", 8*60*60)
	// local midnight of May 1st, as read back from the database
	date := time.Date(2025, 4, 30, 16, 0, 0, 0, time.UTC)

	end := EventEnd(date, "14:00 - 17:00", plus8)
	assert.True(t, time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC).Equal(end), end.String())

	end = EventEnd(date, "", plus8)
	assert.True(t, time.Date(2025, 5, 1, 16, 0, 0, 0, time.UTC).Equal(end), end.String())
}

func TestNilSchedulerIsNoop(t *testing.T) {
	var s *Scheduler
	assert.NoError(t, s.ScheduleEventCompletion(context.Background(), "x", time.Now().Add(time.Hour)))
	s.CancelEventCompletion(context.Background(), "x")
	assert.Nil(t, NewScheduler(nil, asynq.RedisClientOpt{}, zap.NewNop()))
}

func completeTask(t *testing.T, id string) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(EventPayload{EventID: id})
	require.NoError(t, err)
	return asynq.NewTask(TypeCompleteEvent, b)
}

func TestHandleCompleteEventTask(t *testing.T) {
	upcoming := models.Event{ID: primitive.NewObjectID(), Status: models.EventStatusUpcoming}
	cancelled := models.Event{ID: primitive.NewObjectID(), Status: models.EventStatusCancelled}
	repo := testutil.NewEventRepo(upcoming, cancelled)

	var completed []primitive.ObjectID
	h := HandleCompleteEventTask(repo, zap.NewNop(), func(_ context.Context, id primitive.ObjectID) {
		completed = append(completed, id)
	})
	ctx := context.Background()

	require.NoError(t, h(ctx, completeTask(t, upcoming.ID.Hex())))
	assert.Equal(t, models.EventStatusPast, repo.Events[upcoming.ID].Status)
	assert.Equal(t, []primitive.ObjectID{upcoming.ID}, completed)

	require.NoError(t, h(ctx, completeTask(t, cancelled.ID.Hex())))
	assert.Equal(t, models.EventStatusCancelled, repo.Events[cancelled.ID].Status)

	// deleted event
	require.NoError(t, h(ctx, completeTask(t, primitive.NewObjectID().Hex())))
	assert.Len(t, completed, 1)

	err := h(ctx, completeTask(t, "not-an-id"))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
