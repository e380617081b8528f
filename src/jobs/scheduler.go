package jobs

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const queueDefault = "default"

// Scheduler enqueues the delayed event state transitions. A nil *Scheduler
// (Redis not configured) schedules nothing.
type Scheduler struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	logger    *zap.Logger
}

func NewScheduler(client *asynq.Client, opt asynq.RedisClientOpt, logger *zap.Logger) *Scheduler {
	if client == nil {
		return nil
	}
	return &Scheduler{client: client, inspector: asynq.NewInspector(opt), logger: logger}
}

// deleteTask drops a previously scheduled task, if any.
func (s *Scheduler) deleteTask(taskID string) {
	err := s.inspector.DeleteTask(queueDefault, taskID)
	switch {
	case err == nil:
		s.logger.Debug("deleted previous task", zap.String("taskId", taskID))
	case errors.Is(err, asynq.ErrTaskNotFound), errors.Is(err, asynq.ErrQueueNotFound):
	default:
		s.logger.Warn("failed to delete old task, skipping", zap.String("taskId", taskID), zap.Error(err))
	}
}

// ScheduleEventCompletion replaces any pending completion task for the event
// with one running at runAt. Times in the past cancel instead.
func (s *Scheduler) ScheduleEventCompletion(ctx context.Context, eventID string, runAt time.Time) error {
	if s == nil {
		return nil
	}
	taskID := completeEventTaskID(eventID)
	s.deleteTask(taskID)

	if runAt.IsZero() || !runAt.After(time.Now()) {
		s.logger.Debug("skipped complete-event task (past time)", zap.String("eventId", eventID))
		return nil
	}

	task, err := NewCompleteEventTask(eventID)
	if err != nil {
		return fmt.Errorf("create task %s: %w", taskID, err)
	}
	if _, err := s.client.EnqueueContext(ctx, task, asynq.ProcessAt(runAt), asynq.TaskID(taskID)); err != nil {
		return fmt.Errorf("enqueue task %s: %w", taskID, err)
	}
	s.logger.Info("task scheduled", zap.String("taskId", taskID), zap.Time("runAt", runAt))
	return nil
}

// CancelEventCompletion removes the pending completion task of a deleted event.
func (s *Scheduler) CancelEventCompletion(_ context.Context, eventID string) {
	if s == nil {
		return
	}
	s.deleteTask(completeEventTaskID(eventID))
}

var timeRange = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*$`)

// EventEnd estimates when an event is over: the last HH:MM in timeString on
// the event date, or the end of the event day when no time is given. Day and
// clock time are those of loc; a nil loc uses the date's own zone.
func EventEnd(date time.Time, timeString string, loc *time.Location) time.Time {
	if loc == nil {
		loc = date.Location()
	}
	local := date.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	if m := timeRange.FindStringSubmatch(timeString); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		if h < 24 && mm < 60 {
			end := day.Add(time.Duration(h)*time.Hour + time.Duration(mm)*time.Minute)
			if end.Before(date) {
				return date
			}
			return end
		}
	}
	return day.Add(24 * time.Hour)
}
