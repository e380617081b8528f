package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"Backend-UniClub/src/models"
	"Backend-UniClub/src/repositories"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// EventStatusSetter is the slice of the event store the worker needs.
type EventStatusSetter interface {
	SetStatusIf(ctx context.Context, id primitive.ObjectID, from, to string) (bool, error)
}

// OnEventCompleted is called after an event was moved to past.
type OnEventCompleted func(ctx context.Context, eventID primitive.ObjectID)

// HandleCompleteEventTask moves an event from upcoming to past. Deleted,
// cancelled and already past events are skipped without error.
func HandleCompleteEventTask(events EventStatusSetter, logger *zap.Logger, done OnEventCompleted) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload EventPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			logger.Error("payload decode error", zap.Error(err))
			return fmt.Errorf("decode payload: %w", asynq.SkipRetry)
		}

		id, err := primitive.ObjectIDFromHex(payload.EventID)
		if err != nil {
			logger.Warn("invalid event id in task", zap.String("eventId", payload.EventID))
			return fmt.Errorf("invalid event id: %w", asynq.SkipRetry)
		}

		changed, err := events.SetStatusIf(ctx, id, models.EventStatusUpcoming, models.EventStatusPast)
		if err != nil {
			logger.Error("failed to update event status", zap.String("eventId", payload.EventID), zap.Error(err))
			return err
		}
		if !changed {
			logger.Info("event not upcoming, possibly deleted; skipping task", zap.String("eventId", payload.EventID))
			return nil
		}

		logger.Info("event completed", zap.String("eventId", payload.EventID))
		if done != nil {
			done(ctx, id)
		}
		return nil
	}
}

// NewServer builds the in-process worker for the scheduled tasks.
func NewServer(opt asynq.RedisClientOpt, logger *zap.Logger) *asynq.Server {
	return asynq.NewServer(opt, asynq.Config{
		Concurrency: 2,
		Queues:      map[string]int{queueDefault: 1},
		Logger:      logger.Sugar().Named("asynq"),
	})
}

func NewServeMux(events repositories.EventRepository, logger *zap.Logger, done OnEventCompleted) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeCompleteEvent, HandleCompleteEventTask(events, logger, done))
	return mux
}
