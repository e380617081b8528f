package events

import (
	"context"
	"errors"
	"fmt"

	"Backend-UniClub/src/database"
	"Backend-UniClub/src/models"
	"Backend-UniClub/src/repositories"
	"Backend-UniClub/src/services"

	"go.uber.org/zap"
)

// ErrUserNotFound is returned when the caller has no user record yet.
var ErrUserNotFound = errors.New("user not found")

// Join registers the caller for an event and credits the join points. The
// attendee insert is add-if-absent, so a repeated or concurrent join by the
// same member yields ErrAlreadyRegistered and awards nothing. Both writes
// commit together; without transaction support a failed user write is
// compensated by removing the attendee again.
func (s *Service) Join(ctx context.Context, clerkID, eventIDHex string) error {
	err := s.join(ctx, clerkID, eventIDHex)
	switch {
	case err == nil:
		s.Metrics.EventJoinsTotal.WithLabelValues("ok").Inc()
	case errors.Is(err, services.ErrAlreadyRegistered):
		s.Metrics.EventJoinsTotal.WithLabelValues("already_registered").Inc()
	default:
		s.Metrics.EventJoinsTotal.WithLabelValues("error").Inc()
	}
	return err
}

func (s *Service) join(ctx context.Context, clerkID, eventIDHex string) error {
	eventID, err := services.ParseID(eventIDHex)
	if err != nil {
		return err
	}

	ctx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()

	user, err := s.Users.GetByClerkID(ctx, clerkID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	event, err := s.Events.Get(ctx, eventID)
	if err != nil {
		return err
	}
	if event.HasAttendee(user.ID) {
		return services.ErrAlreadyRegistered
	}

	entry := models.ActivityEntry{
		Type:   "event",
		Title:  event.Title.Get(models.LangEN),
		Date:   event.Date,
		Points: models.EventJoinPoints,
		Status: "registered",
	}

	err = s.Transactor.RunInTransaction(ctx, func(tx context.Context) error {
		added, err := s.Events.AddAttendee(tx, event.ID, user.ID)
		if err != nil {
			return err
		}
		if !added {
			return services.ErrAlreadyRegistered
		}
		return s.Users.RecordEventJoin(tx, user.ID, entry)
	})
	if errors.Is(err, database.ErrTxnNotSupported) {
		s.Logger.Debug("joining without transaction", zap.String("eventId", eventIDHex))
		err = s.joinWithCompensation(ctx, event, user, entry)
	}
	if err != nil {
		if errors.Is(err, services.ErrAlreadyRegistered) {
			return err
		}
		return fmt.Errorf("join event: %w", err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *Service) joinWithCompensation(ctx context.Context, event *models.Event, user *models.User, entry models.ActivityEntry) error {
	added, err := s.Events.AddAttendee(ctx, event.ID, user.ID)
	if err != nil {
		return err
	}
	if !added {
		return services.ErrAlreadyRegistered
	}
	if err := s.Users.RecordEventJoin(ctx, user.ID, entry); err != nil {
		undoCtx, cancel := services.WithTimeout(context.WithoutCancel(ctx), s.Timeout)
		defer cancel()
		if undoErr := s.Events.RemoveAttendee(undoCtx, event.ID, user.ID); undoErr != nil {
			s.Logger.Error("failed to roll back attendee after user write failed",
				zap.String("eventId", event.ID.Hex()),
				zap.String("userId", user.ID.Hex()),
				zap.Error(undoErr))
		}
		// a list read between the add and the rollback may have cached the attendee
		s.invalidate(undoCtx)
		return err
	}
	return nil
}
