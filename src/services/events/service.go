// Package events implements the event catalog, its admin CRUD and the member
// join flow.
package events

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"Backend-UniClub/src/config"
	"Backend-UniClub/src/database"
	"Backend-UniClub/src/jobs"
	"Backend-UniClub/src/metrics"
	"Backend-UniClub/src/models"
	"Backend-UniClub/src/repositories"
	"Backend-UniClub/src/services"
	"Backend-UniClub/src/services/uploads"
	"Backend-UniClub/src/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const cachePrefixList = "events:list:"

// CompletionScheduler arranges for an event to be marked past once it ends.
type CompletionScheduler interface {
	ScheduleEventCompletion(ctx context.Context, eventID string, runAt time.Time) error
	CancelEventCompletion(ctx context.Context, eventID string)
}

// StatsInvalidator is told when data feeding the club summary changed.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

type Deps struct {
	Events     repositories.EventRepository
	Users      repositories.UserRepository
	Transactor database.Transactor
	Uploader   uploads.Uploader
	Scheduler  CompletionScheduler
	Stats      StatsInvalidator
	Cache      *utils.Cache
	Metrics    *metrics.Metrics
	Site       config.Site
	Folder     string
	Timeout    time.Duration
	Logger     *zap.Logger
}

type Service struct {
	Deps
}

func NewService(d Deps) *Service {
	if d.Scheduler == nil {
		d.Scheduler = (*jobs.Scheduler)(nil)
	}
	if d.Stats == nil {
		d.Stats = noopStats{}
	}
	if d.Transactor == nil {
		d.Transactor = noTransactions{}
	}
	if d.Metrics == nil {
		d.Metrics = metrics.Nop()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Service{Deps: d}
}

type noopStats struct{}

func (noopStats) Invalidate(context.Context) {}

type noTransactions struct{}

func (noTransactions) RunInTransaction(context.Context, func(context.Context) error) error {
	return database.ErrTxnNotSupported
}

func (s *Service) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	key := cachePrefixList + utils.HashParams(filter)
	var cached []models.Event
	if s.Cache.Get(ctx, key, &cached) {
		s.Metrics.CacheLookups.WithLabelValues("events", "hit").Inc()
		return cached, nil
	}
	s.Metrics.CacheLookups.WithLabelValues("events", "miss").Inc()

	ctx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()

	list, err := s.Events.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	s.Cache.Set(ctx, key, list)
	return list, nil
}

func (s *Service) Get(ctx context.Context, idHex string) (*models.Event, error) {
	id, err := services.ParseID(idHex)
	if err != nil {
		return nil, err
	}
	ctx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Events.Get(ctx, id)
}

// fill copies the form onto e. A blank status keeps the current one (upcoming
// for new events) and a blank university maps to the primary institution.
// Dates are read in the site timezone.
func (s *Service) fill(e *models.Event, form *models.EventForm) error {
	date, err := utils.ParseDateIn(form.Date, s.Site.Location())
	if err != nil {
		return err
	}
	university := s.Site.UniversityOrDefault(form.University)
	if !s.Site.IsUniversity(university) {
		return services.ErrUnknownUniversity
	}
	status := form.Status
	if status == "" {
		status = e.Status
	}
	if status == "" {
		status = models.EventStatusUpcoming
	}

	e.Title = models.Localized{En: strings.TrimSpace(form.TitleEn), Mn: strings.TrimSpace(form.TitleMn)}
	e.Description = models.Localized{En: form.DescriptionEn, Mn: form.DescriptionMn}
	e.Location = models.Localized{En: form.LocationEn, Mn: form.LocationMn}
	e.Date = date
	e.TimeString = strings.TrimSpace(form.TimeString)
	e.Category = form.Category
	e.University = university
	e.Status = status
	e.Featured = form.Featured
	return nil
}

func (s *Service) upload(ctx context.Context, image *multipart.FileHeader) (string, error) {
	return uploads.UploadFile(ctx, s.Uploader, path.Join(s.Folder, "events"), image)
}

// Create stores a new event. The image is mandatory.
func (s *Service) Create(ctx context.Context, form *models.EventForm, image *multipart.FileHeader) (*models.Event, error) {
	if image == nil {
		return nil, services.ErrImageRequired
	}
	e := &models.Event{Attendees: []primitive.ObjectID{}}
	if err := s.fill(e, form); err != nil {
		return nil, err
	}

	url, err := s.upload(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("upload event image: %w", err)
	}
	e.Image = url

	dbCtx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.Events.Create(dbCtx, e); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.afterWrite(ctx, e)
	return e, nil
}

// Update replaces the editable fields of an existing event. Without a new
// image the stored URL is kept.
func (s *Service) Update(ctx context.Context, form *models.EventForm, image *multipart.FileHeader) (*models.Event, error) {
	id, err := services.ParseID(form.ID)
	if err != nil {
		return nil, err
	}

	dbCtx, cancel := services.WithTimeout(ctx, s.Timeout)
	existing, err := s.Events.Get(dbCtx, id)
	cancel()
	if err != nil {
		return nil, err
	}
	if err := s.fill(existing, form); err != nil {
		return nil, err
	}
	if image != nil {
		url, err := s.upload(ctx, image)
		if err != nil {
			return nil, fmt.Errorf("upload event image: %w", err)
		}
		existing.Image = url
	}

	dbCtx, cancel = services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	updated, err := s.Events.Update(dbCtx, existing)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.afterWrite(ctx, updated)
	return updated, nil
}

// Delete removes the event. Unknown ids succeed; attendees' activity
// history is left untouched.
func (s *Service) Delete(ctx context.Context, idHex string) error {
	id, err := services.ParseID(idHex)
	if err != nil {
		return err
	}
	dbCtx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.Events.Delete(dbCtx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.Scheduler.CancelEventCompletion(ctx, idHex)
	s.invalidate(ctx)
	return nil
}

func (s *Service) afterWrite(ctx context.Context, e *models.Event) {
	if e.Status == models.EventStatusUpcoming {
		if err := s.Scheduler.ScheduleEventCompletion(ctx, e.ID.Hex(), jobs.EventEnd(e.Date, e.TimeString, s.Site.Location())); err != nil {
			s.Logger.Warn("failed to schedule event completion", zap.String("eventId", e.ID.Hex()), zap.Error(err))
		}
	} else {
		s.Scheduler.CancelEventCompletion(ctx, e.ID.Hex())
	}
	s.invalidate(ctx)
}

func (s *Service) invalidate(ctx context.Context) {
	s.Cache.InvalidatePrefix(ctx, cachePrefixList)
	s.Stats.Invalidate(ctx)
}

// OnCompleted refreshes caches after the background job moved an event to past.
func (s *Service) OnCompleted(ctx context.Context, _ primitive.ObjectID) {
	s.invalidate(ctx)
}
