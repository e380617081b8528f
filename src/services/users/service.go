// Package users implements member self-service (dashboard, profile sync) and
// admin member management.
package users

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"Backend-UniClub/src/config"
	"Backend-UniClub/src/models"
	"Backend-UniClub/src/repositories"
	"Backend-UniClub/src/services"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	recentActivityShown = 20
	overviewListSize    = 5
)

// StatsInvalidator is told when membership data changed.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

type Deps struct {
	Users   repositories.UserRepository
	Events  repositories.EventRepository
	Stats   StatsInvalidator
	Site    config.Site
	Timeout time.Duration
	Logger  *zap.Logger
	Now     func() time.Time
}

type Service struct {
	Deps
}

type noopStats struct{}

func (noopStats) Invalidate(context.Context) {}

func NewService(d Deps) *Service {
	if d.Stats == nil {
		d.Stats = noopStats{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Service{Deps: d}
}

// Ensure returns the caller's user record, creating a default member when
// the identity provider knows the user but the database does not yet. A new
// member changes the club statistics.
func (s *Service) Ensure(ctx context.Context, id models.Identity) (*models.User, error) {
	dbCtx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	u, created, err := s.Users.Ensure(dbCtx, id, s.Site.PrimaryUniversity)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	if created {
		s.Stats.Invalidate(ctx)
	}
	return u, nil
}

func (s *Service) Dashboard(ctx context.Context, id models.Identity) (*models.Dashboard, error) {
	user, err := s.Ensure(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	registered, err := s.Events.ListByAttendee(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list registered events: %w", err)
	}

	activity := append([]models.ActivityEntry{}, user.ActivityHistory...)
	sort.SliceStable(activity, func(i, j int) bool { return activity[i].Date.After(activity[j].Date) })
	if len(activity) > recentActivityShown {
		activity = activity[:recentActivityShown]
	}

	level := models.LevelFor(user.Points)
	return &models.Dashboard{
		Profile: user,
		Stats: models.DashboardStats{
			Points:            user.Points,
			Level:             level,
			PointsToNextLevel: level*models.PointsPerLevel - user.Points,
			EventsAttended:    user.EventsAttendedCount,
			VolunteerHours:    user.VolunteerHours,
			Badges:            len(user.Badges),
		},
		Activity:         activity,
		RegisteredEvents: registered,
	}, nil
}

// Sync stores the profile the member entered after sign-up.
func (s *Service) Sync(ctx context.Context, id models.Identity, req *models.SyncUserRequest) (*models.User, error) {
	university := strings.ToUpper(s.Site.UniversityOrDefault(req.University))
	if !s.Site.IsUniversity(university) {
		return nil, services.ErrUnknownUniversity
	}

	ctx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	u, err := s.Users.UpsertProfile(ctx, id, repositories.UserProfile{
		FullName:   strings.TrimSpace(req.FullName),
		StudentID:  strings.TrimSpace(req.StudentID),
		University: university,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, services.ErrDuplicate
		}
		return nil, fmt.Errorf("sync user: %w", err)
	}
	s.Stats.Invalidate(ctx)
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Users.List(ctx)
}

func (s *Service) SetRole(ctx context.Context, idHex, role string) (*models.User, error) {
	id, err := services.ParseID(idHex)
	if err != nil {
		return nil, err
	}
	ctx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Users.SetRole(ctx, id, role)
}

// AddBadge grants a badge once; granting it again changes nothing.
func (s *Service) AddBadge(ctx context.Context, idHex, badge string) (*models.User, error) {
	id, err := services.ParseID(idHex)
	if err != nil {
		return nil, err
	}
	ctx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Users.AddBadge(ctx, id, strings.TrimSpace(badge))
}

// Delete removes the user record. Event attendee lists keep the stale id.
func (s *Service) Delete(ctx context.Context, idHex string) error {
	id, err := services.ParseID(idHex)
	if err != nil {
		return err
	}
	ctx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.Users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.Stats.Invalidate(ctx)
	return nil
}

// Overview loads events and users concurrently and summarizes them for the
// admin console.
func (s *Service) Overview(ctx context.Context) (*models.AdminOverview, error) {
	ctx, cancel := services.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var (
		events []models.Event
		users  []models.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.Events.List(gctx, models.EventFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.Users.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load overview: %w", err)
	}

	out := &models.AdminOverview{
		TotalEvents:         len(events),
		TotalUsers:          len(users),
		MembersByUniversity: map[string]int{},
		UpcomingEvents:      []models.Event{},
		TopMembers:          []models.User{},
	}
	now := s.Now()
	for _, e := range events {
		if e.Status == models.EventStatusUpcoming {
			out.UpcomingEventsCount++
			if !e.Date.Before(now) && len(out.UpcomingEvents) < overviewListSize {
				out.UpcomingEvents = append(out.UpcomingEvents, e)
			}
		}
	}
	for _, u := range users {
		if u.Role == models.RoleAdmin {
			out.Admins++
		}
		out.TotalPoints += u.Points
		out.MembersByUniversity[s.Site.UniversityOrDefault(u.University)]++
	}

	ranked := append([]models.User{}, users...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Points > ranked[j].Points })
	if len(ranked) > overviewListSize {
		ranked = ranked[:overviewListSize]
	}
	out.TopMembers = append(out.TopMembers, ranked...)
	return out, nil
}
