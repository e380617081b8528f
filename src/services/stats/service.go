package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"Backend-UniClub/src/config"
	"Backend-UniClub/src/metrics"
	"Backend-UniClub/src/models"
	"Backend-UniClub/src/repositories"
	"Backend-UniClub/src/services"
	"Backend-UniClub/src/utils"

	"go.uber.org/zap"
)

const cacheKeyStats = "clubs:stats"

type Service struct {
	users   repositories.UserRepository
	events  repositories.EventRepository
	clubs   repositories.ClubRepository
	site    config.Site
	cache   *utils.Cache
	metrics *metrics.Metrics
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

type Deps struct {
	Users   repositories.UserRepository
	Events  repositories.EventRepository
	Clubs   repositories.ClubRepository
	Site    config.Site
	Cache   *utils.Cache
	Metrics *metrics.Metrics
	Timeout time.Duration
	Logger  *zap.Logger
}

func NewService(d Deps) *Service {
	if d.Metrics == nil {
		d.Metrics = metrics.Nop()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Service{
		users:   d.Users,
		events:  d.Events,
		clubs:   d.Clubs,
		site:    d.Site,
		cache:   d.Cache,
		metrics: d.Metrics,
		timeout: d.Timeout,
		logger:  d.Logger,
		now:     time.Now,
	}
}

// All returns the summary of every university with members or events.
func (s *Service) All(ctx context.Context) (map[string]models.ClubStats, error) {
	var cached map[string]models.ClubStats
	if s.cache.Get(ctx, cacheKeyStats, &cached) {
		s.metrics.CacheLookups.WithLabelValues("clubs_stats", "hit").Inc()
		return cached, nil
	}
	s.metrics.CacheLookups.WithLabelValues("clubs_stats", "miss").Inc()

	ctx, cancel := services.WithTimeout(ctx, s.timeout)
	defer cancel()

	counts, err := s.users.CountByUniversity(ctx, s.site.PrimaryUniversity)
	if err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}
	events, err := s.events.ListByUniversity(ctx, "", false)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := Aggregate(counts, events, s.site.PrimaryUniversity)
	s.cache.Set(ctx, cacheKeyStats, out)
	return out, nil
}

// Club returns one university's summary plus its next upcoming event.
// Codes are matched case-insensitively. Unknown codes without a club
// document are ErrNotFound.
func (s *Service) Club(ctx context.Context, clubID string) (*models.ClubDetail, error) {
	clubID = strings.ToUpper(strings.TrimSpace(clubID))
	ctx, cancel := services.WithTimeout(ctx, s.timeout)
	defer cancel()

	club, err := s.clubs.GetByClubID(ctx, clubID)
	if err != nil && !repositories.IsNotFound(err) {
		return nil, fmt.Errorf("get club: %w", err)
	}
	if club == nil && !s.site.IsUniversity(clubID) {
		return nil, services.ErrNotFound
	}

	primary := clubID == s.site.PrimaryUniversity
	members, err := s.users.CountInUniversity(ctx, clubID, primary)
	if err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}
	events, err := s.events.ListByUniversity(ctx, clubID, primary)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	summary := Summarize(members, events)
	return &models.ClubDetail{
		ClubID:    clubID,
		Club:      club,
		Stats:     summary,
		Score:     Score(summary.Members, summary.TotalEvents),
		NextEvent: NextEvent(events, s.now()),
	}, nil
}

// Invalidate drops the cached bulk summary after members or events change.
func (s *Service) Invalidate(ctx context.Context) {
	s.cache.Del(ctx, cacheKeyStats)
}
