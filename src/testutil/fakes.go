// Package testutil provides in-memory stand-ins for the Mongo repositories so
// services and handlers can be tested without a database.
package testutil

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"Backend-UniClub/src/database"
	"Backend-UniClub/src/models"
	"Backend-UniClub/src/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInjected is returned by a fake whose Fail field is set.
var ErrInjected = errors.New("injected failure")

var (
	_ repositories.EventRepository       = (*EventRepo)(nil)
	_ repositories.NewsRepository        = (*NewsRepo)(nil)
	_ repositories.OpportunityRepository = (*OpportunityRepo)(nil)
	_ repositories.ClubRepository        = (*ClubRepo)(nil)
	_ repositories.UserRepository        = (*UserRepo)(nil)
	_ database.Transactor                = (*Transactor)(nil)
)

func matchUniversity(value, code string, includeUnassigned bool) bool {
	if value == code {
		return true
	}
	return includeUnassigned && strings.TrimSpace(value) == ""
}

// ---- events ----

type EventRepo struct {
	mu     sync.Mutex
	Events map[primitive.ObjectID]models.Event
	Fail   bool
}

func NewEventRepo(events ...models.Event) *EventRepo {
	r := &EventRepo{Events: map[primitive.ObjectID]models.Event{}}
	for _, e := range events {
		if e.ID.IsZero() {
			e.ID = primitive.NewObjectID()
		}
		r.Events[e.ID] = e
	}
	return r
}

func (r *EventRepo) sorted(keep func(models.Event) bool) []models.Event {
	out := []models.Event{}
	for _, e := range r.Events {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (r *EventRepo) List(_ context.Context, f models.EventFilter) ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return nil, ErrInjected
	}
	return r.sorted(func(e models.Event) bool {
		return (f.Category == "" || e.Category == f.Category) &&
			(f.University == "" || e.University == f.University) &&
			(f.Status == "" || e.Status == f.Status)
	}), nil
}

func (r *EventRepo) ListByUniversity(_ context.Context, code string, includeUnassigned bool) ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return nil, ErrInjected
	}
	return r.sorted(func(e models.Event) bool {
		return code == "" || matchUniversity(e.University, code, includeUnassigned)
	}), nil
}

func (r *EventRepo) ListByAttendee(_ context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(e models.Event) bool { return e.HasAttendee(userID) }), nil
}

func (r *EventRepo) Get(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return nil, ErrInjected
	}
	e, ok := r.Events[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &e, nil
}

func (r *EventRepo) Create(_ context.Context, e *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return ErrInjected
	}
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Attendees == nil {
		e.Attendees = []primitive.ObjectID{}
	}
	e.CreatedAt, e.UpdatedAt = time.Now(), time.Now()
	r.Events[e.ID] = *e
	return nil
}

func (r *EventRepo) Update(_ context.Context, e *models.Event) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return nil, ErrInjected
	}
	cur, ok := r.Events[e.ID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	next := *e
	next.Attendees = cur.Attendees
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = time.Now()
	r.Events[e.ID] = next
	return &next, nil
}

func (r *EventRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return ErrInjected
	}
	delete(r.Events, id)
	return nil
}

func (r *EventRepo) AddAttendee(_ context.Context, eventID, userID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.Events[eventID]
	if !ok || e.HasAttendee(userID) {
		return false, nil
	}
	e.Attendees = append(append([]primitive.ObjectID{}, e.Attendees...), userID)
	r.Events[eventID] = e
	return true, nil
}

func (r *EventRepo) RemoveAttendee(_ context.Context, eventID, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.Events[eventID]
	if !ok {
		return nil
	}
	kept := []primitive.ObjectID{}
	for _, id := range e.Attendees {
		if id != userID {
			kept = append(kept, id)
		}
	}
	e.Attendees = kept
	r.Events[eventID] = e
	return nil
}

func (r *EventRepo) SetStatusIf(_ context.Context, id primitive.ObjectID, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.Events[id]
	if !ok || e.Status != from {
		return false, nil
	}
	e.Status = to
	r.Events[id] = e
	return true, nil
}

// ---- news ----

type NewsRepo struct {
	mu   sync.Mutex
	News map[primitive.ObjectID]models.News
	Fail bool
}

func NewNewsRepo(items ...models.News) *NewsRepo {
	r := &NewsRepo{News: map[primitive.ObjectID]models.News{}}
	for _, n := range items {
		if n.ID.IsZero() {
			n.ID = primitive.NewObjectID()
		}
		r.News[n.ID] = n
	}
	return r
}

func (r *NewsRepo) List(_ context.Context, tag string) ([]models.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return nil, ErrInjected
	}
	out := []models.News{}
	for _, n := range r.News {
		if tag == "" || containsString(n.Tags, tag) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedDate.After(out[j].PublishedDate) })
	return out, nil
}

func (r *NewsRepo) Get(_ context.Context, id primitive.ObjectID) (*models.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.News[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &n, nil
}

func (r *NewsRepo) Create(_ context.Context, n *models.News) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return ErrInjected
	}
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	n.CreatedAt, n.UpdatedAt = time.Now(), time.Now()
	r.News[n.ID] = *n
	return nil
}

func (r *NewsRepo) Update(_ context.Context, n *models.News) (*models.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return nil, ErrInjected
	}
	cur, ok := r.News[n.ID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	next := *n
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = time.Now()
	r.News[n.ID] = next
	return &next, nil
}

func (r *NewsRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return ErrInjected
	}
	delete(r.News, id)
	return nil
}

// ---- opportunities ----

type OpportunityRepo struct {
	mu    sync.Mutex
	Items map[primitive.ObjectID]models.Opportunity
	Fail  bool
}

func NewOpportunityRepo(items ...models.Opportunity) *OpportunityRepo {
	r := &OpportunityRepo{Items: map[primitive.ObjectID]models.Opportunity{}}
	for _, o := range items {
		if o.ID.IsZero() {
			o.ID = primitive.NewObjectID()
		}
		r.Items[o.ID] = o
	}
	return r
}

func (r *OpportunityRepo) List(_ context.Context, oppType string) ([]models.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return nil, ErrInjected
	}
	out := []models.Opportunity{}
	for _, o := range r.Items {
		if oppType == "" || o.Type == oppType {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *OpportunityRepo) Get(_ context.Context, id primitive.ObjectID) (*models.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.Items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &o, nil
}

func (r *OpportunityRepo) Create(_ context.Context, o *models.Opportunity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return ErrInjected
	}
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	o.CreatedAt, o.UpdatedAt = time.Now(), time.Now()
	r.Items[o.ID] = *o
	return nil
}

func (r *OpportunityRepo) CreateMany(ctx context.Context, items []models.Opportunity) error {
	for i := range items {
		if err := r.Create(ctx, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *OpportunityRepo) Update(_ context.Context, o *models.Opportunity) (*models.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return nil, ErrInjected
	}
	cur, ok := r.Items[o.ID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	next := *o
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = time.Now()
	r.Items[o.ID] = next
	return &next, nil
}

func (r *OpportunityRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return ErrInjected
	}
	delete(r.Items, id)
	return nil
}

func (r *OpportunityRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return 0, ErrInjected
	}
	return int64(len(r.Items)), nil
}

// ---- clubs ----

type ClubRepo struct {
	mu    sync.Mutex
	Clubs map[primitive.ObjectID]models.Club
	Fail  bool
}

func NewClubRepo(items ...models.Club) *ClubRepo {
	r := &ClubRepo{Clubs: map[primitive.ObjectID]models.Club{}}
	for _, c := range items {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		r.Clubs[c.ID] = c
	}
	return r
}

func (r *ClubRepo) List(_ context.Context) ([]models.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return nil, ErrInjected
	}
	out := []models.Club{}
	for _, c := range r.Clubs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ClubRepo) Get(_ context.Context, id primitive.ObjectID) (*models.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Clubs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (r *ClubRepo) GetByClubID(_ context.Context, clubID string) (*models.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.Clubs {
		if c.ClubID == clubID {
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *ClubRepo) Create(_ context.Context, c *models.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return ErrInjected
	}
	for _, existing := range r.Clubs {
		if existing.ClubID == c.ClubID {
			return repositories.ErrDuplicate
		}
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	r.Clubs[c.ID] = *c
	return nil
}

func (r *ClubRepo) Update(_ context.Context, c *models.Club) (*models.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return nil, ErrInjected
	}
	cur, ok := r.Clubs[c.ID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	next := *c
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = time.Now()
	r.Clubs[c.ID] = next
	return &next, nil
}

func (r *ClubRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return ErrInjected
	}
	delete(r.Clubs, id)
	return nil
}

// ---- users ----

type UserRepo struct {
	mu    sync.Mutex
	Users map[primitive.ObjectID]models.User
	// Fail makes every call error; FailJoin only fails RecordEventJoin.
	Fail     bool
	FailJoin bool
	Lookups  int
}

func NewUserRepo(users ...models.User) *UserRepo {
	r := &UserRepo{Users: map[primitive.ObjectID]models.User{}}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.Users[u.ID] = u
	}
	return r
}

func (r *UserRepo) List(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return nil, ErrInjected
	}
	out := []models.User{}
	for _, u := range r.Users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepo) Get(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return nil, ErrInjected
	}
	u, ok := r.Users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepo) GetByClerkID(_ context.Context, clerkID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lookups++
	if r.Fail {
		return nil, ErrInjected
	}
	if u, ok := r.byClerkID(clerkID); ok {
		return &u, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *UserRepo) byClerkID(clerkID string) (models.User, bool) {
	for _, u := range r.Users {
		if u.ClerkID == clerkID {
			return u, true
		}
	}
	return models.User{}, false
}

func (r *UserRepo) Ensure(_ context.Context, id models.Identity, university string) (*models.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return nil, false, ErrInjected
	}
	if u, ok := r.byClerkID(id.ClerkID); ok {
		return &u, false, nil
	}
	u := models.User{
		ID:              primitive.NewObjectID(),
		ClerkID:         id.ClerkID,
		Email:           id.Email,
		FullName:        id.FullName,
		University:      university,
		Role:            models.RoleMember,
		Level:           1,
		Badges:          []string{},
		ActivityHistory: []models.ActivityEntry{},
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	r.Users[u.ID] = u
	return &u, true, nil
}

func (r *UserRepo) UpsertProfile(ctx context.Context, id models.Identity, p repositories.UserProfile) (*models.User, error) {
	if _, _, err := r.Ensure(ctx, id, p.University); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, _ := r.byClerkID(id.ClerkID)
	for _, other := range r.Users {
		if other.ID != u.ID && p.StudentID != "" && other.StudentID == p.StudentID {
			return nil, repositories.ErrDuplicate
		}
	}
	u.FullName, u.StudentID, u.University = p.FullName, p.StudentID, p.University
	if id.Email != "" {
		u.Email = id.Email
	}
	u.UpdatedAt = time.Now()
	r.Users[u.ID] = u
	return &u, nil
}

func (r *UserRepo) RecordEventJoin(_ context.Context, userID primitive.ObjectID, entry models.ActivityEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail || r.FailJoin {
		return ErrInjected
	}
	u, ok := r.Users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	u.ActivityHistory = append(append([]models.ActivityEntry{}, u.ActivityHistory...), entry)
	u.Points += entry.Points
	u.EventsAttendedCount++
	u.Level = models.LevelFor(u.Points)
	r.Users[userID] = u
	return nil
}

func (r *UserRepo) CountByUniversity(_ context.Context, primary string) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return nil, ErrInjected
	}
	out := map[string]int{}
	for _, u := range r.Users {
		key := u.University
		if strings.TrimSpace(key) == "" {
			key = primary
		}
		out[key]++
	}
	return out, nil
}

func (r *UserRepo) CountInUniversity(_ context.Context, code string, includeUnassigned bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return 0, ErrInjected
	}
	n := 0
	for _, u := range r.Users {
		if matchUniversity(u.University, code, includeUnassigned) {
			n++
		}
	}
	return n, nil
}

func (r *UserRepo) SetRole(_ context.Context, id primitive.ObjectID, role string) (*models.User, error) {
	return r.mutate(id, func(u *models.User) { u.Role = role })
}

func (r *UserRepo) AddBadge(_ context.Context, id primitive.ObjectID, badge string) (*models.User, error) {
	return r.mutate(id, func(u *models.User) {
		if !containsString(u.Badges, badge) {
			u.Badges = append(append([]string{}, u.Badges...), badge)
		}
	})
}

func (r *UserRepo) mutate(id primitive.ObjectID, fn func(*models.User)) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return nil, ErrInjected
	}
	u, ok := r.Users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	fn(&u)
	u.UpdatedAt = time.Now()
	r.Users[id] = u
	return &u, nil
}

func (r *UserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return ErrInjected
	}
	delete(r.Users, id)
	return nil
}

// ---- transactions ----

// Transactor runs fn directly, or reports that transactions are unavailable
// when Unsupported is set.
type Transactor struct {
	Unsupported bool
	Calls       int
}

func (t *Transactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	if t.Unsupported {
		return database.ErrTxnNotSupported
	}
	return fn(ctx)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
