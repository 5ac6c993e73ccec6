package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/clubhub/clubhub-api/internal/core/domain"
	"github.com/clubhub/clubhub-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[int64]*domain.User
	nextID    int64
	createErr error // if set, Create returns this error
	findErr   error // if set, FindByEmail returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) seed(u *domain.User) *domain.User {
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = cloneUser(u)
	return u
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	u.CreatedAt = time.Now().UTC()
	r.seed(u)
	return nil
}

// stubHasher is reversible on purpose so tests can inspect what was hashed.
type stubHasher struct {
	verifyCalls int
}

func (h *stubHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }

func (h *stubHasher) Verify(p, digest string) bool {
	h.verifyCalls++
	return digest == "hashed:"+p
}

type stubTokens struct {
	err    error
	issued []domain.Identity
}

func (t *stubTokens) Issue(id domain.Identity) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	t.issued = append(t.issued, id)
	return "token-for-" + id.Username, nil
}

type stubAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (a *stubAudit) Record(e domain.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
}

func (a *stubAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.entries))
	for i, e := range a.entries {
		out[i] = string(e.Action)
	}
	return out
}

type stubClubRepo struct {
	clubs     map[int64]*domain.Club
	nextID    int64
	createErr error
	lastLimit int
}

func newStubClubRepo() *stubClubRepo {
	return &stubClubRepo{clubs: make(map[int64]*domain.Club), nextID: 1}
}

func (r *stubClubRepo) Create(_ context.Context, c *domain.Club) error {
	if r.createErr != nil {
		return r.createErr
	}
	c.ID = r.nextID
	r.nextID++
	c.CreatedAt = time.Now().UTC()
	clone := *c
	r.clubs[c.ID] = &clone
	return nil
}

func (r *stubClubRepo) FindByID(_ context.Context, id int64) (*domain.Club, error) {
	c, ok := r.clubs[id]
	if !ok {
		return nil, domain.ErrClubNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClubRepo) ListRecent(_ context.Context, limit int) ([]*domain.Club, error) {
	r.lastLimit = limit
	out := make([]*domain.Club, 0, len(r.clubs))
	for _, c := range r.clubs {
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubEventRepo struct {
	events     map[int64]*domain.Event
	nextID     int64
	lastFilter ports.ListEventsFilter
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{events: make(map[int64]*domain.Event), nextID: 1}
}

func (r *stubEventRepo) Create(_ context.Context, e *domain.Event) error {
	e.ID = r.nextID
	r.nextID++
	clone := *e
	r.events[e.ID] = &clone
	return nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id int64) (*domain.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEventRepo) List(_ context.Context, f ports.ListEventsFilter) ([]*domain.Event, error) {
	r.lastFilter = f
	var out []*domain.Event
	for _, e := range r.events {
		if f.ClubID != 0 && e.ClubID != f.ClubID {
			continue
		}
		if !f.From.IsZero() && e.StartsAt.Before(f.From) {
			continue
		}
		clone := *e
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

// stubIdem mirrors the Redis store: 0 marks a pending reservation.
type stubIdem struct {
	keys       map[string]int64
	reserveErr error
	released   int
}

func newStubIdem() *stubIdem { return &stubIdem{keys: make(map[string]int64)} }

func (s *stubIdem) Reserve(_ context.Context, scope, key string) (int64, bool, error) {
	if s.reserveErr != nil {
		return 0, false, s.reserveErr
	}
	id, ok := s.keys[scope+"|"+key]
	if ok {
		return id, false, nil
	}
	s.keys[scope+"|"+key] = 0
	return 0, true, nil
}

func (s *stubIdem) Remember(_ context.Context, scope, key string, id int64) error {
	s.keys[scope+"|"+key] = id
	return nil
}

func (s *stubIdem) Release(_ context.Context, scope, key string) error {
	s.released++
	delete(s.keys, scope+"|"+key)
	return nil
}
