package service

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User // by id
	nextID  int
	findErr error
	updated map[string]string // id -> new hash
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), updated: make(map[string]string)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = strconv.Itoa(r.nextID)
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Username == identifier {
			return cloneUser(u), nil
		}
	}
	for _, u := range r.users {
		if u.Email == identifier {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) GetRole(_ context.Context, id string) (domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	return u.Role, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	r.updated[id] = hash
	return nil
}

// setRole mutates the stored row directly, bypassing any service.
func (r *stubUserRepo) setRole(id string, role domain.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[id].Role = role
}

// insertRaw stores a row exactly as given, e.g. with a legacy plaintext password.
func (r *stubUserRepo) insertRaw(u *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := cloneUser(u)
	stored.ID = strconv.Itoa(r.nextID)
	r.users[stored.ID] = stored
	return cloneUser(stored)
}

type stubTestimonialRepo struct {
	items       []*domain.Testimonial
	updateCalls int
	deleteCalls int
	countErr    error
}

func (r *stubTestimonialRepo) Create(_ context.Context, t *domain.Testimonial) (string, error) {
	clone := *t
	clone.ID = strconv.Itoa(len(r.items) + 1)
	r.items = append(r.items, &clone)
	return clone.ID, nil
}

func (r *stubTestimonialRepo) List(_ context.Context, f ports.TestimonialFilter) ([]*domain.Testimonial, error) {
	var out []*domain.Testimonial
	for i := len(r.items) - 1; i >= 0; i-- {
		t := r.items[i]
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubTestimonialRepo) UpdateStatus(_ context.Context, id string, status domain.TestimonialStatus) error {
	r.updateCalls++
	for _, t := range r.items {
		if t.ID == id {
			t.Status = status
			return nil
		}
	}
	return domain.ErrTestimonialNotFound
}

func (r *stubTestimonialRepo) Delete(_ context.Context, id string) error {
	r.deleteCalls++
	for i, t := range r.items {
		if t.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrTestimonialNotFound
}

func (r *stubTestimonialRepo) Count(_ context.Context, status domain.TestimonialStatus) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var n int64
	for _, t := range r.items {
		if status == "" || t.Status == status {
			n++
		}
	}
	return n, nil
}

type stubContactRepo struct {
	items       []*domain.ContactMessage
	updateCalls int
}

func (r *stubContactRepo) Create(_ context.Context, m *domain.ContactMessage) (string, error) {
	clone := *m
	clone.ID = strconv.Itoa(len(r.items) + 1)
	r.items = append(r.items, &clone)
	return clone.ID, nil
}

func (r *stubContactRepo) List(_ context.Context) ([]*domain.ContactMessage, error) {
	out := make([]*domain.ContactMessage, 0, len(r.items))
	for i := len(r.items) - 1; i >= 0; i-- {
		clone := *r.items[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubContactRepo) UpdateStatus(_ context.Context, id string, status domain.MessageStatus) error {
	r.updateCalls++
	for _, m := range r.items {
		if m.ID == id {
			m.Status = status
			return nil
		}
	}
	return domain.ErrMessageNotFound
}

func (r *stubContactRepo) Count(_ context.Context, status domain.MessageStatus) (int64, error) {
	var n int64
	for _, m := range r.items {
		if status == "" || m.Status == status {
			n++
		}
	}
	return n, nil
}

type stubThrottle struct {
	blocked  bool
	failures []string
	resets   []string
}

func (t *stubThrottle) Allow(_ context.Context, _, _ string) error {
	if t.blocked {
		return domain.ErrTooManyAttempts
	}
	return nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, identifier, ip string) {
	t.failures = append(t.failures, identifier+"|"+ip)
}

func (t *stubThrottle) Reset(_ context.Context, identifier string) {
	t.resets = append(t.resets, identifier)
}
