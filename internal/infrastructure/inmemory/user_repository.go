package inmemory

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stibodx/user-directory/internal/domain/entity"
	"github.com/stibodx/user-directory/internal/domain/repository"
)

// UserRepository is an in-memory implementation used in tests and local
// tooling. It mirrors the Postgres behavior that matters to callers:
// ids and timestamps assigned on create, exact-match email lookup, and
// a uniqueness constraint on the lower-cased trimmed email.
type UserRepository struct {
	mu    sync.RWMutex
	users []*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	norm := normalizeEmail(u.Email)
	for _, existing := range r.users {
		if normalizeEmail(existing.Email) == norm {
			return repository.ErrDuplicateEmail
		}
	}

	now := time.Now().UTC()
	u.ID = uuid.New()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Address != nil {
		u.Address.ID = uuid.New()
		u.Address.User = u
	}
	r.users = append(r.users, u)
	return nil
}

func (r *UserRepository) GetByID(id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

func (r *UserRepository) FindPage(offset, limit int) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if offset >= len(r.users) {
		return []*entity.User{}, nil
	}
	end := offset + limit
	if end > len(r.users) {
		end = len(r.users)
	}
	page := make([]*entity.User, end-offset)
	copy(page, r.users[offset:end])
	return page, nil
}

func (r *UserRepository) GetAll() ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.User, len(r.users))
	copy(all, r.users)
	return all, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
