package repository

import (
	"errors"

	"github.com/google/uuid"

	"github.com/stibodx/user-directory/internal/domain/entity"
)

// Sentinel errors returned by implementations so callers can react
// without depending on a concrete storage technology.
var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("duplicate email")
)

// UserRepository defines the interface for user-related storage operations.
// GetByEmail is an exact match against the stored value; any
// normalization happens in the caller. Create persists the user and its
// address (if present) as one unit and assigns id and timestamps.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id uuid.UUID) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Count() (int64, error)
	FindPage(offset, limit int) ([]*entity.User, error)
	GetAll() ([]*entity.User, error)
}
