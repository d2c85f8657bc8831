package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the aggregate root for the directory domain.
// ID and timestamps are assigned by storage on creation and are
// immutable afterwards. Email uniqueness is enforced case-insensitively
// by a storage constraint on lower(email).
type User struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	Email       string
	Job         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Address     *Address
}
