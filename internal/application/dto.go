package application

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component, serialized as
// "2006-01-02". Used for dateOfBirth, which the API exchanges without
// a time zone.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// UserDTO is the boundary-facing representation of a User. Binding tags
// carry the field-level rules the HTTP layer enforces before the
// service runs; id and timestamps are read-only to callers.
type UserDTO struct {
	ID          uuid.UUID   `json:"id"`
	FirstName   string      `json:"firstName" binding:"required,min=1,max=50"`
	LastName    string      `json:"lastName" binding:"required,min=1,max=50"`
	DateOfBirth *Date       `json:"dateOfBirth,omitempty" binding:"omitempty,lt"`
	Email       string      `json:"email" binding:"required,email"`
	Address     *AddressDTO `json:"address,omitempty"`
	Job         string      `json:"job,omitempty" binding:"omitempty,max=100"`
	CreatedAt   *time.Time  `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time  `json:"updatedAt,omitempty"`
}

type AddressDTO struct {
	ID         uuid.UUID `json:"id"`
	Street     string    `json:"street" binding:"required"`
	City       string    `json:"city" binding:"required"`
	State      string    `json:"state,omitempty"`
	PostalCode string    `json:"postalCode,omitempty"`
	Country    string    `json:"country" binding:"required"`
	IsPrimary  bool      `json:"isPrimary"`
}

// PagedResult is a transient aggregate, never persisted.
type PagedResult struct {
	Users      []*UserDTO     `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}

type PaginationInfo struct {
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

// NewPaginationInfo derives page metadata from the requested page/size
// and the observed element count. The formulas are evaluated regardless
// of whether the requested page actually holds data: a page far beyond
// the end still reports hasPrevious=true and hasNext=false.
func NewPaginationInfo(page, size int, totalElements int64) PaginationInfo {
	totalPages := int(math.Ceil(float64(totalElements) / float64(size)))
	return PaginationInfo{
		Page:          page,
		Size:          size,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		HasNext:       page < totalPages-1,
		HasPrevious:   page > 0,
	}
}
