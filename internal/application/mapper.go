package application

import (
	"github.com/stibodx/user-directory/internal/domain/entity"
)

// UserMapper converts between transfer objects and entities. It is
// stateless; both directions are pure field-for-field copies except for
// the address back-reference, which ToEntity recomputes so that the
// produced address always points at the produced user.
type UserMapper struct{}

func NewUserMapper() *UserMapper { return &UserMapper{} }

func (m *UserMapper) ToEntity(dto *UserDTO) *entity.User {
	if dto == nil {
		return nil
	}
	u := &entity.User{
		ID:        dto.ID,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Job:       dto.Job,
	}
	if dto.DateOfBirth != nil {
		t := dto.DateOfBirth.Time
		u.DateOfBirth = &t
	}
	if dto.CreatedAt != nil {
		u.CreatedAt = *dto.CreatedAt
	}
	if dto.UpdatedAt != nil {
		u.UpdatedAt = *dto.UpdatedAt
	}
	u.Address = m.addressToEntity(dto.Address)
	if u.Address != nil {
		// Owning back-reference: always the user produced here, never a
		// stale owner carried in from elsewhere.
		u.Address.User = u
	}
	return u
}

func (m *UserMapper) ToDTO(u *entity.User) *UserDTO {
	if u == nil {
		return nil
	}
	dto := &UserDTO{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Job:       u.Job,
		Address:   m.addressToDTO(u.Address),
	}
	if u.DateOfBirth != nil {
		d := Date{Time: *u.DateOfBirth}
		dto.DateOfBirth = &d
	}
	if !u.CreatedAt.IsZero() {
		t := u.CreatedAt
		dto.CreatedAt = &t
	}
	if !u.UpdatedAt.IsZero() {
		t := u.UpdatedAt
		dto.UpdatedAt = &t
	}
	return dto
}

func (m *UserMapper) addressToEntity(dto *AddressDTO) *entity.Address {
	if dto == nil {
		return nil
	}
	return &entity.Address{
		ID:         dto.ID,
		Street:     dto.Street,
		City:       dto.City,
		State:      dto.State,
		PostalCode: dto.PostalCode,
		Country:    dto.Country,
		IsPrimary:  dto.IsPrimary,
	}
}

// addressToDTO never serializes the back-reference outward.
func (m *UserMapper) addressToDTO(a *entity.Address) *AddressDTO {
	if a == nil {
		return nil
	}
	return &AddressDTO{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsPrimary:  a.IsPrimary,
	}
}
