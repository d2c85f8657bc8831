package application

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func sampleDTO() *UserDTO {
	dob := NewDate(1990, time.January, 15)
	return &UserDTO{
		ID:          uuid.New(),
		FirstName:   "John",
		LastName:    "Doe",
		DateOfBirth: &dob,
		Email:       "john.doe@example.com",
		Job:         "Software Developer",
		Address: &AddressDTO{
			Street:     "123 Main St",
			City:       "Springfield",
			State:      "IL",
			PostalCode: "62701",
			Country:    "USA",
			IsPrimary:  true,
		},
	}
}

func TestMapperRoundTrip(t *testing.T) {
	m := NewUserMapper()
	dto := sampleDTO()

	u := m.ToEntity(dto)
	if u == nil {
		t.Fatal("ToEntity returned nil for non-nil dto")
	}
	back := m.ToDTO(u)
	if back == nil {
		t.Fatal("ToDTO returned nil for non-nil entity")
	}

	if back.FirstName != dto.FirstName || back.LastName != dto.LastName {
		t.Errorf("names changed: got %s %s", back.FirstName, back.LastName)
	}
	if back.Email != dto.Email {
		t.Errorf("email changed: got %s", back.Email)
	}
	if back.Job != dto.Job {
		t.Errorf("job changed: got %s", back.Job)
	}
	if back.DateOfBirth == nil || !back.DateOfBirth.Equal(dto.DateOfBirth.Time) {
		t.Errorf("dateOfBirth changed: got %v", back.DateOfBirth)
	}
	if back.Address == nil {
		t.Fatal("address dropped in round trip")
	}
	if back.Address.Street != dto.Address.Street ||
		back.Address.City != dto.Address.City ||
		back.Address.Country != dto.Address.Country {
		t.Errorf("address fields changed: %+v", back.Address)
	}
}

func TestMapperSetsAddressBackReference(t *testing.T) {
	m := NewUserMapper()

	u := m.ToEntity(sampleDTO())
	if u.Address == nil {
		t.Fatal("address not mapped")
	}
	if u.Address.User != u {
		t.Error("address back-reference does not point at the produced user")
	}

	// The fixup must run even when everything optional except the
	// address is absent.
	minimal := &UserDTO{
		FirstName: "A",
		LastName:  "B",
		Email:     "a@b.com",
		Address:   &AddressDTO{Street: "s", City: "c", Country: "x"},
	}
	u2 := m.ToEntity(minimal)
	if u2.Address == nil || u2.Address.User != u2 {
		t.Error("back-reference not set for minimal dto with address")
	}
}

func TestMapperNilInputs(t *testing.T) {
	m := NewUserMapper()
	if m.ToEntity(nil) != nil {
		t.Error("ToEntity(nil) should be nil")
	}
	if m.ToDTO(nil) != nil {
		t.Error("ToDTO(nil) should be nil")
	}
}

func TestMapperPartialDTO(t *testing.T) {
	m := NewUserMapper()
	dto := &UserDTO{FirstName: "Jane", LastName: "Roe", Email: "jane@example.com"}

	u := m.ToEntity(dto)
	if u.DateOfBirth != nil {
		t.Error("absent dateOfBirth should stay absent")
	}
	if u.Address != nil {
		t.Error("absent address should stay absent")
	}
	if u.Job != "" {
		t.Error("absent job should stay empty")
	}

	back := m.ToDTO(u)
	if back.DateOfBirth != nil || back.Address != nil {
		t.Error("absent fields must not be defaulted in reverse direction")
	}
	if back.CreatedAt != nil || back.UpdatedAt != nil {
		t.Error("zero timestamps must map to absent timestamps")
	}
}
