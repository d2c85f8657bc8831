package application

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stibodx/user-directory/internal/domain/apperr"
	"github.com/stibodx/user-directory/internal/infrastructure/inmemory"
)

func newTestService() (*Service, *inmemory.UserRepository) {
	repo := inmemory.NewUserRepository()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc := NewService(repo, NewUserMapper(), nil, 0, logger, nil, "", nil)
	return svc, repo
}

func mustCreate(t *testing.T, svc *Service, dto *UserDTO) *UserDTO {
	t.Helper()
	out, err := svc.CreateUser(context.Background(), dto)
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", dto.Email, err)
	}
	return out
}

func TestCreateUser(t *testing.T) {
	svc, _ := newTestService()

	out := mustCreate(t, svc, sampleDTO())
	if out.ID == uuid.Nil {
		t.Error("created user has no id")
	}
	if out.CreatedAt == nil || out.UpdatedAt == nil {
		t.Error("created user has no timestamps")
	}
	if out.Email != "john.doe@example.com" {
		t.Errorf("email stored as %q, want raw input", out.Email)
	}
	if out.Address == nil || out.Address.ID == uuid.Nil {
		t.Error("address not persisted with an id")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	mustCreate(t, svc, sampleDTO())

	_, err := svc.CreateUser(context.Background(), sampleDTO())
	if !apperr.IsKind(err, apperr.KindAlreadyExists) {
		t.Fatalf("want KindAlreadyExists, got %v", err)
	}
	want := "User with email john.doe@example.com already exists"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestCreateUserDuplicateCaseVariant(t *testing.T) {
	svc, _ := newTestService()
	mustCreate(t, svc, sampleDTO())

	// The raw-comparison precheck does not see "John.Doe@Example.com"
	// as a duplicate of the stored lower-case address; the storage
	// uniqueness constraint on lower(email) catches it instead.
	dup := sampleDTO()
	dup.Email = "John.Doe@Example.com"
	_, err := svc.CreateUser(context.Background(), dup)
	if !apperr.IsKind(err, apperr.KindAlreadyExists) {
		t.Fatalf("want KindAlreadyExists from storage constraint, got %v", err)
	}
	want := "User with email John.Doe@Example.com already exists"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestFindByID(t *testing.T) {
	svc, _ := newTestService()
	created := mustCreate(t, svc, sampleDTO())

	got, err := svc.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.ID != created.ID || got.Email != created.Email {
		t.Errorf("got %+v, want created user", got)
	}
}

func TestFindByIDNotFound(t *testing.T) {
	svc, _ := newTestService()

	id := uuid.New()
	_, err := svc.FindByID(context.Background(), id)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("want KindNotFound, got %v", err)
	}
	want := fmt.Sprintf("User not found with id: %s", id)
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestFindByEmailValidation(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct {
		name  string
		email string
		want  string
	}{
		{"empty", "", "Email cannot be null or empty"},
		{"whitespace only", "   ", "Email cannot be null or empty"},
		{"no at sign", "not-an-email", "Invalid email format"},
		{"leading at", "@example.com", "Invalid email format"},
		{"trailing at", "user@", "Invalid email format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.FindByEmail(context.Background(), tc.email)
			if !apperr.IsKind(err, apperr.KindInvalidEmail) {
				t.Fatalf("want KindInvalidEmail, got %v", err)
			}
			if err.Error() != tc.want {
				t.Errorf("message = %q, want %q", err.Error(), tc.want)
			}
		})
	}
}

func TestFindByEmailNormalizesLookup(t *testing.T) {
	svc, _ := newTestService()
	dto := sampleDTO()
	dto.Email = "john@ex.com"
	mustCreate(t, svc, dto)

	got, err := svc.FindByEmail(context.Background(), "  John@Ex.com  ")
	if err != nil {
		t.Fatalf("FindByEmail with case/space variant: %v", err)
	}
	if got.Email != "john@ex.com" {
		t.Errorf("got email %q, want stored value", got.Email)
	}
}

func TestFindByEmailNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.FindByEmail(context.Background(), "Ghost@Example.com")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("want KindNotFound, got %v", err)
	}
	// The message carries the caller's original input, not the
	// normalized lookup value.
	want := "User not found with email: Ghost@Example.com"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func seedUsers(t *testing.T, svc *Service, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		dto := &UserDTO{
			FirstName: fmt.Sprintf("User%02d", i),
			LastName:  "Test",
			Email:     fmt.Sprintf("user%02d@example.com", i),
		}
		mustCreate(t, svc, dto)
	}
}

func TestFindAllPaginated(t *testing.T) {
	svc, _ := newTestService()
	seedUsers(t, svc, 25)

	first, err := svc.FindAllPaginated(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("page 0: %v", err)
	}
	if len(first.Users) != 10 {
		t.Errorf("page 0 holds %d users, want 10", len(first.Users))
	}
	p := first.Pagination
	if p.TotalElements != 25 || p.TotalPages != 3 {
		t.Errorf("pagination = %+v, want 25 elements over 3 pages", p)
	}
	if !p.HasNext || p.HasPrevious {
		t.Errorf("page 0 flags = next %v prev %v", p.HasNext, p.HasPrevious)
	}

	last, err := svc.FindAllPaginated(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(last.Users) != 5 {
		t.Errorf("page 2 holds %d users, want 5", len(last.Users))
	}
	if last.Pagination.HasNext || !last.Pagination.HasPrevious {
		t.Errorf("page 2 flags = next %v prev %v", last.Pagination.HasNext, last.Pagination.HasPrevious)
	}
}

func TestFindAllPaginatedBeyondData(t *testing.T) {
	svc, _ := newTestService()
	seedUsers(t, svc, 5)

	res, err := svc.FindAllPaginated(context.Background(), 100, 10)
	if err != nil {
		t.Fatalf("page far beyond data: %v", err)
	}
	if len(res.Users) != 0 {
		t.Errorf("got %d users, want empty page", len(res.Users))
	}
	if res.Pagination.HasNext || !res.Pagination.HasPrevious {
		t.Errorf("flags = next %v prev %v, want next=false prev=true",
			res.Pagination.HasNext, res.Pagination.HasPrevious)
	}
}

func TestFindAllPaginatedValidation(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct {
		name       string
		page, size int
		want       string
	}{
		{"negative page", -1, 10, "Page number cannot be negative"},
		{"zero size", 0, 0, "Page size must be positive"},
		{"negative size", 0, -5, "Page size must be positive"},
		{"size over limit", 0, 101, "Page size cannot exceed 100"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.FindAllPaginated(context.Background(), tc.page, tc.size)
			if !apperr.IsKind(err, apperr.KindInvalidArgument) {
				t.Fatalf("want KindInvalidArgument, got %v", err)
			}
			if err.Error() != tc.want {
				t.Errorf("message = %q, want %q", err.Error(), tc.want)
			}
		})
	}

	// Size 100 is the inclusive upper bound.
	if _, err := svc.FindAllPaginated(context.Background(), 0, 100); err != nil {
		t.Errorf("size 100 should be accepted, got %v", err)
	}
}

func TestFindAll(t *testing.T) {
	svc, _ := newTestService()
	seedUsers(t, svc, 7)

	all, err := svc.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 7 {
		t.Errorf("got %d users, want 7", len(all))
	}
}

func TestSearchUsersWithoutElasticsearch(t *testing.T) {
	svc, _ := newTestService()

	hits, err := svc.SearchUsers(context.Background(), "john", 10)
	if err != nil {
		t.Fatalf("SearchUsers: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("got %d hits without a search backend, want 0", len(hits))
	}
}
