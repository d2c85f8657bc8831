package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{NotFound("User not found with id: %s", "abc"), KindNotFound},
		{InvalidEmail("Invalid email format"), KindInvalidEmail},
		{AlreadyExists("User with email %s already exists", "a@b.com"), KindAlreadyExists},
		{InvalidArgument("Page number cannot be negative"), KindInvalidArgument},
		{errors.New("plain"), KindUnknown},
		{nil, KindUnknown},
	}
	for _, c := range cases {
		if got := KindOf(c.err); got != c.want {
			t.Errorf("KindOf(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	inner := NotFound("User not found with id: %s", "abc")
	wrapped := fmt.Errorf("lookup failed: %w", inner)
	if !IsKind(wrapped, KindNotFound) {
		t.Errorf("wrapped error lost its kind")
	}
}

func TestErrorMessage(t *testing.T) {
	err := AlreadyExists("User with email %s already exists", "john@ex.com")
	want := "User with email john@ex.com already exists"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}
