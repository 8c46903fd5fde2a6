package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"plain", errors.New("boom"), KindInternal},
		{"not found", NotFound("x"), KindNotFound},
		{"wrapped conflict", fmt.Errorf("register: %w", ErrEmailTaken), KindConflict},
		{"validation", ErrInvalidEmail, KindValidation},
		{"unauthorized", ErrInvalidCredentials, KindUnauthorized},
		{"forbidden", Forbidden("admins only"), KindForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestErrorMessageFallsBackToCause(t *testing.T) {
	cause := errors.New("disk full")
	err := &Error{Kind: KindInternal, Err: cause}

	assert.Equal(t, "disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "not_found", (&Error{Kind: KindNotFound}).Error())
}

func TestIs(t *testing.T) {
	assert.True(t, Is(ErrPostNotFound, KindNotFound))
	assert.False(t, Is(nil, KindInternal))
	assert.False(t, Is(ErrPostNotFound, KindConflict))
}

func TestUserUpdateChangesOnlySetFields(t *testing.T) {
	name := "Ada"
	admin := false
	u := UserUpdate{ID: 3, FirstName: &name, IsAdmin: &admin}

	assert.Equal(t, uint(3), u.Target())
	assert.Equal(t, map[string]any{"first_name": "Ada", "is_admin": false}, u.Changes())
	assert.Empty(t, UserUpdate{ID: 3}.Changes())
}

func TestPostUpdateTagsAreNotColumns(t *testing.T) {
	tags := []uint{1, 2}
	u := PostUpdate{ID: 1, Tags: &tags}

	assert.Empty(t, u.Changes())
}
