package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("login failed"), "check aspace.password")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "check aspace.password", hints[0])
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "errors_test.go")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, WrapTransport(nil, "context"))
	assert.False(t, IsTransportError(nil))
	assert.False(t, IsSkip(nil))
}

func TestTransportMarking(t *testing.T) {
	t.Run("wrapped transport error keeps message and mark", func(t *testing.T) {
		err := WrapTransport(New("connection refused"), "query capture index")

		assert.True(t, IsTransportError(err))
		assert.Contains(t, err.Error(), "query capture index")
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("mark survives further wrapping", func(t *testing.T) {
		err := Wrap(WrapTransport(New("status 500"), "PUT /repositories/2"), "save record")
		assert.True(t, IsTransportError(err))
		assert.False(t, IsConflictError(err))
	})
}

func TestIsSkip(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"seed not found", Wrap(ErrSeedNotFound, "http://a.com"), true},
		{"no captures", Wrapf(ErrNoCaptures, "collection %d", 5), true},
		{"transport", WrapTransport(New("boom"), "GET /cdx"), false},
		{"conflict", Wrap(ErrConflict, "save"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSkip(tt.err))
		})
	}
}

func TestConflictAndNotFound(t *testing.T) {
	conflict := Mark(Newf("status 409: %s", "lock_version mismatch"), ErrConflict)
	assert.True(t, IsConflictError(conflict))
	assert.False(t, IsNotFoundError(conflict))

	notFound := Wrap(ErrNotFound, "/repositories/2/archival_objects/9")
	assert.True(t, IsNotFoundError(notFound))
}

func ExampleWrap() {
	baseErr := New("connection failed")
	err := Wrap(baseErr, "failed to list seeds")
	fmt.Println(err)
	// Output: failed to list seeds: connection failed
}
