package shortid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Run("has the expected shape", func(t *testing.T) {
		id, err := Generate()
		require.NoError(t, err)
		assert.Len(t, id, Length)
		assert.True(t, IsValid(id), "generated id %q should be alphanumeric", id)
	})

	t.Run("consecutive ids differ", func(t *testing.T) {
		seen := make(map[string]struct{}, 1000)
		for i := 0; i < 1000; i++ {
			id, err := Generate()
			require.NoError(t, err)
			_, duplicate := seen[id]
			require.False(t, duplicate, "duplicate id %q after %d generations", id, i)
			seen[id] = struct{}{}
		}
	})
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "lowercase", id: "abcdef", want: true},
		{name: "mixed", id: "b2xVn2", want: true},
		{name: "too short", id: "abc", want: false},
		{name: "too long", id: "abcdefg", want: false},
		{name: "symbol", id: "abc-ef", want: false},
		{name: "empty", id: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.id))
		})
	}
}
