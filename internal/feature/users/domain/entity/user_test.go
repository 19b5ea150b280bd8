package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_ViewNeverCarriesPassword(t *testing.T) {
	t.Parallel()

	u := User{ID: 7, Username: "bob", FirstName: "Bob", LastName: "Lee", Email: "bob@x.com", PasswordHash: "$2a$10$secret", Role: "user"}

	b, err := json.Marshal(u.View())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "bob", got["username"])
	assert.Equal(t, "Bob", got["firstName"])
	assert.NotContains(t, got, "password")
	assert.NotContains(t, got, "passwordHash")
	assert.NotContains(t, string(b), "secret")
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		total    int64
		perPage  int
		wantLast int
	}{
		{"empty", 0, 10, 1},
		{"exact", 20, 10, 2},
		{"remainder", 21, 10, 3},
		{"single", 3, 10, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewPage(nil, 1, tt.perPage, tt.total)

			assert.Equal(t, tt.wantLast, p.LastPage)
			assert.NotNil(t, p.Data)
		})
	}
}

func TestChanges_IsEmpty(t *testing.T) {
	t.Parallel()

	name := "bob"
	assert.True(t, Changes{}.IsEmpty())
	assert.False(t, Changes{Username: &name}.IsEmpty())
}
