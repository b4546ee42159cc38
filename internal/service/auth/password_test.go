package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cost int
		want int
	}{
		{cost: 12, want: 12},
		{cost: bcrypt.MinCost, want: bcrypt.MinCost},
		{cost: 0, want: DefaultBcryptCost},
		{cost: 3, want: DefaultBcryptCost},
		{cost: 32, want: DefaultBcryptCost},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewBcryptHasher(tt.cost).Cost())
	}
}

func TestBcryptHasher(t *testing.T) {
	t.Parallel()
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("correct horse battery")
	require.NoError(t, err)
	second, err := h.Hash("correct horse battery")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "fresh salt per call")
	assert.NotContains(t, first, "correct horse battery")
	assert.True(t, h.Verify("correct horse battery", first))
	assert.True(t, h.Verify("correct horse battery", second))
	assert.False(t, h.Verify("correct horse batterY", first))
	assert.False(t, h.Verify("", first))
}

func TestBcryptHasherMalformedHash(t *testing.T) {
	t.Parallel()
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, hash := range []string{"", "plaintext", "$2a$10$short", strings.Repeat("x", 60)} {
		assert.NotPanics(t, func() {
			assert.False(t, h.Verify("password", hash))
		})
	}
}

func TestBcryptHasherDefaultCostIsUsed(t *testing.T) {
	t.Parallel()
	h := NewBcryptHasher(0)

	hash, err := h.Hash("password123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultBcryptCost, cost)
}

func TestBcryptHasherByteLimit(t *testing.T) {
	t.Parallel()
	h := NewBcryptHasher(bcrypt.MinCost)

	atLimit := strings.Repeat("a", MaxPasswordBytes)
	hash, err := h.Hash(atLimit)
	require.NoError(t, err)
	assert.True(t, h.Verify(atLimit, hash))

	// 40 runes, 80 bytes.
	_, err = h.Hash(strings.Repeat("é", 40))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.True(t, errors.Is(err, bcrypt.ErrPasswordTooLong))
}
