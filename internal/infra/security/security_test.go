package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("mật-khẩu-admin")
	require.NoError(t, err)
	require.NotEqual(t, "mật-khẩu-admin", hash)

	assert.NoError(t, h.Compare(hash, "mật-khẩu-admin"))
	assert.Error(t, h.Compare(hash, "sai-mật-khẩu"))
}

func TestCostIsClamped(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, BcryptHasher{}.cost())
	assert.Equal(t, bcrypt.DefaultCost, BcryptHasher{Cost: -1}.cost())
	assert.Equal(t, bcrypt.MaxCost, BcryptHasher{Cost: 99}.cost())
	assert.Equal(t, bcrypt.MinCost, BcryptHasher{Cost: bcrypt.MinCost}.cost())
}

func TestNewTokenIsCookieSafeAndUnique(t *testing.T) {
	g := RandomTokenGenerator{}

	a, err := g.NewToken()
	require.NoError(t, err)
	b, err := g.NewToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43) // 32 bytes, base64 raw
	assert.False(t, strings.ContainsAny(a, "=+/ ;"))
}
