package password

import (
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fastParams = &argon2id.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHashVerify(t *testing.T) {
	h := NewHasher(fastParams)

	hash, err := h.Hash("supersecret")
	require.NoError(t, err)
	require.NotContains(t, hash, "supersecret")

	require.True(t, h.Verify("supersecret", hash))
	require.False(t, h.Verify("supersecreT", hash))
}

func TestHashIsSalted(t *testing.T) {
	h := NewHasher(fastParams)
	a, _ := h.Hash("p")
	b, _ := h.Hash("p")
	require.NotEqual(t, a, b)
}

func TestVerifyLegacyBcrypt(t *testing.T) {
	h := NewHasher(nil)
	legacy, err := bcrypt.GenerateFromPassword([]byte("p"), bcrypt.MinCost)
	require.NoError(t, err)

	require.True(t, h.Verify("p", string(legacy)))
	require.False(t, h.Verify("q", string(legacy)))
}

func TestVerifyMalformed(t *testing.T) {
	h := NewHasher(fastParams)
	require.False(t, h.Verify("p", ""))
	require.False(t, h.Verify("p", "plain-text"))
	require.False(t, h.Verify("p", "$argon2id$garbage"))
	require.False(t, h.Verify("p", "$2a$10$short"))
}
