package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2HashService_HashAndVerify(t *testing.T) {
	svc := NewArgon2HashService()

	hash, err := svc.Hash("123456")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := svc.Verify("123456", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Verify("654321", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2HashService_UniqueSalts(t *testing.T) {
	svc := NewArgon2HashService()

	h1, err := svc.Hash("same-pin")
	require.NoError(t, err)
	h2, err := svc.Hash("same-pin")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "each hash must use a fresh salt")
}

func TestArgon2HashService_MalformedHash(t *testing.T) {
	svc := NewArgon2HashService()

	cases := []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=1,p=4$onlyfiveparts",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
	}

	for _, c := range cases {
		_, err := svc.Verify("pin", c)
		assert.Error(t, err, "hash %q should not parse", c)
	}
}
