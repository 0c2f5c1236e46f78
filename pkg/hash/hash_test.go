package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_DigestDiffersFromPlaintext(t *testing.T) {
	t.Parallel()

	digest, err := Hash("secret-password")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "secret-password", digest)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	digest, err := Hash("secret-password")
	require.NoError(t, err)

	assert.True(t, Check(digest, "secret-password"))
	assert.False(t, Check(digest, "wrong-password"))
	assert.False(t, Check("not-a-bcrypt-digest", "secret-password"))
}

func TestRandomToken(t *testing.T) {
	t.Parallel()

	tok, err := RandomToken(36)
	require.NoError(t, err)
	assert.Len(t, tok, 72)

	other, err := RandomToken(36)
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}

func TestRandomToken_HashRoundTrip(t *testing.T) {
	t.Parallel()

	tok, err := RandomToken(36)
	require.NoError(t, err)

	digest, err := Hash(tok)
	require.NoError(t, err)
	assert.True(t, Check(digest, tok))
}
