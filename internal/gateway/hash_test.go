package gateway

import (
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeIsDeterministic(t *testing.T) {
	auth := NewAuthenticator("xyz", BindReference)

	first := auth.Compute("12345", "")
	second := auth.Compute("12345", "")
	require.Equal(t, first, second)

	sum := sha1.Sum([]byte("12345" + "xyz"))
	require.Equal(t, hex.EncodeToString(sum[:]), first)
}

func TestVerifyRoundTrip(t *testing.T) {
	auth := NewAuthenticator("xyz", BindReference)

	hash := auth.Compute("12345", "")
	got, ok := auth.Verify("12345", "", hash)
	require.True(t, ok)
	require.Equal(t, hash, got)
}

func TestVerifyRejectsMutations(t *testing.T) {
	auth := NewAuthenticator("xyz", BindReference)
	hash := auth.Compute("12345", "")

	// Flip one character of the candidate hash.
	mutated := []byte(hash)
	if mutated[0] == 'a' {
		mutated[0] = 'b'
	} else {
		mutated[0] = 'a'
	}
	_, ok := auth.Verify("12345", "", string(mutated))
	require.False(t, ok)

	// Different reference id.
	_, ok = auth.Verify("12346", "", hash)
	require.False(t, ok)
}

func TestBindReferenceIgnoresTransactionCode(t *testing.T) {
	auth := NewAuthenticator("xyz", BindReference)

	require.Equal(t, auth.Compute("12345", ""), auth.Compute("12345", "code-a"))
}

func TestBindTransactionBindsTransactionCode(t *testing.T) {
	auth := NewAuthenticator("xyz", BindTransaction)

	withCode := auth.Compute("12345", "code-a")
	withOther := auth.Compute("12345", "code-b")
	require.NotEqual(t, withCode, withOther)

	sum := sha1.Sum([]byte("code-a" + "12345" + "xyz"))
	require.Equal(t, hex.EncodeToString(sum[:]), withCode)

	// A hash valid for one transaction code fails for another.
	_, ok := auth.Verify("12345", "code-b", withCode)
	require.False(t, ok)
	_, ok = auth.Verify("12345", "code-a", withCode)
	require.True(t, ok)
}

func TestDifferentSaltsDiffer(t *testing.T) {
	a := NewAuthenticator("salt-a", BindReference)
	b := NewAuthenticator("salt-b", BindReference)

	require.NotEqual(t, a.Compute("12345", ""), b.Compute("12345", ""))
}
