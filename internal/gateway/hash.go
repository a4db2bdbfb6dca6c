package gateway

import (
	"crypto/sha1"
	"encoding/hex"
)

// Binding selects how much of the callback the authenticity hash covers.
type Binding int

const (
	// BindReference hashes only the reference id. Legacy deployments
	// still emit callback URLs signed this way.
	BindReference Binding = iota

	// BindTransaction additionally binds the per-payment transaction
	// code, so a valid reference id cannot be replayed against another
	// transaction. New deployments use this.
	BindTransaction
)

// Authenticator computes and verifies the salted hash that binds callback
// parameters to a payment. The salt is the secret; the digest only needs
// to be one-way and stable.
type Authenticator struct {
	salt    string
	binding Binding
}

func NewAuthenticator(salt string, binding Binding) *Authenticator {
	return &Authenticator{salt: salt, binding: binding}
}

func (a *Authenticator) Binding() Binding {
	return a.binding
}

// Compute derives the hash for a reference id and, under BindTransaction,
// the transaction code. The code is ignored under BindReference.
func (a *Authenticator) Compute(referenceID, transactionCode string) string {
	if a.binding == BindReference {
		transactionCode = ""
	}
	sum := sha1.Sum([]byte(transactionCode + referenceID + a.salt))
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the expected hash and reports whether the candidate
// matches it exactly.
func (a *Authenticator) Verify(referenceID, transactionCode, candidate string) (string, bool) {
	expected := a.Compute(referenceID, transactionCode)
	if candidate != expected {
		return "", false
	}
	return expected, true
}
