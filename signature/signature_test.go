// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package signature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diffeo/go-draftable/signature"
)

const (
	authToken  = "super-secret-token"
	accountID  = "Zge2air"
	identifier = "JQtaguVd"
	validUntil = 1514764800

	// Computed independently:
	//   printf '%s' '["Zge2air","JQtaguVd",1514764800]' |
	//       openssl dgst -sha256 -hmac super-secret-token
	knownSignature = "c700aa498bfd0f9af31382be797c832d5d2ca7091f49409e9b5d777b592f241e"
)

func TestPolicy(t *testing.T) {
	policy := signature.Policy(accountID, identifier, validUntil)
	assert.Equal(t, `["Zge2air","JQtaguVd",1514764800]`, string(policy))
}

func TestPolicyDoesNotEscapeHTML(t *testing.T) {
	policy := signature.Policy("a<b", "c&d", 1)
	assert.Equal(t, `["a<b","c&d",1]`, string(policy))
}

func TestSign(t *testing.T) {
	assert.Equal(t, knownSignature,
		signature.Sign(authToken, accountID, identifier, validUntil))
}

func TestSignIsDeterministic(t *testing.T) {
	first := signature.Sign(authToken, accountID, identifier, validUntil)
	second := signature.Sign(authToken, accountID, identifier, validUntil)
	assert.Equal(t, first, second)
}

func TestSignDependsOnEveryInput(t *testing.T) {
	base := signature.Sign(authToken, accountID, identifier, validUntil)
	assert.NotEqual(t, base,
		signature.Sign("other-token", accountID, identifier, validUntil))
	assert.NotEqual(t, base,
		signature.Sign(authToken, "other-account", identifier, validUntil))
	assert.NotEqual(t, base,
		signature.Sign(authToken, accountID, "other-comparison", validUntil))
	assert.NotEqual(t, base,
		signature.Sign(authToken, accountID, identifier, validUntil+1))
}

func TestVerify(t *testing.T) {
	assert.True(t, signature.Verify(authToken, accountID, identifier, validUntil, knownSignature))
	assert.False(t, signature.Verify(authToken, accountID, identifier, validUntil, "tampered"))
	assert.False(t, signature.Verify(authToken, accountID, identifier, validUntil+1, knownSignature))
	assert.False(t, signature.Verify("other-token", accountID, identifier, validUntil, knownSignature))
}
