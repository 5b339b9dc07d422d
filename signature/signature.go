// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package signature implements the Draftable viewer-URL signing
// scheme.
//
// A signed viewer URL carries a time-bounded, tamper-evident
// capability: the signature is an HMAC over a "policy" naming the
// account, the comparison identifier, and an expiry time, keyed with
// the account's auth token.  The service recomputes the same HMAC to
// check it, so no round-trip is needed to mint a URL.  Anyone holding
// the auth token can forge signatures, which is just a restatement of
// the fact that the auth token must never leak.
//
// The policy is a JSON array in a fixed field order with no
// whitespace:
//
//	["<accountID>","<identifier>",<validUntil>]
//
// The byte sequence must match the service's own serialization
// exactly, or signatures will not validate.
package signature

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Policy returns the exact byte sequence that gets signed for a
// viewer URL: the account ID, comparison identifier, and expiry time
// in seconds since the Unix epoch, as a compact JSON array.
func Policy(accountID, identifier string, validUntil int64) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// The service does not HTML-escape the policy, so neither can
	// we.
	enc.SetEscapeHTML(false)
	// Encoding strings and an integer cannot fail.
	_ = enc.Encode([]interface{}{accountID, identifier, validUntil})
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}

// Sign computes the viewer-URL signature: the HMAC-SHA256 of the
// policy, keyed with the account's auth token, as lowercase hex.  The
// result is deterministic in all four arguments.
func Sign(authToken, accountID, identifier string, validUntil int64) string {
	mac := hmac.New(sha256.New, []byte(authToken))
	mac.Write(Policy(accountID, identifier, validUntil))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature is the correct signature for the
// given policy inputs.  The comparison takes constant time.
func Verify(authToken, accountID, identifier string, validUntil int64, signature string) bool {
	expected := Sign(authToken, accountID, identifier, validUntil)
	return hmac.Equal([]byte(expected), []byte(signature))
}
