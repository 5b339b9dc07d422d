// Copyright 2017-2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package draftable

import (
	"crypto/rand"
	"math/big"
)

const randomIdentifierAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Sufficiently long that identifier clashes never happen in practice.
const randomIdentifierLength = 12

// GenerateIdentifier returns a fresh random comparison identifier, 12
// ASCII letters.  Use this to name a comparison client-side when you
// need to know the identifier before the create call returns, for
// instance to build a viewer URL in advance.
func GenerateIdentifier() string {
	max := big.NewInt(int64(len(randomIdentifierAlphabet)))
	buf := make([]byte, randomIdentifierLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// Only reachable if the system entropy source is
			// broken.
			panic(err)
		}
		buf[i] = randomIdentifierAlphabet[n.Int64()]
	}
	return string(buf)
}
