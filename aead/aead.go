// Copyright (C) 2024 ASCON-Go Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package aead implements ASCON-80pq-SIV, the synthetic-IV authenticated
// encryption construction: an authenticate-then-encrypt design in which
// the computed tag doubles as the nonce for the encryption phase, giving
// nonce-misuse resistance at the cost of requiring both passes over the
// plaintext to complete before any ciphertext is released.
package aead

import (
	"crypto/subtle"
	"errors"

	"github.com/ascon-lwc/ascon-go/internal/zero"
	"github.com/ascon-lwc/ascon-go/permute"
	"github.com/ascon-lwc/ascon-go/sponge"

	"github.com/google/uuid"
)

const (
	KeySize   = 20
	NonceSize = 16
	TagSize   = 16
)

const (
	iv1 = uint32(0xa1400c06) // authentication phase
	iv2 = uint32(0xa2400c06) // encryption phase
)

// ErrOpen is returned by Open when the authentication tag does not
// verify. The bytes Open wrote recovered plaintext into are zeroed before
// ErrOpen is returned, so a verification failure never leaks recovered
// plaintext; any existing contents of dest are left as they were.
var ErrOpen = errors.New("ascon: aead: authentication failed")

// initState builds the ASCON-80pq state IV||K||N, permutes it in full,
// then XORs the key into the rightmost KeySize bytes of the resulting
// 320-bit state — the standard ASCON key-absorption step.
func initState(nonce *[NonceSize]byte, key *[KeySize]byte, iv uint32) permute.State {
	var reg [permute.Size]byte
	reg[0] = byte(iv >> 24)
	reg[1] = byte(iv >> 16)
	reg[2] = byte(iv >> 8)
	reg[3] = byte(iv)
	copy(reg[4:24], key[:])
	copy(reg[24:40], nonce[:])

	s := permute.FromRegular(&reg)
	permute.Permute(&s, 0)
	sponge.XorAt(&s, key[:], permute.Size-KeySize)
	return s
}

// encryptOFB runs the permutation in output-feedback mode over src,
// XORing the derived keystream into dest. Used for both directions since
// OFB encryption and decryption are the same operation.
func encryptOFB(s *permute.State, dest, src []byte) {
	const firstRound = 6
	var block [8]byte
	for len(src) >= 8 {
		permute.Permute(s, firstRound)
		sponge.Squeeze8(s, block[:], 0)
		for i := 0; i < 8; i++ {
			dest[i] = block[i] ^ src[i]
		}
		dest, src = dest[8:], src[8:]
	}
	if len(src) > 0 {
		permute.Permute(s, firstRound)
		sponge.Squeeze8(s, block[:len(src)], 0)
		for i := range src {
			dest[i] = block[i] ^ src[i]
		}
	}
}

// computeTag runs the common authentication tail shared by Seal and
// Open: absorb the associated data, a domain separator, the plaintext,
// then fold in the key a second time and squeeze the 16-byte tag.
func computeTag(ad, plaintext []byte, key *[KeySize]byte, nonce *[NonceSize]byte) [TagSize]byte {
	const firstRound = 6
	s := initState(nonce, key, iv1)
	defer s.Zero()

	if len(ad) > 0 {
		sponge.AbsorbRate8(&s, ad, firstRound, true)
	}
	sponge.Separator(&s)
	sponge.AbsorbRate8(&s, plaintext, firstRound, false)

	sponge.XorAt(&s, key[:], 8)
	permute.Permute(&s, 0)
	sponge.XorAt(&s, key[4:], 24)

	var tag [TagSize]byte
	sponge.ReadAt(&s, tag[:], 24)
	return tag
}

// Seal encrypts and authenticates plaintext under key and nonce, binding
// ad as associated data, and returns ciphertext||tag. dest may overlap
// plaintext like append(dest[:0], plaintext...) does; it must not alias
// ad.
func Seal(dest, plaintext, ad []byte, nonce *[NonceSize]byte, key *[KeySize]byte) []byte {
	tag := computeTag(ad, plaintext, key, nonce)

	ret, out := sliceForAppend(dest, len(plaintext)+TagSize)
	s := initState(&tag, key, iv2)
	defer s.Zero()
	encryptOFB(&s, out[:len(plaintext)], plaintext)
	copy(out[len(plaintext):], tag[:])
	return ret
}

// Open verifies and decrypts ciphertext (which must end with its
// TagSize-byte tag) under key and nonce, checking it against ad. On
// success it returns the plaintext appended to dest. On failure it
// returns ErrOpen and zeroes any plaintext bytes it had recovered before
// detecting the mismatch.
func Open(dest, ciphertext, ad []byte, nonce *[NonceSize]byte, key *[KeySize]byte) ([]byte, error) {
	if len(ciphertext) < TagSize {
		return nil, ErrOpen
	}
	mlen := len(ciphertext) - TagSize
	c, receivedTag := ciphertext[:mlen], ciphertext[mlen:]

	var tagNonce [NonceSize]byte
	copy(tagNonce[:], receivedTag)

	ret, out := sliceForAppend(dest, mlen)
	s := initState(&tagNonce, key, iv2)
	defer s.Zero()
	encryptOFB(&s, out, c)

	computed := computeTag(ad, out, key, nonce)
	if subtle.ConstantTimeCompare(computed[:], receivedTag) != 1 {
		zero.Bytes(out)
		return nil, ErrOpen
	}
	return ret, nil
}

// RandomNonce returns a fresh NonceSize-byte nonce. Because Seal derives
// its actual encryption IV from the authentication tag (the "synthetic
// IV" property), this nonce only needs to be unique per (key,
// associated-data, plaintext) triple for domain separation across
// unrelated messages, not secret or unpredictable; a UUIDv4 supplies
// that cheaply.
func RandomNonce() [NonceSize]byte {
	var n [NonceSize]byte
	u := uuid.New()
	copy(n[:], u[:])
	return n
}

func sliceForAppend(in []byte, n int) (head, tail []byte) {
	if total := len(in) + n; cap(in) >= total {
		head = in[:total]
	} else {
		head = make([]byte, total)
		copy(head, in)
	}
	tail = head[len(in):]
	return
}
