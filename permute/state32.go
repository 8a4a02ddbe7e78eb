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

package permute

import "math/bits"

// Word32 is one 64-bit state word split into its even- and odd-indexed
// bits, each packed into a 32-bit half. This is the layout 32-bit
// architectures (and the masked backend in package masked) use so that
// every operation can be expressed with native 32-bit instructions.
type Word32 struct {
	E, O uint32
}

// State32 is the 320-bit ASCON state in bit-interleaved 32-bit form.
type State32 [5]Word32

// toBitInterleaving separates the even- and odd-indexed bits of x into
// the low and high 32 bits of the returned word, respectively. This is
// the standard SWAR bit-interleaving transform used by 32-bit-optimized
// ASCON implementations.
func toBitInterleaving(x uint64) uint64 {
	t := (x ^ (x >> 1)) & 0x2222222222222222
	x ^= t ^ (t << 1)
	t = (x ^ (x >> 2)) & 0x0C0C0C0C0C0C0C0C
	x ^= t ^ (t << 2)
	t = (x ^ (x >> 4)) & 0x00F000F000F000F0
	x ^= t ^ (t << 4)
	t = (x ^ (x >> 8)) & 0x0000FF000000FF00
	x ^= t ^ (t << 8)
	t = (x ^ (x >> 16)) & 0x00000000FFFF0000
	x ^= t ^ (t << 16)
	return x
}

// fromBitInterleaving is the inverse of toBitInterleaving.
func fromBitInterleaving(x uint64) uint64 {
	t := (x ^ (x >> 16)) & 0x00000000FFFF0000
	x ^= t ^ (t << 16)
	t = (x ^ (x >> 8)) & 0x0000FF000000FF00
	x ^= t ^ (t << 8)
	t = (x ^ (x >> 4)) & 0x00F000F000F000F0
	x ^= t ^ (t << 4)
	t = (x ^ (x >> 2)) & 0x0C0C0C0C0C0C0C0C
	x ^= t ^ (t << 2)
	t = (x ^ (x >> 1)) & 0x2222222222222222
	x ^= t ^ (t << 1)
	return x
}

// FromRegular32 loads a 40-byte big-endian buffer into the bit-interleaved
// 32-bit form.
func FromRegular32(b *[Size]byte) State32 {
	s64 := FromRegular(b)
	var s State32
	for i := range s {
		w := toBitInterleaving(s64[i])
		s[i] = Word32{E: uint32(w), O: uint32(w >> 32)}
	}
	return s
}

// ToRegular serializes s back to the 40-byte big-endian regular form.
func (s *State32) ToRegular() [Size]byte {
	var s64 State
	for i := range s {
		w := uint64(s[i].E) | uint64(s[i].O)<<32
		s64[i] = fromBitInterleaving(w)
	}
	return s64.ToRegular()
}

// Zero overwrites s with an all-zero state.
func (s *State32) Zero() {
	for i := range s {
		s[i] = Word32{}
	}
}

// RoundConstantPairs32 holds, for each round, the bit-interleaved even and
// odd nibble contributed by the canonical 8-bit round constant's low byte.
// Grounded on original_source/utility/ascon-x4-c32.c, which hardcodes the
// same (even, odd) nibble pairs (there applied pre-inverted as an
// optimization this backend does not use — see round.go's design note).
// Exported for reuse by package masked, whose round function injects the
// same constants into a single share rather than into a combined word.
var RoundConstantPairs32 = [12]struct{ E, O uint32 }{
	{12, 12}, {9, 12}, {12, 9}, {9, 9},
	{6, 12}, {3, 12}, {6, 9}, {3, 9},
	{12, 6}, {9, 6}, {12, 3}, {9, 3},
}

func rr32(x uint32, n uint) uint32 { return bits.RotateLeft32(x, -int(n)) }

// Permute32 is the bit-interleaved 32-bit equivalent of Permute: it applies
// rounds firstRound..11 of the ASCON permutation and produces the exact
// same logical 320-bit result, merely encoded differently.
func Permute32(s *State32, firstRound int) {
	x0, x1, x2, x3, x4 := s[0], s[1], s[2], s[3], s[4]
	for r := firstRound; r < 12; r++ {
		rc := RoundConstantPairs32[r]
		x2.E ^= rc.E
		x2.O ^= rc.O

		for _, half := range [2]bool{true, false} { // even pass, then odd
			var a, b, c, d, e *uint32
			if half {
				a, b, c, d, e = &x0.E, &x1.E, &x2.E, &x3.E, &x4.E
			} else {
				a, b, c, d, e = &x0.O, &x1.O, &x2.O, &x3.O, &x4.O
			}
			*a ^= *e
			*e ^= *d
			*c ^= *b
			t0 := ^(*a) & *b
			t1 := ^(*b) & *c
			t2 := ^(*c) & *d
			t3 := ^(*d) & *e
			t4 := ^(*e) & *a
			*a ^= t1
			*b ^= t2
			*c ^= t3
			*d ^= t4
			*e ^= t0
			*b ^= *a
			*a ^= *e
			*d ^= *c
			*c = ^(*c)
		}

		// linear diffusion layer, decomposed across the even/odd halves.
		// Grounded on the `linear()` macro of
		// original_source/utility/ascon-x4-c32.c.
		t0 := x0.E ^ rr32(x0.O, 4)
		t1 := x0.O ^ rr32(x0.E, 5)
		t2 := x1.E ^ rr32(x1.E, 11)
		t3 := x1.O ^ rr32(x1.O, 11)
		t4 := x2.E ^ rr32(x2.O, 2)
		t5 := x2.O ^ rr32(x2.E, 3)
		t6 := x3.E ^ rr32(x3.O, 3)
		t7 := x3.O ^ rr32(x3.E, 4)
		t8 := x4.E ^ rr32(x4.E, 17)
		t9 := x4.O ^ rr32(x4.O, 17)
		x0.E ^= rr32(t1, 9)
		x0.O ^= rr32(t0, 10)
		x1.E ^= rr32(t3, 19)
		x1.O ^= rr32(t2, 20)
		x2.E ^= t5
		x2.O ^= rr32(t4, 1)
		x3.E ^= rr32(t6, 5)
		x3.O ^= rr32(t7, 5)
		x4.E ^= rr32(t9, 3)
		x4.O ^= rr32(t8, 4)
	}
	s[0], s[1], s[2], s[3], s[4] = x0, x1, x2, x3, x4
}
