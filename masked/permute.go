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

package masked

import (
	"math/bits"

	"github.com/ascon-lwc/ascon-go/permute"
)

func rr32(x uint32, n uint) uint32 { return bits.RotateLeft32(x, -int(n)) }

// freshnessTerm realigns each of the three persistent pool shares into
// domain 3; combinedFreshness XORs these into the fourth share of this
// round's freshness word. That fourth share cancels the other three under
// Combine, so the freshness word is a 4-share masking of zero for any
// d0, d1 and d2: folding it into x4 (via t0 in substHalf) leaves x4's
// logical value unchanged.
func freshnessTerm(d0, d1, d2 uint32) Shares {
	return Shares{
		align(d0, 0, 3),
		align(d1, 1, 3),
		align(d2, 2, 3),
	}
}

// combinedFreshness folds the three raw pool shares (in their native
// domains 0, 1 and 2) together with the derived domain-3 share into one
// Shares value representable as a normal masked operand.
func combinedFreshness(d0, d1, d2 uint32) Shares {
	f := freshnessTerm(d0, d1, d2)
	return Shares{d0, d1, d2, f[0] ^ f[1] ^ f[2]}
}

// substHalf runs one parity half (even or odd) of the Chi5 substitution
// layer on the five masked words, folding in freshness randomness drawn
// from pool, and returns that half's randomness after its post-round
// rotation so the caller can write it back into pool.
func substHalf(x0, x1, x2, x3, x4 *Shares, d0, d1, d2 uint32) (nd0, nd1, nd2 uint32) {
	t0 := combinedFreshness(d0, d1, d2)

	for i := 0; i < 4; i++ {
		x0[i] ^= x4[i]
		x4[i] ^= x3[i]
		x2[i] ^= x1[i]
	}
	t1 := *x0 // original x0, needed by the x3 update below

	andNotXor(&t0, x0, x1)
	andNotXor(x0, x1, x2)
	andNotXor(x1, x2, x3)
	andNotXor(x2, x3, x4)
	andNotXor(x3, x4, &t1)
	for i := 0; i < 4; i++ {
		x4[i] ^= t0[i]
	}

	for i := 0; i < 4; i++ {
		x1[i] ^= x0[i]
		x0[i] ^= x4[i]
		x3[i] ^= x2[i]
	}

	return rr32(d0, 7), rr32(d1, 13), rr32(d2, 29)
}

// Permute runs rounds firstRound..11 of the masked ASCON permutation on
// s, consuming and refreshing the randomness in pool.
func Permute(s *State, pool *Pool, firstRound int) {
	for r := firstRound; r < 12; r++ {
		rc := permute.RoundConstantPairs32[r]
		s[2].E[0] ^= rc.E
		s[2].O[0] ^= rc.O

		pool.D0.E, pool.D1.E, pool.D2.E = substHalf(&s[0].E, &s[1].E, &s[2].E, &s[3].E, &s[4].E, pool.D0.E, pool.D1.E, pool.D2.E)
		pool.D0.O, pool.D1.O, pool.D2.O = substHalf(&s[0].O, &s[1].O, &s[2].O, &s[3].O, &s[4].O, pool.D0.O, pool.D1.O, pool.D2.O)

		// The round constants fold in x2's logical complement via only
		// share 0 as well (original_source applies the complement by
		// pre-inverting RC instead); here the complement is applied
		// explicitly, to only share 0, matching round.go's approach for
		// the unmasked backend.
		s[2].E[0] = ^s[2].E[0]
		s[2].O[0] = ^s[2].O[0]

		for share := 0; share < 4; share++ {
			t0 := s[0].E[share] ^ rr32(s[0].O[share], 4)
			t1 := s[0].O[share] ^ rr32(s[0].E[share], 5)
			t2 := s[1].E[share] ^ rr32(s[1].E[share], 11)
			t3 := s[1].O[share] ^ rr32(s[1].O[share], 11)
			t4 := s[2].E[share] ^ rr32(s[2].O[share], 2)
			t5 := s[2].O[share] ^ rr32(s[2].E[share], 3)
			t6 := s[3].E[share] ^ rr32(s[3].O[share], 3)
			t7 := s[3].O[share] ^ rr32(s[3].E[share], 4)
			t8 := s[4].E[share] ^ rr32(s[4].E[share], 17)
			t9 := s[4].O[share] ^ rr32(s[4].O[share], 17)
			s[0].E[share] ^= rr32(t1, 9)
			s[0].O[share] ^= rr32(t0, 10)
			s[1].E[share] ^= rr32(t3, 19)
			s[1].O[share] ^= rr32(t2, 20)
			s[2].E[share] ^= t5
			s[2].O[share] ^= rr32(t4, 1)
			s[3].E[share] ^= rr32(t6, 5)
			s[3].O[share] ^= rr32(t7, 5)
			s[4].E[share] ^= rr32(t9, 3)
			s[4].O[share] ^= rr32(t8, 4)
		}
	}
}
