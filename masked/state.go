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

import "github.com/ascon-lwc/ascon-go/permute"

// Word is one 64-bit state word split into even/odd 32-bit halves, each
// masked across four shares — the masked analogue of permute.Word32.
type Word struct {
	E, O Shares
}

// State is the 320-bit ASCON state as five masked words.
type State [5]Word

// Pool holds the persistent randomness shares 0, 1 and 2 contribute to
// each round's freshness term; share 3 is re-derived every round from
// these three (see Permute). Callers refill it from a CSPRNG before the
// first use and must not reuse a pool across independent permutation
// calls without refreshing it.
type Pool struct {
	D0, D1, D2 permute.Word32
}

// Unmask combines every share in s back into the plain bit-interleaved
// 32-bit state, discarding the masking.
func Unmask(s *State) permute.State32 {
	var out permute.State32
	for i := range s {
		out[i] = permute.Word32{E: Combine(s[i].E), O: Combine(s[i].O)}
	}
	return out
}

// Mask splits plain into a freshly masked State, drawing randomness for
// shares 1..3 of every half-word from rnd.
func Mask(plain *permute.State32, rnd func() uint32) State {
	var s State
	for i := range plain {
		s[i] = Word{
			E: Split(plain[i].E, rnd),
			O: Split(plain[i].O, rnd),
		}
	}
	return s
}

// Zero overwrites s with zeroes.
func (s *State) Zero() {
	for i := range s {
		s[i] = Word{}
	}
}

// Zero overwrites p with zeroes.
func (p *Pool) Zero() {
	*p = Pool{}
}

// Run masks plain, runs the masked permutation over rounds
// firstRound..11 drawing freshness from a pool seeded by rnd, unmasks
// the result, and zeroes the masked state, the freshness pool, and its
// own local copy of the unmasked input before returning — the masked
// backend's own "free" entry point, playing the same lifecycle role
// permute.State.Zero plays for the unmasked backends. plain is passed
// by value so this cleanup never reaches back into the caller's copy.
func Run(plain permute.State32, firstRound int, rnd func() uint32) permute.State32 {
	defer plain.Zero()

	pool := Pool{
		D0: permute.Word32{E: rnd(), O: rnd()},
		D1: permute.Word32{E: rnd(), O: rnd()},
		D2: permute.Word32{E: rnd(), O: rnd()},
	}
	s := Mask(&plain, rnd)
	Permute(&s, &pool, firstRound)
	out := Unmask(&s)
	s.Zero()
	pool.Zero()
	return out
}
