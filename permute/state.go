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

// Package permute implements the 320-bit ASCON permutation and the state
// codecs that convert between it and its external, byte-oriented "regular"
// form. Two equivalent internal encodings are provided: a straightforward
// 64-bit-sliced State and a 32-bit bit-interleaved State32, the layout used
// internally by the masked backend in package masked. Conversion through
// the regular form is the only place backend-specific layout is ever
// visible outside this package and package masked.
package permute

import "encoding/binary"

// Size is the width in bytes of the external "regular" state encoding.
const Size = 40

// State is the 320-bit ASCON permutation state, sliced into five 64-bit
// words x0..x4, big-endian within each word.
type State [5]uint64

// FromRegular loads a 40-byte big-endian buffer into the 64-bit-sliced form.
func FromRegular(b *[Size]byte) State {
	var s State
	for i := range s {
		s[i] = binary.BigEndian.Uint64(b[i*8 : i*8+8])
	}
	return s
}

// ToRegular serializes s into its 40-byte big-endian regular form.
func (s *State) ToRegular() [Size]byte {
	var b [Size]byte
	for i := range s {
		binary.BigEndian.PutUint64(b[i*8:i*8+8], s[i])
	}
	return b
}

// Zero overwrites s with an all-zero state. Used by callers implementing
// the "free" entry points required by spec.md §3/§5.
func (s *State) Zero() {
	for i := range s {
		s[i] = 0
	}
}
