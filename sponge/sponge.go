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

// Package sponge implements the rate-8/rate-16 absorb/squeeze primitives
// shared by the AEAD and XOF constructions built on top of the ASCON
// permutation. None of these operations run the permutation themselves
// except AbsorbRate8, which is the one helper that needs to interleave
// XOR-into-rate with permutation calls.
package sponge

import (
	"github.com/ascon-lwc/ascon-go/ints"
	"github.com/ascon-lwc/ascon-go/permute"
)

// xorByte XORs b into the byte at big-endian index idx (0 = most
// significant byte) of *word.
func xorByte(word *uint64, idx int, b byte) {
	shift := uint(56 - 8*idx)
	*word ^= uint64(b) << shift
}

func byteAt(word uint64, idx int) byte {
	shift := uint(56 - 8*idx)
	return byte(word >> shift)
}

// AbsorbPartial XORs buf[:len(buf)] into rate bytes [offset, offset+len(buf))
// of the 8-byte rate word (s[0]). offset+len(buf) must not exceed 8.
func AbsorbPartial(s *permute.State, buf []byte, offset int) {
	for i, b := range buf {
		xorByte(&s[0], offset+i, b)
	}
}

// Squeeze8 copies rate bytes [offset, offset+len(out)) from s[0] into out.
func Squeeze8(s *permute.State, out []byte, offset int) {
	for i := range out {
		out[i] = byteAt(s[0], offset+i)
	}
}

// Absorb16 XORs buf[:len(buf)] into rate bytes [offset, offset+len(buf)) of
// the 16-byte rate (s[0] for the first 8 bytes, s[1] for the next 8).
// offset+len(buf) must not exceed 16.
func Absorb16(s *permute.State, buf []byte, offset int) {
	for i, b := range buf {
		o := offset + i
		if o < 8 {
			xorByte(&s[0], o, b)
		} else {
			xorByte(&s[1], o-8, b)
		}
	}
}

// Squeeze16 copies rate bytes [offset, offset+len(out)) of the 16-byte rate
// into out.
func Squeeze16(s *permute.State, out []byte, offset int) {
	for i := range out {
		o := offset + i
		if o < 8 {
			out[i] = byteAt(s[0], o)
		} else {
			out[i] = byteAt(s[1], o-8)
		}
	}
}

// Pad XORs 0x80 into rate byte `count` of the state. It never permutes.
func Pad(s *permute.State, count int) {
	xorByte(&s[0], count, 0x80)
}

// Separator XORs 0x01 into the last byte of the 40-byte regular state
// (offset 39, the low byte of x4), used as the domain separator between
// the two phases of ASCON-80pq-SIV.
func Separator(s *permute.State) {
	s[4] ^= 0x01
}

// AbsorbRate8 XORs data into the 8-byte rate in full blocks, permuting
// between each one, then handles the final partial block (padding it with
// a trailing 0x80 byte). When permuteAfterPad is true a closing
// permutation runs after the final padded block as well. ASCON-80pq-SIV
// passes true for associated data (a permutation boundary must separate
// it from the payload) and false for the payload itself, whose padded-
// but-unpermuted state feeds directly into tag derivation.
func AbsorbRate8(s *permute.State, data []byte, firstRound int, permuteAfterPad bool) {
	for len(data) >= 8 {
		AbsorbPartial(s, data[:8], 0)
		permute.Permute(s, firstRound)
		data = data[8:]
	}
	AbsorbPartial(s, data, 0)
	Pad(s, len(data))
	if permuteAfterPad {
		permute.Permute(s, firstRound)
	}
}

// BlockCount returns the number of rate-aligned blocks n bytes span,
// rounding up — used by callers sizing loops over AbsorbRate8-style data.
func BlockCount(n, rate int) int {
	return int(ints.ChunkCount(uint(n), uint(rate)))
}

// XorAt XORs data into the 40-byte regular state starting at byte
// offset, where offset+len(data) must not exceed permute.Size. Used by
// the AEAD key-absorption steps, which touch byte ranges that don't
// align with either the 8-byte or 16-byte rate.
func XorAt(s *permute.State, data []byte, offset int) {
	reg := s.ToRegular()
	for i, b := range data {
		reg[offset+i] ^= b
	}
	*s = permute.FromRegular(&reg)
}

// ReadAt copies len(out) bytes from the 40-byte regular state starting
// at byte offset into out.
func ReadAt(s *permute.State, out []byte, offset int) {
	reg := s.ToRegular()
	copy(out, reg[offset:offset+len(out)])
}
