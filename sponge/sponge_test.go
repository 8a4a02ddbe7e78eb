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

package sponge

import (
	"bytes"
	"testing"

	"github.com/ascon-lwc/ascon-go/ints"
	"github.com/ascon-lwc/ascon-go/permute"
)

func TestAbsorbSqueezeRoundTrip(t *testing.T) {
	var s permute.State
	msg := []byte("12345678")
	AbsorbPartial(&s, msg, 0)

	var out [8]byte
	Squeeze8(&s, out[:], 0)
	if !bytes.Equal(out[:], msg) {
		t.Fatalf("squeeze8 got %q want %q", out, msg)
	}
}

func TestAbsorb16SqueezeRoundTrip(t *testing.T) {
	var s permute.State
	msg := []byte("0123456789abcdef")
	Absorb16(&s, msg, 0)

	var out [16]byte
	Squeeze16(&s, out[:], 0)
	if !bytes.Equal(out[:], msg) {
		t.Fatalf("squeeze16 got %q want %q", out, msg)
	}
}

func TestPadTouchesOnlyOneByte(t *testing.T) {
	var s permute.State
	Pad(&s, 3)
	reg := s.ToRegular()
	for i, b := range reg {
		if i == 3 {
			if b != 0x80 {
				t.Fatalf("byte 3 = %#x, want 0x80", b)
			}
			continue
		}
		if b != 0 {
			t.Fatalf("byte %d = %#x, want 0", i, b)
		}
	}
}

func TestSeparatorTouchesLastByte(t *testing.T) {
	var s permute.State
	Separator(&s)
	reg := s.ToRegular()
	for i, b := range reg {
		if i == 39 {
			if b != 0x01 {
				t.Fatalf("byte 39 = %#x, want 0x01", b)
			}
			continue
		}
		if b != 0 {
			t.Fatalf("byte %d = %#x, want 0", i, b)
		}
	}
}

func TestBlockCount(t *testing.T) {
	cases := []struct{ n, rate, want int }{
		{0, 8, 0}, {1, 8, 1}, {8, 8, 1}, {9, 8, 2}, {16, 8, 2},
	}
	for _, c := range cases {
		if got := BlockCount(c.n, c.rate); got != c.want {
			t.Fatalf("BlockCount(%d,%d)=%d want %d", c.n, c.rate, got, c.want)
		}
		// BlockCount*rate is exactly n rounded up to the next multiple of
		// rate, i.e. the same quantity ints.AlignUp64 computes directly.
		if got, want := uint64(BlockCount(c.n, c.rate)*c.rate), ints.AlignUp64(uint64(c.n), uint64(c.rate)); got != want {
			t.Fatalf("BlockCount(%d,%d)*rate = %d, want AlignUp64 = %d", c.n, c.rate, got, want)
		}
		if c.n > 0 && !ints.IsAligned64(ints.AlignUp64(uint64(c.n), uint64(c.rate)), uint64(c.rate)) {
			t.Fatalf("AlignUp64(%d,%d) is not rate-aligned", c.n, c.rate)
		}
	}
}

func TestAbsorbRate8AlwaysPads(t *testing.T) {
	// Absorbing a full 8-byte block must still consume an extra padded
	// permutation step — spec.md §9 "absorption padding always applied".
	var withFullBlock, empty permute.State
	AbsorbRate8(&withFullBlock, []byte{1, 2, 3, 4, 5, 6, 7, 8}, 6, true)
	AbsorbRate8(&empty, []byte{}, 6, true)
	if withFullBlock == empty {
		t.Fatal("absorbing a non-empty full block must change the state vs. absorbing nothing")
	}

	// The full block is permuted, then a padding-only block (0x80 at
	// offset 0) is absorbed and permuted once more.
	var want permute.State
	AbsorbPartial(&want, []byte{1, 2, 3, 4, 5, 6, 7, 8}, 0)
	permute.Permute(&want, 6)
	Pad(&want, 0)
	permute.Permute(&want, 6)
	if withFullBlock != want {
		t.Fatal("a full final block must be followed by a padded, permuted block")
	}
}
