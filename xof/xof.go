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

// Package xof implements ASCON-XOF and ASCON-XOFA, the extensible-output
// hash constructions built on the permutation in package permute and the
// rate-8 primitives in package sponge.
package xof

import (
	"errors"

	"github.com/ascon-lwc/ascon-go/ints"
	"github.com/ascon-lwc/ascon-go/permute"
	"github.com/ascon-lwc/ascon-go/sponge"
)

// DefaultOutputSize is the default digest length in bytes for both
// variants when no fixed length is requested.
const DefaultOutputSize = 32

const rate = 8

// maxFixedOutlen is the largest output length, in bytes, that still fits
// the 32-bit bit-length subword of the initialization vector; beyond it
// the standard falls back to the arbitrary-length encoding (spec.md §4.E).
const maxFixedOutlen = 536870911

// ivHeaders are the fixed 64-bit domain-separation constants for each
// construction, following the ASCON v1.2 IV encoding, one byte each for
// key length (0) || rate in bits (0x40) || rounds a (12) || a minus b
// (0 for XOF, 4 for XOFA), then 32 bits of output length in bits.
// The low 32 bits (output length in bits) are filled in by initIV.
const (
	xofHeader  = uint64(0x00400c0000000000)
	xofaHeader = uint64(0x00400c0400000000)
)

// Variant selects between ASCON-XOF (12-round inter-block permutation)
// and ASCON-XOFA (8 rounds, lighter).
type Variant int

const (
	XOF Variant = iota
	XOFA
)

func (v Variant) header() uint64 {
	if v == XOFA {
		return xofaHeader
	}
	return xofHeader
}

// blockRound returns the first_round argument used between absorbed or
// squeezed blocks: p12 for XOF, p8 for XOFA.
func (v Variant) blockRound() int {
	if v == XOFA {
		return 4
	}
	return 0
}

// mode tracks the one-way Absorb -> Squeeze transition of spec.md §3.
type mode int

const (
	modeAbsorb mode = iota
	modeSqueeze
)

// ErrSqueezeStarted is returned by Absorb once the state has transitioned
// to squeeze mode. spec.md §9 leaves the choice of hard-error vs. silent
// continuation to the implementer; this module chooses a hard, explicit
// error over undefined or surprising behavior.
var ErrSqueezeStarted = errors.New("ascon: xof: absorb called after squeeze has started")

// State is an incremental ASCON-XOF/XOFA sponge.
type State struct {
	s       permute.State
	variant Variant
	count   int
	mode    mode
}

func initIV(variant Variant, outlenBits uint64) permute.State {
	var s permute.State
	s[0] = variant.header() | outlenBits
	permute.Permute(&s, 0)
	return s
}

// Init initializes state for arbitrary-length output.
func Init(variant Variant) *State {
	return &State{s: initIV(variant, 0), variant: variant}
}

// InitFixed initializes state for a caller-committed output length of
// outlen bytes. If outlen*8 would not fit the 32-bit bit-length subword,
// it silently falls back to the arbitrary-length encoding.
func InitFixed(variant Variant, outlen int) *State {
	bits := uint64(0)
	if outlen > 0 && outlen <= maxFixedOutlen {
		bits = uint64(outlen) * 8
	}
	return &State{s: initIV(variant, bits), variant: variant}
}

// Reinit re-initializes st in place for arbitrary-length output, securely
// clearing whatever was there before.
func (st *State) Reinit(variant Variant) {
	st.Free()
	st.s = initIV(variant, 0)
	st.variant = variant
	st.count = 0
	st.mode = modeAbsorb
}

// ReinitFixed re-initializes st in place for a fixed output length.
func (st *State) ReinitFixed(variant Variant, outlen int) {
	st.Free()
	*st = *InitFixed(variant, outlen)
}

// Free securely zeroes st.
func (st *State) Free() {
	st.s.Zero()
	st.count = 0
	st.mode = modeAbsorb
}

// Absorb appends buf to the sponge. Calling Absorb once squeezing has
// begun returns ErrSqueezeStarted and leaves the state unchanged.
func (st *State) Absorb(buf []byte) error {
	if st.mode == modeSqueeze {
		return ErrSqueezeStarted
	}
	for len(buf) > 0 {
		n := ints.Min(len(buf), rate-st.count)
		sponge.AbsorbPartial(&st.s, buf[:n], st.count)
		st.count += n
		buf = buf[n:]
		if st.count == rate {
			permute.Permute(&st.s, st.variant.blockRound())
			st.count = 0
		}
	}
	return nil
}

// pad XORs the 0x80 padding byte into the rate at the current count and
// resets count, without permuting.
func (st *State) pad() {
	sponge.Pad(&st.s, st.count)
	st.count = 0
}

func (st *State) beginSqueeze() {
	if st.mode == modeSqueeze {
		return
	}
	st.pad()
	permute.Permute(&st.s, st.variant.blockRound())
	st.mode = modeSqueeze
	st.count = 0
}

// Squeeze emits len(out) bytes of hash output, permuting between rate-8
// blocks as needed. The first call transitions the sponge to squeeze
// mode; subsequent calls continue where the previous one left off, so
// Squeeze(32) followed by Squeeze(32) yields the same 64 bytes as a
// single Squeeze(64) call (spec.md §8's prefix-extension property).
func (st *State) Squeeze(out []byte) {
	st.beginSqueeze()
	for len(out) > 0 {
		n := ints.Min(len(out), rate-st.count)
		sponge.Squeeze8(&st.s, out[:n], st.count)
		st.count += n
		out = out[n:]
		if st.count == rate {
			permute.Permute(&st.s, st.variant.blockRound())
			st.count = 0
		}
	}
}

// ClearRate pads, zeroes the 8-byte rate, and permutes — the forward-
// secrecy step used by SpongePRNG-style constructions (spec.md §4.E).
func (st *State) ClearRate() {
	st.pad()
	st.s[0] = 0
	permute.Permute(&st.s, st.variant.blockRound())
}

// Copy deep-copies an initialized src into dst.
func Copy(dst, src *State) {
	*dst = *src
}

// Sum hashes in with the given variant and returns a DefaultOutputSize
// digest — the one-shot convenience form.
func Sum(variant Variant, in []byte) [DefaultOutputSize]byte {
	st := Init(variant)
	_ = st.Absorb(in)
	var out [DefaultOutputSize]byte
	st.Squeeze(out[:])
	st.Free()
	return out
}

// SumN hashes in with the given variant and returns n bytes of output,
// using the fixed-length IV encoding.
func SumN(variant Variant, in []byte, n int) []byte {
	st := InitFixed(variant, n)
	_ = st.Absorb(in)
	out := make([]byte, n)
	st.Squeeze(out)
	st.Free()
	return out
}
