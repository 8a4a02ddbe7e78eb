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

// Package zero overwrites sensitive buffers in a way the compiler cannot
// optimize away as a dead store, the Go analogue of the platform
// primitives (explicit_bzero, SecureZeroMemory, ...) spec.md §5 asks
// every "free" entry point to use.
package zero

import "runtime"

//go:noinline
func touch(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Bytes overwrites b with zeroes. The runtime.KeepAlive call and the
// noinline barrier keep the compiler from recognizing the loop as a
// store to a dead value and eliding it.
func Bytes(b []byte) {
	touch(b)
	runtime.KeepAlive(b)
}
