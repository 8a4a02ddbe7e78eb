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

import "golang.org/x/sys/cpu"

// Capabilities reports which native word width a caller's own
// build-configuration selector might prefer for this platform. It is
// purely informational: every backend in this package produces the
// identical logical result on every platform, and nothing in this
// module dispatches on these flags itself.
type Capabilities struct {
	Has64BitALU bool
	HasAES      bool
}

// Probe returns the capability flags for the running CPU.
func Probe() Capabilities {
	return Capabilities{
		Has64BitALU: true, // Go's compiler always exposes a 64-bit uint64 type
		HasAES:      cpu.X86.HasAES,
	}
}
