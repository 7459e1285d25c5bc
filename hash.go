// hash.go
//
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf

// This file implements the integer hash mix used by the builder's
// hash-consing table.

/*

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.

*/

package godawg

// wangHash32 is Thomas Wang's 32-bit integer mix
// (http://www.concentric.net/~Ttwang/tech/inthash.htm), used by the
// builder's hash-consing table to fold a (label, base) transition pair
// into a table slot.
func wangHash32(key uint32) uint32 {
	key = ^key + (key << 15)
	key ^= key >> 12
	key += key << 2
	key ^= key >> 4
	key *= 2057
	key ^= key >> 16
	return key
}
