// dict.go
//
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf

// This file implements the read-only double-array dictionary: exact
// lookup, single-byte transitions and the binary file framing (a u32
// unit count, then that many little-endian units).

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

import (
	"encoding/binary"
	"io"
)

// Dict is a read-only, compact dictionary: a double array built by
// DictBuilder, queried by exact lookup or one transition at a time.
// A Dict is safe for concurrent use by multiple goroutines, since
// every operation only reads the backing slice.
type Dict struct {
	units []uint32
}

// Root returns the dictionary's root index.
func (d *Dict) Root() int { return 0 }

// Size returns the number of unit slots in the double array (not the
// number of keys stored).
func (d *Dict) Size() int { return len(d.units) }

// Follow attempts one transition from index via label, returning the
// resulting index. It reports false if no such transition exists.
func (d *Dict) Follow(index int, label byte) (int, bool) {
	offset := unitOffset(d.units[index])
	next := index ^ int(offset) ^ int(label)
	if next < 0 || next >= len(d.units) {
		return 0, false
	}
	u := d.units[next]
	if label == 0 {
		if !unitHasLeaf(d.units[index]) || !unitIsLeaf(u) {
			return 0, false
		}
		return next, true
	}
	if unitLabel(u) != uint32(label) {
		return 0, false
	}
	return next, true
}

// HasValue reports whether the state at index has a terminal (value)
// child, i.e. whether Value(index) would succeed.
func (d *Dict) HasValue(index int) bool {
	return unitHasLeaf(d.units[index])
}

// Value returns the value stored at the state at index, following its
// implicit terminal edge. It panics if HasValue(index) is false;
// callers that aren't sure should check HasValue first (Find already
// does, and never calls Value on a state without one).
func (d *Dict) Value(index int) int {
	next, ok := d.Follow(index, 0)
	if !ok {
		panic("godawg: Value called on a state with no terminal child")
	}
	return unitValue(d.units[next])
}

// Find looks up key and returns its value. Keys containing an
// embedded 0x00 byte can never match, since 0x00 is reserved as the
// terminal marker.
func (d *Dict) Find(key []byte) (int, bool) {
	index := d.Root()
	for _, b := range key {
		if b == 0 {
			return 0, false
		}
		next, ok := d.Follow(index, b)
		if !ok {
			return 0, false
		}
		index = next
	}
	if !d.HasValue(index) {
		return 0, false
	}
	return d.Value(index), true
}

// Contains reports whether key is present in the dictionary.
func (d *Dict) Contains(key []byte) bool {
	_, ok := d.Find(key)
	return ok
}

// FollowStr follows every byte of s from index in turn, the string
// counterpart of repeated Follow calls (used to anchor a Completer at
// an arbitrary prefix rather than the root).
func (d *Dict) FollowStr(index int, s string) (int, bool) {
	for i := 0; i < len(s); i++ {
		next, ok := d.Follow(index, s[i])
		if !ok {
			return 0, false
		}
		index = next
	}
	return index, true
}

// FollowPrefix follows key from the root for as long as possible,
// reporting both the resulting index and how many leading bytes of key
// actually matched. matched == len(key) iff key is a prefix of some
// stored key (Find additionally requires that prefix to carry a value).
func (d *Dict) FollowPrefix(key []byte) (index int, matched int, ok bool) {
	index = d.Root()
	for matched = 0; matched < len(key); matched++ {
		next, ok := d.Follow(index, key[matched])
		if !ok {
			return index, matched, false
		}
		index = next
	}
	return index, matched, true
}

// MapDict adopts units as a dictionary image without copying it, for
// callers that already hold the unit array in memory (typically an
// mmapped file reinterpreted as []uint32). The caller keeps ownership:
// the backing memory must stay alive and unmodified for as long as the
// returned Dict is in use.
func MapDict(units []uint32) *Dict {
	return &Dict{units: units}
}

// Each calls fn for every key/value pair stored in the dictionary, in
// ascending key order, stopping early if fn returns false.
func (d *Dict) Each(fn func(key []byte, value int) bool) {
	guide := BuildGuide(d)
	c := NewCompleter(d, guide)
	c.Start(d.Root(), nil)
	for c.Next() {
		value, ok := c.Value()
		if !ok {
			continue
		}
		if !fn(c.Key(), value) {
			return
		}
	}
}

// WriteTo writes the dictionary's binary image: a little-endian u32
// unit count followed by that many little-endian u32 units.
func (d *Dict) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(d.units))); err != nil {
		return 0, err
	}
	if err := binary.Write(w, binary.LittleEndian, d.units); err != nil {
		return 4, err
	}
	return 4 + int64(len(d.units))*4, nil
}

// ReadDict reads a dictionary image written by WriteTo. It returns
// ErrCorruptDictionary if the framing is truncated or otherwise
// invalid.
func ReadDict(r io.Reader) (*Dict, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, ErrCorruptDictionary
	}
	units := make([]uint32, size)
	if size > 0 {
		if err := binary.Read(r, binary.LittleEndian, units); err != nil {
			return nil, ErrCorruptDictionary
		}
	}
	return &Dict{units: units}, nil
}
