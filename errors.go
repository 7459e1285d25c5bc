// errors.go
//
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf

// This file collects the sentinel errors returned across the package.

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

import "errors"

// Sentinel errors returned by the builder, the dictionary builder and
// the read-only dictionary/guide decoders. None of the public API in
// this module panics on malformed external input (a corrupt file, an
// out-of-order key); panics are reserved for programmer misuse of the
// in-process pool/index types.
var (
	// ErrEmptyKey is returned by Builder.Insert for a zero-length key.
	ErrEmptyKey = errors.New("godawg: key must not be empty")

	// ErrNegativeValue is returned by Builder.Insert for a negative value.
	ErrNegativeValue = errors.New("godawg: value must not be negative")

	// ErrOrderViolation is returned by Builder.Insert when a key arrives
	// out of the monotone order fixed by the first inserted pair of keys.
	ErrOrderViolation = errors.New("godawg: key violates insertion order")

	// ErrOffsetOverflow is returned by the dictionary builder when a
	// state's placement offset cannot be represented in the packed unit
	// encoding.
	ErrOffsetOverflow = errors.New("godawg: offset exceeds encodable range")

	// ErrCorruptDictionary is returned while reading a dictionary image
	// whose framing (size header, trailing length) doesn't check out.
	ErrCorruptDictionary = errors.New("godawg: corrupt dictionary image")

	// ErrCorruptGuide is returned while reading a guide image whose
	// framing doesn't check out.
	ErrCorruptGuide = errors.New("godawg: corrupt guide image")
)
