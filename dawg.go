// dawg.go
//
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf

// This file implements the Directed Acyclic Word Graph (DAWG) that
// Builder produces: the minimized automaton consumed by DictBuilder to
// place a compact double-array dictionary.

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

// Dawg is the minimized automaton produced by a Builder: a directed
// acyclic word graph over byte-string keys, stored as two parallel
// pools (a packed transition word and a label) indexed so that the
// siblings of a state occupy consecutive indices. It has no query
// surface of its own beyond raw transition access — DictBuilder
// consumes it to place a compact double-array Dict, which is what
// callers actually search against.
type Dawg struct {
	statePool       ObjectPool[uint32]
	labelPool       ObjectPool[byte]
	numStates       int
	numMergedStates int
	root            int
}

// Root returns the state id of the dawg's root.
func (d *Dawg) Root() int { return d.root }

// Size returns the number of transitions (fixed units), including the
// sentinel occupying index 0.
func (d *Dawg) Size() int { return d.statePool.Size() }

// NumStates returns the number of distinct states created during
// construction (after merging equivalent suffixes).
func (d *Dawg) NumStates() int { return d.numStates }

// NumMergedStates returns the total number of transitions in sibling
// chains that were found equivalent to an already-registered state
// instead of being allocated anew (each merge adds its chain length).
func (d *Dawg) NumMergedStates() int { return d.numMergedStates }

// Child returns the state id reached by the transition at index. Only
// meaningful when !IsLeaf(index); a leaf's packed word holds a value
// instead of a child id.
func (d *Dawg) Child(index int) int {
	return int(d.statePool.Get(index) >> 1)
}

// Value returns the value stored at a leaf transition. Only meaningful
// when IsLeaf(index).
func (d *Dawg) Value(index int) int {
	return int(d.statePool.Get(index) >> 1)
}

// HasSibling reports whether the transition following index (i.e.
// index+1) belongs to the same state as index.
func (d *Dawg) HasSibling(index int) bool {
	return d.statePool.Get(index)&1 != 0
}

// Sibling returns the index of the next sibling transition, or 0 if
// index is the last transition of its state.
func (d *Dawg) Sibling(index int) int {
	if d.HasSibling(index) {
		return index + 1
	}
	return 0
}

// Label returns the byte labeling the transition at index. A label of
// 0x00 marks a leaf (terminal) transition.
func (d *Dawg) Label(index int) byte {
	return d.labelPool.Get(index)
}

// IsLeaf reports whether the transition at index is a terminal edge
// carrying a value rather than leading to another state.
func (d *Dawg) IsLeaf(index int) bool {
	return d.Label(index) == 0
}

// HasLeaf reports whether the state reached through the transition at
// index accepts there, i.e. whether its sibling chain includes the
// terminal transition. The terminal sits at the head of the chain for
// ascending-order builds and at the tail for descending-order ones, so
// the whole chain is scanned.
func (d *Dawg) HasLeaf(index int) bool {
	for i := d.Child(index); i != 0; i = d.Sibling(i) {
		if d.Label(i) == 0 {
			return true
		}
	}
	return false
}
