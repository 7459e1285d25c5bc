// completer.go
//
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf

// This file implements the plain completer: a depth-first key
// enumerator driven by a Dict and its Guide. Start anchors the walk at
// a dictionary index (and an optional prefix already consumed to get
// there); each call to Next advances to the next key in lexicographic
// order.

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

// Completer enumerates the keys reachable from a starting dictionary
// index in ascending byte order. A zero-value Completer is not usable;
// build one with NewCompleter and call Start before Next.
type Completer struct {
	dict       *Dict
	guide      *Guide
	key        []byte
	indexStack []int
	lastIndex  int
}

// NewCompleter returns a Completer that walks dict using guide.
func NewCompleter(dict *Dict, guide *Guide) *Completer {
	return &Completer{dict: dict, guide: guide}
}

// Start anchors the completer at index, with prefix as the portion of
// the key already consumed to reach it (prefix is copied). The first
// call to Next yields the first completion.
func (c *Completer) Start(index int, prefix []byte) {
	c.key = append(c.key[:0], prefix...)
	c.indexStack = append(c.indexStack[:0], index)
	c.lastIndex = c.dict.Root()
}

// Key returns the key produced by the most recent successful Next.
func (c *Completer) Key() []byte { return c.key }

// Value returns the value of the key produced by the most recent
// successful Next.
func (c *Completer) Value() (int, bool) {
	if !c.dict.HasValue(c.lastIndex) {
		return 0, false
	}
	return c.dict.Value(c.lastIndex), true
}

// Next advances to the next key and reports whether one was found.
func (c *Completer) Next() bool {
	if len(c.indexStack) == 0 {
		return false
	}
	index := c.indexStack[len(c.indexStack)-1]

	if c.lastIndex != c.dict.Root() {
		childLabel := c.guide.Child(index)
		if childLabel != 0 {
			next, ok := c.dict.Follow(index, childLabel)
			if !ok {
				return false
			}
			c.key = append(c.key, childLabel)
			c.indexStack = append(c.indexStack, next)
			index = next
		} else {
			for {
				siblingLabel := c.guide.Sibling(index)
				c.indexStack = c.indexStack[:len(c.indexStack)-1]
				if len(c.indexStack) == 0 {
					return false
				}
				index = c.indexStack[len(c.indexStack)-1]
				if siblingLabel != 0 {
					next, ok := c.dict.Follow(index, siblingLabel)
					if !ok {
						return false
					}
					if len(c.key) > 0 {
						c.key[len(c.key)-1] = siblingLabel
					}
					c.indexStack = append(c.indexStack, next)
					index = next
					break
				}
				if len(c.key) > 0 {
					c.key = c.key[:len(c.key)-1]
				}
			}
		}
	}

	for !c.dict.HasValue(index) {
		label := c.guide.Child(index)
		next, ok := c.dict.Follow(index, label)
		if !ok {
			return false
		}
		c.key = append(c.key, label)
		c.indexStack = append(c.indexStack, next)
		index = next
	}
	c.lastIndex = index
	return true
}
