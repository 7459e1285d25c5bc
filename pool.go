// pool.go
//
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf

// This file implements a block-chunked object pool used as the
// growable arena backing the DAWG builder's working tables and the
// Dawg's state and label tables.

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

// poolBlockSize is the number of elements per block in an ObjectPool:
// large enough to amortize the allocation cost, small enough that early
// blocks aren't wasted on small dictionaries.
const poolBlockSize = 1 << 10

// ObjectPool is a block-chunked arena that only ever grows. Indices
// handed out by Allocate stay valid for the pool's lifetime; growth
// appends a new block instead of reallocating and copying existing
// elements, so outstanding indices never need to be fixed up.
type ObjectPool[T any] struct {
	blocks [][]T
	size   int
}

// Size returns the number of objects allocated so far.
func (p *ObjectPool[T]) Size() int { return p.size }

// Get returns the element at index.
func (p *ObjectPool[T]) Get(index int) T {
	return p.blocks[index/poolBlockSize][index%poolBlockSize]
}

// Set stores v at index.
func (p *ObjectPool[T]) Set(index int, v T) {
	p.blocks[index/poolBlockSize][index%poolBlockSize] = v
}

// At returns a pointer to the element at index, for in-place mutation.
func (p *ObjectPool[T]) At(index int) *T {
	return &p.blocks[index/poolBlockSize][index%poolBlockSize]
}

// Allocate reserves the next index and returns it. The zero-valued
// element occupying that index is ready to use; callers that recycle
// a freed index (see the builder's own free list) are responsible for
// resetting it themselves.
func (p *ObjectPool[T]) Allocate() int {
	if p.size == poolBlockSize*len(p.blocks) {
		p.blocks = append(p.blocks, make([]T, poolBlockSize))
	}
	index := p.size
	p.size++
	return index
}

// Clear discards every block, resetting the pool to empty.
func (p *ObjectPool[T]) Clear() {
	p.blocks = nil
	p.size = 0
}

// Swap exchanges the contents of p and other in O(1).
func (p *ObjectPool[T]) Swap(other *ObjectPool[T]) {
	p.blocks, other.blocks = other.blocks, p.blocks
	p.size, other.size = other.size, p.size
}
