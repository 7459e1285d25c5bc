// dictbuilder.go
//
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf

// This file places a minimized Dawg into a compact double array. For
// every state it searches for an offset under which each child's
// (offset XOR label) slot is free, writes the children into those
// slots, and recurses depth-first. A state reached by more than one
// parent is placed once: its offset is memoized and later parents
// simply point at it, as long as the relative offset still fits the
// unit encoding.
//
// Placement work is bounded by a sliding window: only the newest
// blocks keep free-list metadata (a circular doubly-linked list of
// unreserved slots threaded through per-unit extras). When a block
// ages out of the window it is fixed: its leftover slots are assigned
// labels chosen so that no stray XOR during a query can resolve to a
// false label match.

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

const (
	dictBlockSize    = 256
	numUnfixedBlocks = 16
)

// dictExtra is the per-unit bookkeeping kept only while a unit's block
// is inside the unfixed window: free-list links plus two flags. A unit
// is "fixed" once reserved for a placed edge (or retired by block
// fixing); an offset is "used" once some state claims it as the base
// of its child set — one base, one state, which is what lets a query
// disambiguate transitions by label alone.
type dictExtra struct {
	prev    uint32
	next    uint32
	isFixed bool
	isUsed  bool
}

// DictBuilder places a Dawg's states into a double array.
type DictBuilder struct {
	dawg           *Dawg
	units          []uint32
	extras         [][]dictExtra // nil entry = block aged out of the window
	offsets        []uint32      // dawg state id -> memoized placement offset
	labels         []byte        // scratch for the state being placed
	unfixedIndex   uint32
	numUnusedUnits int
}

// NewDictBuilder returns a DictBuilder ready to place a Dawg.
func NewDictBuilder() *DictBuilder {
	return &DictBuilder{}
}

// NumUnusedUnits returns how many slots the last Build retired without
// ever placing an edge in them, a measure of packing waste.
func (db *DictBuilder) NumUnusedUnits() int { return db.numUnusedUnits }

// Build places dawg into a new Dict. It returns ErrOffsetOverflow if
// some state's placement cannot be represented in the unit encoding;
// the partially-built array is discarded.
func (db *DictBuilder) Build(dawg *Dawg) (*Dict, error) {
	db.dawg = dawg
	db.units = nil
	db.extras = nil
	db.offsets = make([]uint32, dawg.Size())
	db.unfixedIndex = 0
	db.numUnusedUnits = 0

	db.reserveUnit(0)
	db.extraAt(0).isUsed = true
	root, err := withOffset(db.units[0], 1)
	if err != nil {
		return nil, err
	}
	db.units[0] = root

	if dawg.Size() > 1 {
		if err := db.place(0, 0); err != nil {
			db.units = nil
			db.extras = nil
			db.offsets = nil
			return nil, err
		}
	}
	db.fixAllBlocks()

	units := db.units
	db.units = nil
	db.extras = nil
	db.offsets = nil
	db.dawg = nil
	return &Dict{units: units}, nil
}

func (db *DictBuilder) extraAt(index uint32) *dictExtra {
	return &db.extras[index/dictBlockSize][index%dictBlockSize]
}

// place arranges the children of the dawg transition at dawgIndex
// under the dictionary slot dicIndex, then recurses into each child in
// depth-first order. A child state whose children are already arranged
// is pointed at rather than re-placed, provided the relative offset
// fits one of the two encodings.
func (db *DictBuilder) place(dawgIndex int, dicIndex uint32) error {
	if db.dawg.IsLeaf(dawgIndex) {
		return nil
	}

	childID := db.dawg.Child(dawgIndex)
	if off := db.offsets[childID]; off != 0 {
		rel := off ^ dicIndex
		if rel&unitLowerMask == 0 || rel&unitUpperMask == 0 {
			if db.dawg.HasLeaf(dawgIndex) {
				db.units[dicIndex] = withHasLeaf(db.units[dicIndex])
			}
			u, err := withOffset(db.units[dicIndex], rel)
			if err != nil {
				return err
			}
			db.units[dicIndex] = u
			return nil
		}
	}

	offset, err := db.arrangeChildren(dawgIndex, dicIndex)
	if err != nil {
		return err
	}
	db.offsets[childID] = offset

	for i := childID; i != 0; i = db.dawg.Sibling(i) {
		if err := db.place(i, offset^uint32(db.dawg.Label(i))); err != nil {
			return err
		}
	}
	return nil
}

// arrangeChildren finds an offset whose child slots are all free,
// reserves them, and writes each child's label (or, for the terminal
// transition, its value). It returns the chosen offset.
func (db *DictBuilder) arrangeChildren(dawgIndex int, dicIndex uint32) (uint32, error) {
	db.labels = db.labels[:0]
	for i := db.dawg.Child(dawgIndex); i != 0; i = db.dawg.Sibling(i) {
		db.labels = append(db.labels, db.dawg.Label(i))
	}

	offset := db.findGoodOffset(dicIndex)
	u, err := withOffset(db.units[dicIndex], dicIndex^offset)
	if err != nil {
		return 0, err
	}
	db.units[dicIndex] = u

	child := db.dawg.Child(dawgIndex)
	for _, label := range db.labels {
		dicChild := offset ^ uint32(label)
		db.reserveUnit(dicChild)
		if db.dawg.IsLeaf(child) {
			db.units[dicIndex] = withHasLeaf(db.units[dicIndex])
			db.units[dicChild] = makeLeafUnit(db.dawg.Value(child))
		} else {
			db.units[dicChild] = withLabel(db.units[dicChild], label)
		}
		child = db.dawg.Sibling(child)
	}
	db.extraAt(offset).isUsed = true
	return offset, nil
}

// findGoodOffset walks the circular free list for an offset under
// which every label's slot is still free; if the list is exhausted (or
// empty) it falls back to a fresh block, aligning the offset's low
// byte with the parent index so the relative offset stays encodable.
func (db *DictBuilder) findGoodOffset(dicIndex uint32) uint32 {
	if db.unfixedIndex >= uint32(len(db.units)) {
		return uint32(len(db.units)) | (dicIndex & 0xFF)
	}

	unfixed := db.unfixedIndex
	for {
		offset := unfixed ^ uint32(db.labels[0])
		if db.isGoodOffset(dicIndex, offset) {
			return offset
		}
		unfixed = db.extraAt(unfixed).next
		if unfixed == db.unfixedIndex {
			break
		}
	}
	return uint32(len(db.units)) | (dicIndex & 0xFF)
}

// isGoodOffset reports whether offset can host the current label set:
// nobody else claims it as a base, the relative offset is encodable,
// and no label's slot is already taken.
func (db *DictBuilder) isGoodOffset(dicIndex, offset uint32) bool {
	if db.extraAt(offset).isUsed {
		return false
	}

	rel := dicIndex ^ offset
	if rel&unitLowerMask != 0 && rel&unitUpperMask != 0 {
		return false
	}

	for _, label := range db.labels[1:] {
		if db.extraAt(offset ^ uint32(label)).isFixed {
			return false
		}
	}
	return true
}

// reserveUnit removes index from the circular free list and marks it
// fixed, growing the array first when index lies past the end.
func (db *DictBuilder) reserveUnit(index uint32) {
	if index >= uint32(len(db.units)) {
		db.expand()
	}

	if index == db.unfixedIndex {
		db.unfixedIndex = db.extraAt(index).next
		if db.unfixedIndex == index {
			db.unfixedIndex = uint32(len(db.units))
		}
	}
	ex := db.extraAt(index)
	db.extraAt(ex.prev).next = ex.next
	db.extraAt(ex.next).prev = ex.prev
	ex.isFixed = true
}

// expand appends one block of units, fixing the block that ages out of
// the unfixed window (and recycling its extras storage), then threads
// the new block's slots into the circular free list.
func (db *DictBuilder) expand() {
	srcUnits := uint32(len(db.units))
	srcBlocks := len(db.extras)
	destUnits := srcUnits + dictBlockSize

	if srcBlocks+1 > numUnfixedBlocks {
		db.fixBlock(srcBlocks - numUnfixedBlocks)
	}

	db.units = append(db.units, make([]uint32, dictBlockSize)...)
	if srcBlocks+1 > numUnfixedBlocks {
		aged := srcBlocks - numUnfixedBlocks
		block := db.extras[aged]
		db.extras[aged] = nil
		for i := range block {
			block[i] = dictExtra{}
		}
		db.extras = append(db.extras, block)
	} else {
		db.extras = append(db.extras, make([]dictExtra, dictBlockSize))
	}

	for i := srcUnits + 1; i < destUnits; i++ {
		db.extraAt(i - 1).next = i
		db.extraAt(i).prev = i - 1
	}
	db.extraAt(srcUnits).prev = destUnits - 1
	db.extraAt(destUnits - 1).next = srcUnits

	// Splices the new block into the existing circular list. When the
	// list was empty, unfixedIndex equals srcUnits and the splice is a
	// self-referential no-op that leaves the new block as the list.
	db.extraAt(srcUnits).prev = db.extraAt(db.unfixedIndex).prev
	db.extraAt(destUnits - 1).next = db.unfixedIndex
	db.extraAt(db.extraAt(db.unfixedIndex).prev).next = srcUnits
	db.extraAt(db.unfixedIndex).prev = destUnits - 1
}

func (db *DictBuilder) fixAllBlocks() {
	begin := 0
	if len(db.extras) > numUnfixedBlocks {
		begin = len(db.extras) - numUnfixedBlocks
	}
	for blockID := begin; blockID < len(db.extras); blockID++ {
		db.fixBlock(blockID)
	}
}

// fixBlock retires a block's leftover slots. Each gets a label whose
// XOR with an unused offset inside the block equals the slot index, so
// a stray transition computed during a query can never land on a slot
// whose label happens to match.
func (db *DictBuilder) fixBlock(blockID int) {
	begin := uint32(blockID) * dictBlockSize
	end := begin + dictBlockSize

	unusedOffset := begin
	for offset := begin; offset < end; offset++ {
		if !db.extraAt(offset).isUsed {
			unusedOffset = offset
			break
		}
	}

	for index := begin; index < end; index++ {
		if !db.extraAt(index).isFixed {
			db.reserveUnit(index)
			db.units[index] = withLabel(db.units[index], byte(index^unusedOffset))
			db.numUnusedUnits++
		}
	}
}
