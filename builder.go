// builder.go
//
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf

// This file implements the online-minimizing DAWG builder: keys are
// inserted in sorted order and equivalent suffixes are merged
// incrementally rather than in a separate minimization pass.

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

// defaultInitialHashTableSize is the starting size of the builder's
// hash-consing table.
const defaultInitialHashTableSize = 1 << 8

// builderNode is one not-yet-fixed trie edge in the builder's working
// arena. Once its subtree can no longer change (a sibling or ancestor
// has closed it off) it is folded into a (base, label) pair in the
// Dawg's state/label pools and the node slot is returned to the free
// list.
type builderNode struct {
	child      uint32
	sibling    uint32
	label      byte
	value      int32
	hasSibling bool
}

// base packs this node's out-edge as it will be stored once fixed: the
// low bit is the has-sibling continuation flag, the remaining bits are
// the child state id for an interior edge or the stored value for a
// label-0x00 (terminal) edge.
func (n builderNode) base() uint32 {
	var hasSib uint32
	if n.hasSibling {
		hasSib = 1
	}
	if n.label == 0 {
		return uint32(n.value)<<1 | hasSib
	}
	return n.child<<1 | hasSib
}

// Builder performs online minimization: it accepts keys one at a time
// in sorted order and incrementally merges equivalent suffixes
// (Daciuk-style incremental construction).
// Insert must be called with keys in a single monotone order (either
// ascending or descending byte order); the direction is fixed by the
// first pair of keys that differ and enforced thereafter. Finish
// yields an immutable Dawg and resets the builder to its zero state.
type Builder struct {
	initialHashTableSize int
	statePool             ObjectPool[uint32]
	labelPool             ObjectPool[byte]
	nodePool              ObjectPool[builderNode]
	hashTable             []uint32
	unfixedStack          []int
	unusedNodes           []int
	registeredStates      []int
	numStates             int
	numMergedStates       int
	initialized           bool
	orderFixed            bool
	descending            bool
}

// NewBuilder returns a Builder ready to accept Insert calls.
func NewBuilder() *Builder {
	return &Builder{initialHashTableSize: defaultInitialHashTableSize}
}

// Insert adds key with the given non-negative value. Keys must arrive
// in a single monotone byte order; the first two keys that actually
// differ fix whether that order is ascending or descending, and every
// later key is checked against the chosen direction.
func (b *Builder) Insert(key []byte, value int) error {
	if value < 0 {
		return ErrNegativeValue
	}
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if !b.initialized {
		b.init()
	}

	index := 0
	keyPos := 0
	for ; keyPos <= len(key); keyPos++ {
		childIndex := int(b.nodePool.Get(index).child)
		if childIndex == 0 {
			break
		}

		var keyLabel byte
		if keyPos < len(key) {
			keyLabel = key[keyPos]
		}
		unitLabel := b.nodePool.Get(childIndex).label

		if keyLabel == unitLabel {
			index = childIndex
			continue
		}

		if !b.orderFixed {
			b.orderFixed = true
			b.descending = keyLabel < unitLabel
		}
		if b.descending {
			if keyLabel > unitLabel {
				return ErrOrderViolation
			}
		} else if keyLabel < unitLabel {
			return ErrOrderViolation
		}

		node := b.nodePool.At(childIndex)
		node.hasSibling = true
		b.fixStates(childIndex)
		break
	}

	// Matching all the way through the terminator means key was already
	// inserted; a duplicate breaks strict monotone order.
	if keyPos > len(key) {
		return ErrOrderViolation
	}

	for ; keyPos <= len(key); keyPos++ {
		var keyLabel byte
		if keyPos < len(key) {
			keyLabel = key[keyPos]
		}
		childIndex := b.allocateNode()
		parent := b.nodePool.Get(index)
		node := b.nodePool.At(childIndex)
		node.sibling = parent.child
		node.label = keyLabel
		b.nodePool.At(index).child = uint32(childIndex)
		b.unfixedStack = append(b.unfixedStack, childIndex)
		index = childIndex
	}
	b.nodePool.At(index).value = int32(value)
	return nil
}

// Finish fixes the remaining open states down to the root, yielding an
// immutable Dawg, and resets the builder so it can be reused.
func (b *Builder) Finish() *Dawg {
	if !b.initialized {
		b.init()
	}
	b.fixStates(0)

	root := b.nodePool.Get(0)
	// The sentinel transition gets a non-zero label so IsLeaf(0) is
	// false and traversal starting at index 0 descends into the root
	// state. The marker never collides with key bytes: real 0xFF
	// labels live at other indices.
	root.label = 0xFF
	b.statePool.Set(0, root.base())
	b.labelPool.Set(0, root.label)

	d := &Dawg{
		numStates:       b.numStates,
		numMergedStates: b.numMergedStates,
		root:            int(root.child),
	}
	d.statePool.Swap(&b.statePool)
	d.labelPool.Swap(&b.labelPool)

	*b = Builder{initialHashTableSize: b.initialHashTableSize}
	return d
}

// Clear discards any in-progress insertions and returns the builder to
// its initial state, including the insertion-order lock, so it can be
// reused to build an unrelated Dawg (possibly in the other direction).
func (b *Builder) Clear() {
	*b = Builder{initialHashTableSize: b.initialHashTableSize}
}

func (b *Builder) init() {
	b.hashTable = make([]uint32, b.initialHashTableSize)
	b.nodePool.Allocate() // sentinel node 0
	b.allocateState()     // sentinel state 0, mirrors node 0
	b.unfixedStack = append(b.unfixedStack, 0)
	b.initialized = true
}

// fixStates folds every node above index on the unfixed stack into the
// permanent state/label pools, merging with an existing equivalent
// state when one is found.
func (b *Builder) fixStates(index int) {
	for b.unfixedStack[len(b.unfixedStack)-1] != index {
		n := len(b.unfixedStack)
		unfixedIndex := b.unfixedStack[n-1]
		b.unfixedStack = b.unfixedStack[:n-1]

		if b.numStates >= len(b.hashTable)-(len(b.hashTable)>>2) {
			b.expandHashTable()
		}

		numSiblings := 0
		for i := unfixedIndex; i != 0; i = int(b.nodePool.Get(i).sibling) {
			numSiblings++
		}

		matchedIndex, hashID := b.findUnit(unfixedIndex)
		if matchedIndex != 0 {
			b.numMergedStates += numSiblings
		} else {
			stateIndex := 0
			for i := 0; i < numSiblings; i++ {
				stateIndex = b.allocateState()
			}
			for i := unfixedIndex; i != 0; {
				node := b.nodePool.Get(i)
				b.statePool.Set(stateIndex, node.base())
				b.labelPool.Set(stateIndex, node.label)
				i = int(node.sibling)
				stateIndex--
			}
			matchedIndex = stateIndex + 1
			b.hashTable[hashID] = uint32(matchedIndex)
			b.registeredStates = append(b.registeredStates, matchedIndex)
			b.numStates++
		}

		for current := unfixedIndex; current != 0; {
			next := int(b.nodePool.Get(current).sibling)
			b.freeNode(current)
			current = next
		}

		parent := b.unfixedStack[len(b.unfixedStack)-1]
		b.nodePool.At(parent).child = uint32(matchedIndex)
	}
	b.unfixedStack = b.unfixedStack[:len(b.unfixedStack)-1]
}

// expandHashTable doubles the hash table and re-registers every state
// fixed so far, replaying registeredStates rather than re-deriving the
// set by scanning the pools.
func (b *Builder) expandHashTable() {
	b.hashTable = make([]uint32, len(b.hashTable)<<1)
	for _, stateIndex := range b.registeredStates {
		hashID := b.findState(stateIndex)
		b.hashTable[hashID] = uint32(stateIndex)
	}
}

func (b *Builder) findState(stateIndex int) int {
	hashID := int(b.hashState(stateIndex) % uint32(len(b.hashTable)))
	for b.hashTable[hashID] != 0 {
		hashID = (hashID + 1) % len(b.hashTable)
	}
	return hashID
}

func (b *Builder) findUnit(unitIndex int) (matchedIndex, hashID int) {
	hashID = int(b.hashUnit(unitIndex) % uint32(len(b.hashTable)))
	for {
		stateID := b.hashTable[hashID]
		if stateID == 0 {
			return 0, hashID
		}
		if b.areEqual(unitIndex, int(stateID)) {
			return int(stateID), hashID
		}
		hashID = (hashID + 1) % len(b.hashTable)
	}
}

// areEqual reports whether the unfixed sibling chain rooted at
// unitIndex has the same shape and labels as the already-fixed state
// at stateIndex.
func (b *Builder) areEqual(unitIndex, stateIndex int) bool {
	si := stateIndex
	for i := int(b.nodePool.Get(unitIndex).sibling); i != 0; i = int(b.nodePool.Get(i).sibling) {
		if b.statePool.Get(si)&1 == 0 {
			return false
		}
		si++
	}
	if b.statePool.Get(si)&1 != 0 {
		return false
	}

	for i := unitIndex; i != 0; si-- {
		node := b.nodePool.Get(i)
		if node.base() != b.statePool.Get(si) || node.label != b.labelPool.Get(si) {
			return false
		}
		i = int(node.sibling)
	}
	return true
}

func (b *Builder) hashState(stateIndex int) uint32 {
	var h uint32
	for si := stateIndex; si != 0; {
		base := b.statePool.Get(si)
		label := b.labelPool.Get(si)
		h ^= wangHash32(uint32(label)<<24 ^ base)
		if base&1 != 0 {
			si++
		} else {
			si = 0
		}
	}
	return h
}

func (b *Builder) hashUnit(unitIndex int) uint32 {
	var h uint32
	for i := unitIndex; i != 0; i = int(b.nodePool.Get(i).sibling) {
		node := b.nodePool.Get(i)
		h ^= wangHash32(uint32(node.label)<<24 ^ node.base())
	}
	return h
}

// allocateState grows the state and label pools in lockstep and
// returns the shared index.
func (b *Builder) allocateState() int {
	b.statePool.Allocate()
	return b.labelPool.Allocate()
}

func (b *Builder) allocateNode() int {
	var index int
	if len(b.unusedNodes) == 0 {
		index = b.nodePool.Allocate()
	} else {
		n := len(b.unusedNodes)
		index = b.unusedNodes[n-1]
		b.unusedNodes = b.unusedNodes[:n-1]
	}
	b.nodePool.Set(index, builderNode{})
	return index
}

func (b *Builder) freeNode(index int) {
	b.unusedNodes = append(b.unusedNodes, index)
}
