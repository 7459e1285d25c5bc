// rankedcompleter.go
//
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf

// This file implements the ranked completer: a best-first key
// enumerator that yields completions in descending value order. The
// completion set under a prefix is usually far too large to generate
// and sort up front, so the ranking comes from a lazy best-first
// search over the ranked guide's reordered child/sibling chains.
//
// The search keeps a container/heap priority queue of candidates, each
// referencing a node in a small path arena (so keys can be rebuilt by
// chasing parent links, without recursion). A candidate's priority is
// the exact best value in its branch, found by walking the guide's
// best-child chain; a terminal candidate carries its exact value.
// Because every priority is exact, the heap top is always the global
// optimum among unexplored branches and values pop in non-increasing
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

import "container/heap"

// rankedCandidate is one pending branch (or terminal) of the search,
// keyed by the best value reachable inside it.
type rankedCandidate struct {
	value  int
	nodeID int
}

// rankedNode is one step of an explored path: the dictionary index it
// stands on, the label that reached it, and its parent in the arena.
// A terminal node marks the implicit '\0' transition of its parent.
type rankedNode struct {
	index    int
	prev     int
	label    byte
	terminal bool
}

// rankedHeap is a max-heap of candidates: higher value first, ties
// broken by lower node id so enumeration order is deterministic.
type rankedHeap struct {
	entries []rankedCandidate
	less    ValueLess
}

func (h *rankedHeap) Len() int { return len(h.entries) }

func (h *rankedHeap) Less(i, j int) bool {
	a, b := h.entries[i], h.entries[j]
	if h.less(a.value, b.value) || h.less(b.value, a.value) {
		return h.less(b.value, a.value)
	}
	return a.nodeID < b.nodeID
}

func (h *rankedHeap) Swap(i, j int) { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }

func (h *rankedHeap) Push(x any) { h.entries = append(h.entries, x.(rankedCandidate)) }

func (h *rankedHeap) Pop() any {
	old := h.entries
	n := len(old)
	item := old[n-1]
	h.entries = old[:n-1]
	return item
}

// RankedCompleter enumerates the keys reachable from a starting
// dictionary index in descending value order, as ranked by the
// comparator its guide was built with. A zero-value RankedCompleter is
// not usable; build one with NewRankedCompleter (or
// NewRankedCompleterFunc) and call Start before Next.
type RankedCompleter struct {
	dict      *Dict
	guide     *RankedGuide
	heap      rankedHeap
	nodes     []rankedNode
	key       []byte
	prefixLen int
	value     int
}

// NewRankedCompleter returns a RankedCompleter over a guide built with
// natural integer order (BuildRankedGuide).
func NewRankedCompleter(dict *Dict, guide *RankedGuide) *RankedCompleter {
	return NewRankedCompleterFunc(dict, guide, nil)
}

// NewRankedCompleterFunc returns a RankedCompleter ranking values by
// less, which must be the comparator guide was built with.
func NewRankedCompleterFunc(dict *Dict, guide *RankedGuide, less ValueLess) *RankedCompleter {
	if less == nil {
		less = naturalLess
	}
	return &RankedCompleter{dict: dict, guide: guide, heap: rankedHeap{less: less}}
}

// Start anchors the completer at index, with prefix as the portion of
// the key already consumed to reach it (prefix is copied). The first
// call to Next yields the highest-value completion.
func (rc *RankedCompleter) Start(index int, prefix []byte) {
	rc.nodes = append(rc.nodes[:0], rankedNode{index: index, prev: -1})
	rc.heap.entries = rc.heap.entries[:0]
	rc.key = append(rc.key[:0], prefix...)
	rc.prefixLen = len(prefix)
	if best, ok := rc.branchBest(index); ok {
		heap.Push(&rc.heap, rankedCandidate{value: best, nodeID: 0})
	}
}

// branchBest returns the best value reachable at or below index. The
// guide's child chain always descends into the best-ranked branch, so
// folding the values seen along that one chain is enough.
func (rc *RankedCompleter) branchBest(index int) (int, bool) {
	best := 0
	seeded := false
	for {
		if rc.dict.HasValue(index) {
			if v := rc.dict.Value(index); !seeded || rc.heap.less(best, v) {
				best = v
				seeded = true
			}
		}
		label := rc.guide.Child(index)
		if label == 0 {
			return best, seeded
		}
		next, ok := rc.dict.Follow(index, label)
		if !ok {
			return best, seeded
		}
		index = next
	}
}

// Key returns the key produced by the most recent successful Next. The
// slice is reused by the next call to Next.
func (rc *RankedCompleter) Key() []byte { return rc.key }

// Value returns the value of the key produced by the most recent
// successful Next.
func (rc *RankedCompleter) Value() int { return rc.value }

// Next advances to the next-highest-value key and reports whether one
// was found.
func (rc *RankedCompleter) Next() bool {
	for rc.heap.Len() > 0 {
		cand := heap.Pop(&rc.heap).(rankedCandidate)
		if rc.nodes[cand.nodeID].terminal {
			rc.emit(cand.nodeID, cand.value)
			return true
		}
		rc.expand(cand.nodeID)
	}
	return false
}

// expand replaces a branch candidate with one candidate per outgoing
// transition of its state: the terminal (exact value), plus each child
// branch in the guide's rank order.
func (rc *RankedCompleter) expand(nodeID int) {
	index := rc.nodes[nodeID].index
	if rc.dict.HasValue(index) {
		rc.nodes = append(rc.nodes, rankedNode{index: index, prev: nodeID, terminal: true})
		heap.Push(&rc.heap, rankedCandidate{value: rc.dict.Value(index), nodeID: len(rc.nodes) - 1})
	}
	for label := rc.guide.Child(index); label != 0; {
		next, ok := rc.dict.Follow(index, label)
		if !ok {
			break
		}
		rc.nodes = append(rc.nodes, rankedNode{index: next, prev: nodeID, label: label})
		if best, ok := rc.branchBest(next); ok {
			heap.Push(&rc.heap, rankedCandidate{value: best, nodeID: len(rc.nodes) - 1})
		}
		label = rc.guide.Sibling(next)
	}
}

// emit rebuilds the key for the terminal node and records its value.
func (rc *RankedCompleter) emit(nodeID, value int) {
	rc.key = rc.key[:rc.prefixLen]
	start := len(rc.key)
	for n := rc.nodes[nodeID]; n.prev >= 0; n = rc.nodes[n.prev] {
		if !n.terminal {
			rc.key = append(rc.key, n.label)
		}
	}
	for i, j := start, len(rc.key)-1; i < j; i, j = i+1, j-1 {
		rc.key[i], rc.key[j] = rc.key[j], rc.key[i]
	}
	rc.value = value
}
