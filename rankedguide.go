// rankedguide.go
//
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf

// This file implements the ranked completion guide: the same two
// parallel byte arrays as the plain guide, but with every state's
// children ordered by the best value reachable through them (per a
// caller-supplied comparator) instead of by label. RankedCompleter
// walks these reordered chains best-branch-first.

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
	"sort"
)

// ValueLess compares two stored values for ranking purposes: it reports
// whether a ranks strictly below b. A nil ValueLess means natural
// integer order.
type ValueLess func(a, b int) bool

func naturalLess(a, b int) bool { return a < b }

// RankedGuide is a completion aid built from a Dict: for every
// reachable index it records the label of that state's best child
// branch (child) and, for the slot each child arrives at, the label of
// the next-best sibling branch (sibling). "Best" means the branch whose
// subtree holds the highest-ranking value under the comparator the
// guide was built with; ties rank the smaller label first. A 0x00 entry
// in either array means "none". The terminal ('\0') transition is not
// part of the chains; it is reported separately by Dict.HasValue, as in
// the plain guide.
type RankedGuide struct {
	child   []byte
	sibling []byte
}

// BuildRankedGuide builds dict's ranked guide with values in natural
// integer order.
func BuildRankedGuide(dict *Dict) *RankedGuide {
	return BuildRankedGuideFunc(dict, nil)
}

// BuildRankedGuideFunc builds dict's ranked guide, ranking values by
// less. The completer enumerating with this guide must be given the
// same comparator, or its output order is unspecified.
func BuildRankedGuideFunc(dict *Dict, less ValueLess) *RankedGuide {
	if less == nil {
		less = naturalLess
	}
	b := &rankedGuideBuilder{
		dict:  dict,
		less:  less,
		guide: &RankedGuide{child: make([]byte, dict.Size()), sibling: make([]byte, dict.Size())},
		best:  make([]int, dict.Size()),
		done:  make([]bool, dict.Size()),
	}
	b.visit(dict.Root())
	return b.guide
}

// rankedGuideLink is one outgoing branch of a state being ordered: its
// label and the best value reachable through it.
type rankedGuideLink struct {
	label byte
	value int
}

type rankedGuideBuilder struct {
	dict  *Dict
	less  ValueLess
	guide *RankedGuide
	best  []int // memoized best reachable value per index
	done  []bool
}

// visit orders the children of index by descending branch value and
// fills in the guide's child/sibling bytes, returning the best value
// reachable at or below index. Shared states are visited once; later
// parents reuse the memoized result, which is valid because a chain's
// ordering depends only on the subtree values, not on the path in.
func (b *rankedGuideBuilder) visit(index int) int {
	if b.done[index] {
		return b.best[index]
	}

	var links []rankedGuideLink
	targets := make(map[byte]int)
	for label := 1; label <= 0xFF; label++ {
		next, ok := b.dict.Follow(index, byte(label))
		if !ok {
			continue
		}
		links = append(links, rankedGuideLink{label: byte(label), value: b.visit(next)})
		targets[byte(label)] = next
	}

	best := 0
	seeded := false
	if b.dict.HasValue(index) {
		best = b.dict.Value(index)
		seeded = true
	}
	for _, l := range links {
		if !seeded || b.less(best, l.value) {
			best = l.value
			seeded = true
		}
	}

	sort.SliceStable(links, func(i, j int) bool {
		if b.less(links[i].value, links[j].value) || b.less(links[j].value, links[i].value) {
			return b.less(links[j].value, links[i].value)
		}
		return links[i].label < links[j].label
	})

	if len(links) > 0 {
		b.guide.child[index] = links[0].label
	}
	for i, l := range links {
		if i+1 < len(links) {
			b.guide.sibling[targets[l.label]] = links[i+1].label
		}
	}

	b.best[index] = best
	b.done[index] = true
	return best
}

// Child returns the label of the best-ranked (real, non-terminal) child
// branch of the state at index, or 0 if it has none.
func (g *RankedGuide) Child(index int) byte { return g.child[index] }

// Sibling returns the label of the next-best sibling branch of the edge
// that arrives at index, or 0 if it is the last branch.
func (g *RankedGuide) Sibling(index int) byte { return g.sibling[index] }

// WriteTo writes the ranked guide's binary image, the same framing as
// the plain guide: a little-endian u32 count followed by that many
// {child, sibling} byte pairs.
func (g *RankedGuide) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(g.child))); err != nil {
		return 0, err
	}
	for i := range g.child {
		if _, err := w.Write([]byte{g.child[i], g.sibling[i]}); err != nil {
			return 4 + int64(i)*2, err
		}
	}
	return 4 + int64(len(g.child))*2, nil
}

// ReadRankedGuide reads a ranked guide image written by WriteTo. It
// returns ErrCorruptGuide if the framing is truncated or otherwise
// invalid.
func ReadRankedGuide(r io.Reader) (*RankedGuide, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, ErrCorruptGuide
	}
	g := &RankedGuide{child: make([]byte, size), sibling: make([]byte, size)}
	buf := make([]byte, 2)
	for i := range g.child {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, ErrCorruptGuide
		}
		g.child[i] = buf[0]
		g.sibling[i] = buf[1]
	}
	return g, nil
}
