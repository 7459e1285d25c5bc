// dawg_scenarios_test.go
//
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf

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


// End-to-end walks of the whole pipeline, from insertion through
// persistence, gathered in one place even though most steps are also
// exercised closer to the component they stress.

package godawg

import (
	"bytes"
	"errors"
	"math/rand"
	"sort"
	"testing"
)

func TestPipelineBasicLookup(t *testing.T) {
	dict := buildDict(t, map[string]int{"apple": 0, "cherry": 1, "durian": 2})
	if !dict.Contains([]byte("apple")) {
		t.Error(`Contains("apple") = false, want true`)
	}
	if dict.Contains([]byte("banana")) {
		t.Error(`Contains("banana") = true, want false`)
	}
	if v, ok := dict.Find([]byte("cherry")); !ok || v != 1 {
		t.Errorf(`Find("cherry") = (%d, %v), want (1, true)`, v, ok)
	}
}

func TestPipelineOrderViolation(t *testing.T) {
	b := NewBuilder()
	if err := b.Insert([]byte("banana"), 0); err != nil {
		t.Fatalf("Insert(banana): %v", err)
	}
	if err := b.Insert([]byte("cherry"), 1); err != nil {
		t.Fatalf("Insert(cherry): %v", err)
	}
	if err := b.Insert([]byte("apple"), 2); !errors.Is(err, ErrOrderViolation) {
		t.Errorf("Insert(apple) after banana, cherry = %v, want ErrOrderViolation", err)
	}
}

func TestPipelinePlainCompletion(t *testing.T) {
	kv := map[string]int{"apple": 10, "application": 20, "apply": 30}
	dict := buildDict(t, kv)
	guide := BuildGuide(dict)
	index, ok := dict.FollowStr(dict.Root(), "appl")
	if !ok {
		t.Fatal("prefix appl not found")
	}
	c := NewCompleter(dict, guide)
	c.Start(index, []byte("appl"))
	got := map[string]int{}
	for c.Next() {
		v, _ := c.Value()
		got[string(c.Key())] = v
	}
	for k, v := range kv {
		if got[k] != v {
			t.Errorf("completion %q = %d, want %d", k, got[k], v)
		}
	}
}

func TestPipelineRankedCompletion(t *testing.T) {
	kv := map[string]int{"apple": 5, "application": 50, "apply": 20}
	dict := buildDict(t, kv)
	guide := BuildRankedGuide(dict)
	index, ok := dict.FollowStr(dict.Root(), "appl")
	if !ok {
		t.Fatal("prefix appl not found")
	}
	c := NewRankedCompleter(dict, guide)
	c.Start(index, []byte("appl"))

	want := []struct {
		key   string
		value int
	}{{"application", 50}, {"apply", 20}, {"apple", 5}}
	for i, w := range want {
		if !c.Next() {
			t.Fatalf("Next() false at %d", i)
		}
		if string(c.Key()) != w.key || c.Value() != w.value {
			t.Errorf("got (%q, %d), want (%q, %d)", c.Key(), c.Value(), w.key, w.value)
		}
	}
}

func TestPipelineLargeRandomKeySet(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const n = 65536
	kv := make(map[string]int, n)
	alphabet := "abcdefghijklmnopqrstuvwxyz"
	for len(kv) < n {
		buf := make([]byte, 6)
		for i := range buf {
			buf[i] = alphabet[rng.Intn(len(alphabet))]
		}
		kv[string(buf)] = rng.Intn(1 << 20)
	}

	b := NewBuilder()
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	// buildDict already sorts; here we need the Dawg directly to check
	// NumMergedStates, so sort ourselves before inserting.
	sort.Strings(keys)
	for _, k := range keys {
		if err := b.Insert([]byte(k), kv[k]); err != nil {
			t.Fatalf("Insert(%q): %v", k, err)
		}
	}
	dawg := b.Finish()
	if dawg.NumMergedStates() == 0 {
		t.Error("NumMergedStates() == 0 for a large random key set; expected merging")
	}

	dict, err := NewDictBuilder().Build(dawg)
	if err != nil {
		t.Fatalf("DictBuilder.Build: %v", err)
	}
	for _, k := range keys {
		if got, ok := dict.Find([]byte(k)); !ok || got != kv[k] {
			t.Fatalf("Find(%q) = (%d, %v), want (%d, true)", k, got, ok, kv[k])
		}
	}
}

func TestPipelinePersistenceThenRepeat(t *testing.T) {
	kv := map[string]int{"apple": 0, "cherry": 1, "durian": 2}
	dict := buildDict(t, kv)

	var buf bytes.Buffer
	if _, err := dict.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	reread, err := ReadDict(&buf)
	if err != nil {
		t.Fatalf("ReadDict: %v", err)
	}

	if !reread.Contains([]byte("apple")) {
		t.Error(`after round-trip, Contains("apple") = false, want true`)
	}
	if reread.Contains([]byte("banana")) {
		t.Error(`after round-trip, Contains("banana") = true, want false`)
	}
	if v, ok := reread.Find([]byte("cherry")); !ok || v != 1 {
		t.Errorf(`after round-trip, Find("cherry") = (%d, %v), want (1, true)`, v, ok)
	}
}

