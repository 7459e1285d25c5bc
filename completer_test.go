// completer_test.go
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


package godawg

import "testing"

func TestCompleterYieldsAllCompletionsUnderPrefix(t *testing.T) {
	kv := map[string]int{"apple": 10, "application": 20, "apply": 30}
	dict := buildDict(t, kv)
	guide := BuildGuide(dict)

	index, ok := dict.FollowStr(dict.Root(), "appl")
	if !ok {
		t.Fatal(`FollowStr(root, "appl") failed`)
	}
	c := NewCompleter(dict, guide)
	c.Start(index, []byte("appl"))

	got := make(map[string]int)
	for c.Next() {
		value, ok := c.Value()
		if !ok {
			t.Fatalf("completed key %q has no value", c.Key())
		}
		got[string(c.Key())] = value
	}
	if len(got) != len(kv) {
		t.Fatalf("got %d completions, want %d: %v", len(got), len(kv), got)
	}
	for k, v := range kv {
		if got[k] != v {
			t.Errorf("completion %q = %d, want %d", k, got[k], v)
		}
	}
}

func TestCompleterFromRoot(t *testing.T) {
	kv := map[string]int{"a": 1, "b": 2, "c": 3}
	dict := buildDict(t, kv)
	guide := BuildGuide(dict)

	c := NewCompleter(dict, guide)
	c.Start(dict.Root(), nil)
	count := 0
	for c.Next() {
		count++
	}
	if count != len(kv) {
		t.Errorf("got %d completions from root, want %d", count, len(kv))
	}
}

func TestCompleterPrefixLookupFailsWhenNoMatch(t *testing.T) {
	dict := buildDict(t, map[string]int{"apple": 0})
	guide := BuildGuide(dict)
	if _, ok := dict.FollowStr(dict.Root(), "zzz"); ok {
		t.Fatal("FollowStr(zzz) unexpectedly succeeded")
	}
	// Anchoring at a nonexistent index would be a caller bug; instead
	// confirm the prefix lookup itself correctly reports failure, which
	// is what callers (e.g. cmd/dawgquery) check before starting.
	_ = guide
}
