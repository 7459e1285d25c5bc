// dawg_helpers_test.go
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

import (
	"sort"
	"testing"
)

// buildDict builds a Dict from a map of key->value, inserting keys in
// ascending order as the builder requires.
func buildDict(t *testing.T, kv map[string]int) *Dict {
	t.Helper()
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := NewBuilder()
	for _, k := range keys {
		if err := b.Insert([]byte(k), kv[k]); err != nil {
			t.Fatalf("Insert(%q): %v", k, err)
		}
	}
	dawg := b.Finish()

	dict, err := NewDictBuilder().Build(dawg)
	if err != nil {
		t.Fatalf("DictBuilder.Build: %v", err)
	}
	return dict
}
