// main_test.go
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

package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vthorsteinsson/godawg"
)

func buildFixture(t *testing.T, dir string) (dictPath, guidePath string) {
	t.Helper()
	b := godawg.NewBuilder()
	for i, k := range []string{"app", "apple", "application", "apply"} {
		if err := b.Insert([]byte(k), 10*(i+1)); err != nil {
			t.Fatalf("Insert(%q): %v", k, err)
		}
	}
	dict, err := godawg.NewDictBuilder().Build(b.Finish())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	dictPath = filepath.Join(dir, "fixture.dict")
	f, err := os.Create(dictPath)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := dict.WriteTo(f); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	f.Close()

	guidePath = filepath.Join(dir, "fixture.guide")
	g, err := os.Create(guidePath)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := godawg.BuildGuide(dict).WriteTo(g); err != nil {
		t.Fatalf("guide WriteTo: %v", err)
	}
	g.Close()
	return dictPath, guidePath
}

func TestPrefixMatchesListsEveryMatchingPrefix(t *testing.T) {
	dir := t.TempDir()
	dictPath, _ := buildFixture(t, dir)

	f, err := os.Open(dictPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	dict, err := godawg.ReadDict(f)
	f.Close()
	if err != nil {
		t.Fatalf("ReadDict: %v", err)
	}

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	prefixMatches(w, dict, "applesauce")
	w.Flush()

	got := buf.String()
	for _, want := range []string{"app = 10;", "apple = 20;"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
	if strings.Contains(got, "application") {
		t.Errorf("output %q lists a non-prefix key", got)
	}
}

func TestRunQueriesDictionaryWithGuide(t *testing.T) {
	dir := t.TempDir()
	dictPath, guidePath := buildFixture(t, dir)

	queryPath := filepath.Join(dir, "queries.txt")
	if err := os.WriteFile(queryPath, []byte("appl\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if code := run([]string{"-d", dictPath, "-gd", guidePath, queryPath}); code != exitOK {
		t.Errorf("run() = %d, want exitOK", code)
	}
}

func TestRunRequiresDictionaryFlag(t *testing.T) {
	if code := run([]string{}); code != exitArgOrIO {
		t.Errorf("run() without -d = %d, want exitArgOrIO", code)
	}
}
