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
	"embed"
	"os"
	"path/filepath"
	"testing"

	"github.com/vthorsteinsson/godawg"
)

//go:embed testdata/lexicon.txt
var testdataFS embed.FS

// TestRunBuildsDictionaryFromEmbeddedLexicon runs the build CLI end to
// end against a small bundled fixture lexicon.
func TestRunBuildsDictionaryFromEmbeddedLexicon(t *testing.T) {
	lexicon, err := testdataFS.ReadFile("testdata/lexicon.txt")
	if err != nil {
		t.Fatalf("reading embedded lexicon: %v", err)
	}

	dir := t.TempDir()
	inPath := filepath.Join(dir, "lexicon.txt")
	if err := os.WriteFile(inPath, lexicon, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	outPath := filepath.Join(dir, "out.dict")

	if code := run([]string{"-t", "-g", "-r", "-o", outPath, inPath}); code != exitOK {
		t.Fatalf("run() = %d, want exitOK", code)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("opening built dictionary: %v", err)
	}
	defer f.Close()
	dict, err := godawg.ReadDict(f)
	if err != nil {
		t.Fatalf("ReadDict: %v", err)
	}
	if v, ok := dict.Find([]byte("application")); !ok || v != 20 {
		t.Errorf(`Find("application") = (%d, %v), want (20, true)`, v, ok)
	}
	if dict.Contains([]byte("band")) == false {
		t.Errorf(`Contains("band") = false, want true`)
	}

	for _, suffix := range []string{".guide", ".rguide"} {
		sidecar := filepath.Join(dir, "out"+suffix)
		if _, err := os.Stat(sidecar); err != nil {
			t.Errorf("expected sidecar file %s: %v", sidecar, err)
		}
	}
}

func TestRunRejectsMissingInput(t *testing.T) {
	dir := t.TempDir()
	if code := run([]string{"-o", filepath.Join(dir, "out.dict"), filepath.Join(dir, "missing.txt")}); code != exitArgOrIO {
		t.Errorf("run(missing input) = %d, want exitArgOrIO", code)
	}
}
