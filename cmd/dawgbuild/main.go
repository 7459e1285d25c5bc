// main.go
//
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf

// dawgbuild reads a sorted lexicon and writes a compact dictionary,
// and optionally its completion guides.

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
	"flag"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/vthorsteinsson/godawg"
	"github.com/vthorsteinsson/godawg/internal/dawgcli"
)

const (
	exitOK = iota
	exitArgOrIO
	exitCorrupt
	exitBuild
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// -env is resolved before the rest of the flags are even defined, so
	// that its .env file can supply their defaults.
	envPath := extractEnvFlag(args)
	if _, err := dawgcli.LoadEnvDefaults(envPath, "DAWG_BUILD_GUIDE"); err != nil {
		log.Printf("dawgbuild: loading %s: %v", envPath, err)
		return exitArgOrIO
	}

	fs := flag.NewFlagSet("dawgbuild", flag.ContinueOnError)
	fs.String("env", "", "load flag defaults from a .env file")
	withValue := fs.Bool("t", false, "input lines are key<TAB>value pairs (default: key only, value is the key's 0-based position among the input keys)")
	emitGuide := fs.Bool("g", dawgcli.BoolEnvDefault("DAWG_BUILD_GUIDE", false), "also emit a .guide completion guide")
	emitRanked := fs.Bool("r", dawgcli.BoolEnvDefault("DAWG_BUILD_RANKED", false), "also emit a .rguide ranked completion guide")
	outPath := fs.String("o", "", "dictionary output path (default: stdout)")
	sortInput := fs.Bool("sort", false, "sort input lines before building (defensive; caller is still responsible for a consistent order)")
	if err := fs.Parse(args); err != nil {
		return exitArgOrIO
	}

	var r = os.Stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			log.Printf("dawgbuild: %v", err)
			return exitArgOrIO
		}
		defer f.Close()
		r = f
	}

	entries, err := dawgcli.ScanEntries(r, *withValue)
	if err != nil {
		log.Printf("dawgbuild: %v", err)
		return exitArgOrIO
	}
	if *sortInput {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	}

	b := godawg.NewBuilder()
	for i, e := range entries {
		value := i
		if e.HasValue {
			value = e.Value
		}
		if err := b.Insert([]byte(e.Key), value); err != nil {
			log.Printf("dawgbuild: %q: %v", e.Key, err)
			return exitBuild
		}
	}
	dawg := b.Finish()

	dict, err := godawg.NewDictBuilder().Build(dawg)
	if err != nil {
		log.Printf("dawgbuild: %v", err)
		return exitBuild
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Printf("dawgbuild: %v", err)
			return exitArgOrIO
		}
		defer f.Close()
		out = f
	}
	if _, err := dict.WriteTo(out); err != nil {
		log.Printf("dawgbuild: writing dictionary: %v", err)
		return exitArgOrIO
	}

	base := strings.TrimSuffix(*outPath, ".dict")
	if base == "" {
		base = "dict"
	}
	if *emitGuide {
		if err := writeGuide(base+".guide", godawg.BuildGuide(dict)); err != nil {
			log.Printf("dawgbuild: %v", err)
			return exitArgOrIO
		}
	}
	if *emitRanked {
		if err := writeRankedGuide(base+".rguide", godawg.BuildRankedGuide(dict)); err != nil {
			log.Printf("dawgbuild: %v", err)
			return exitArgOrIO
		}
	}
	return exitOK
}

func writeGuide(path string, g *godawg.Guide) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = g.WriteTo(f)
	return err
}

func writeRankedGuide(path string, g *godawg.RankedGuide) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = g.WriteTo(f)
	return err
}

// extractEnvFlag scans args for "-env"/"--env", either as "-env=path"
// or as "-env path", without invoking the flag package (whose flags
// aren't all defined yet at this point).
func extractEnvFlag(args []string) string {
	for i, a := range args {
		switch {
		case a == "-env" || a == "--env":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(a, "-env="):
			return strings.TrimPrefix(a, "-env=")
		case strings.HasPrefix(a, "--env="):
			return strings.TrimPrefix(a, "--env=")
		}
	}
	return ""
}
