// main.go
//
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf

// dawgquery loads a dictionary (and optional completion guide) and
// answers one query per line: by default, every prefix of the query
// that is a stored key; with a guide, every completion under the
// query. It is the query counterpart of dawgbuild, sharing the same
// env-backed flag defaults and bounded dictionary cache from
// internal/dawgcli.

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
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/vthorsteinsson/godawg"
	"github.com/vthorsteinsson/godawg/internal/dawgcli"
)

const (
	exitOK = iota
	exitArgOrIO
	exitCorrupt
	exitQuery
)

// dictCache holds the dictionaries loaded by this process. run loads
// exactly one (the -d path) per invocation, and the cache does not
// persist across separate invocations of dawgquery.
var dictCache = dawgcli.NewDictCache(16)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	envPath := extractEnvFlag(args)
	if _, err := dawgcli.LoadEnvDefaults(envPath, "DAWG_QUERY_RANKED"); err != nil {
		log.Printf("dawgquery: loading %s: %v", envPath, err)
		return exitArgOrIO
	}

	fs := flag.NewFlagSet("dawgquery", flag.ContinueOnError)
	fs.String("env", "", "load flag defaults from a .env file")
	dictPath := fs.String("d", "", "dictionary file path (required)")
	guidePath := fs.String("gd", "", "completion guide file path")
	ranked := fs.Bool("r", dawgcli.BoolEnvDefault("DAWG_QUERY_RANKED", false), "guide at -gd is a ranked guide (.rguide) rather than a plain guide (.guide)")
	if err := fs.Parse(args); err != nil {
		return exitArgOrIO
	}
	if *dictPath == "" {
		log.Printf("dawgquery: -d is required")
		return exitArgOrIO
	}

	dict, err := dictCache.Load(*dictPath)
	if err != nil {
		log.Printf("dawgquery: %v", err)
		if os.IsNotExist(err) {
			return exitArgOrIO
		}
		return exitCorrupt
	}

	var guide *godawg.Guide
	var rankedGuide *godawg.RankedGuide
	if *guidePath != "" {
		f, err := os.Open(*guidePath)
		if err != nil {
			log.Printf("dawgquery: %v", err)
			return exitArgOrIO
		}
		if *ranked {
			rankedGuide, err = godawg.ReadRankedGuide(f)
		} else {
			guide, err = godawg.ReadGuide(f)
		}
		f.Close()
		if err != nil {
			log.Printf("dawgquery: %v", err)
			return exitCorrupt
		}
	}

	var r = os.Stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			log.Printf("dawgquery: %v", err)
			return exitArgOrIO
		}
		defer f.Close()
		r = f
	}
	queries, err := dawgcli.ScanQueries(r)
	if err != nil {
		log.Printf("dawgquery: %v", err)
		return exitArgOrIO
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for _, q := range queries {
		switch {
		case rankedGuide != nil:
			if err := completeRanked(out, dict, rankedGuide, q); err != nil {
				log.Printf("dawgquery: %q: %v", q, err)
				return exitQuery
			}
		case guide != nil:
			if err := complete(out, dict, guide, q); err != nil {
				log.Printf("dawgquery: %q: %v", q, err)
				return exitQuery
			}
		default:
			prefixMatches(out, dict, q)
		}
	}
	return exitOK
}

// prefixMatches prints every prefix of q that is a stored key, with
// its value, on one line.
func prefixMatches(out *bufio.Writer, dict *godawg.Dict, q string) {
	fmt.Fprintf(out, "%s:", q)
	index := dict.Root()
	for i := 0; i < len(q); i++ {
		next, ok := dict.Follow(index, q[i])
		if !ok {
			break
		}
		index = next
		if dict.HasValue(index) {
			fmt.Fprintf(out, " %s = %d;", q[:i+1], dict.Value(index))
		}
	}
	fmt.Fprintln(out)
}

func complete(out *bufio.Writer, dict *godawg.Dict, guide *godawg.Guide, prefix string) error {
	index, ok := dict.FollowStr(dict.Root(), prefix)
	if !ok {
		return nil
	}
	c := godawg.NewCompleter(dict, guide)
	c.Start(index, []byte(prefix))
	for c.Next() {
		value, _ := c.Value()
		fmt.Fprintf(out, "%s\t%d\n", c.Key(), value)
	}
	return nil
}

func completeRanked(out *bufio.Writer, dict *godawg.Dict, guide *godawg.RankedGuide, prefix string) error {
	index, ok := dict.FollowStr(dict.Root(), prefix)
	if !ok {
		return nil
	}
	c := godawg.NewRankedCompleter(dict, guide)
	c.Start(index, []byte(prefix))
	for c.Next() {
		fmt.Fprintf(out, "%s\t%d\n", c.Key(), c.Value())
	}
	return nil
}

// extractEnvFlag scans args for "-env"/"--env" before the rest of the
// flag set is defined, mirroring dawgbuild's pre-parse.
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
