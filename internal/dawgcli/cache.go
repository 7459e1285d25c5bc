// cache.go
//
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf

// This file implements a bounded, mutex-guarded cache of parsed
// dictionary files, keyed by file path, used by dawgquery to load its
// dictionary.

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

package dawgcli

import (
	"os"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
	"github.com/vthorsteinsson/godawg"
)

// DictCache is an LRU cache of dictionaries, keyed by the file path
// they were loaded from. The zero value is not usable; build one with
// NewDictCache.
type DictCache struct {
	mux sync.Mutex
	lru *simplelru.LRU
}

// NewDictCache returns a DictCache holding up to size dictionaries.
func NewDictCache(size int) *DictCache {
	lru, _ := simplelru.NewLRU(size, nil)
	return &DictCache{lru: lru}
}

// Load returns the dictionary stored at path, reading and parsing it
// only when path is not already cached. Once the cache holds size
// dictionaries, adding another evicts the least recently used one,
// and a later Load of that path reads the file again.
func (c *DictCache) Load(path string) (*godawg.Dict, error) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if dict, ok := c.lru.Get(path); ok {
		return dict.(*godawg.Dict), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dict, err := godawg.ReadDict(f)
	if err != nil {
		return nil, err
	}
	c.lru.Add(path, dict)
	return dict, nil
}
