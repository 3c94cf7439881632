// seehuhn.de/go/canvas - a device-independent canvas driver
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package canvas

import "hash/fnv"

// cacheKey identifies the contents of a cached bitmap.
type cacheKey struct {
	w, h int
	sum  uint64
}

func keyOf(w, h int, data []byte) cacheKey {
	f := fnv.New64a()
	f.Write(data)
	return cacheKey{w: w, h: h, sum: f.Sum64()}
}

// cache holds the most recently used value of one kind.  Asking for a
// different key replaces the entry.
type cache[V any] struct {
	key    cacheKey
	val    V
	valid  bool
	misses int
}

// get returns the cached value for key, calling create on a miss.  If
// create fails, the old entry is kept.
func (c *cache[V]) get(key cacheKey, create func() (V, error)) (V, error) {
	if c.valid && c.key == key {
		return c.val, nil
	}
	c.misses++
	v, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.key, c.val, c.valid = key, v, true
	return v, nil
}

// current returns the cached value, if any.
func (c *cache[V]) current() (V, bool) {
	return c.val, c.valid
}

func (c *cache[V]) reset() {
	var zero V
	c.val, c.valid = zero, false
}
