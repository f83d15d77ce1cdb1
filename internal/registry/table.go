/*
 * MIT License
 *
 * Copyright (c) 2022-2024  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package registry provides the sharded, concurrent Path -> value table
// backing the hierarchy registry (spec §4.4). It is generic so the actor
// package can key it by *cell without this package importing actor,
// avoiding an import cycle.
package registry

import (
	csmap "github.com/mhmtszr/concurrent-swiss-map"
	"github.com/zeebo/xxh3"
)

const defaultShards = 32

// Table is a sharded map keyed by canonical path string, grounded on the
// teacher's pid_map.go (csmap + xxh3 custom hasher for string keys).
type Table[V any] struct {
	m *csmap.CsMap[string, V]
}

// New creates an empty Table.
func New[V any]() *Table[V] {
	return &Table[V]{
		m: csmap.Create[string, V](
			csmap.WithShardCount[string, V](defaultShards),
			csmap.WithCustomHasher[string, V](func(key string) uint64 {
				return xxh3.Hash([]byte(key))
			}),
		),
	}
}

// Get returns the value stored at path, if any.
func (t *Table[V]) Get(path string) (V, bool) {
	return t.m.Load(path)
}

// Set stores value at path, overwriting any prior entry.
func (t *Table[V]) Set(path string, value V) {
	t.m.Store(path, value)
}

// Delete removes the entry at path, if present.
func (t *Table[V]) Delete(path string) {
	t.m.Delete(path)
}

// Len returns the number of entries.
func (t *Table[V]) Len() int {
	return t.m.Count()
}

// Range calls fn for every entry until fn returns false.
func (t *Table[V]) Range(fn func(path string, value V) bool) {
	t.m.Range(func(k string, v V) bool {
		return !fn(k, v)
	})
}
