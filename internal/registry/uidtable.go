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

package registry

import csmap "github.com/mhmtszr/concurrent-swiss-map"

// UIDTable is the parallel uid-keyed sharded map (spec §3 "Registry": "a
// parallel uid -> Weak<Cell> map"), backing ActorSystem.SelectByUID so a
// specific spawned instance can be resolved independent of its path.
type UIDTable[V any] struct {
	m *csmap.CsMap[uint64, V]
}

// NewUID creates an empty UIDTable.
func NewUID[V any]() *UIDTable[V] {
	return &UIDTable[V]{
		m: csmap.Create[uint64, V](
			csmap.WithShardCount[uint64, V](defaultShards),
			csmap.WithCustomHasher[uint64, V](func(key uint64) uint64 {
				return key
			}),
		),
	}
}

func (t *UIDTable[V]) Get(uid uint64) (V, bool) { return t.m.Load(uid) }
func (t *UIDTable[V]) Set(uid uint64, value V)  { t.m.Store(uid, value) }
func (t *UIDTable[V]) Delete(uid uint64)        { t.m.Delete(uid) }
func (t *UIDTable[V]) Len() int                 { return t.m.Count() }
