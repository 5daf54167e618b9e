// Copyright 2026 The fixmap Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fixmap implements a collision-free lookup table for a small,
// finite set of byte-string keys that is known in full before the table is
// built (weekday names, language keywords, header fields and the like).
//
// Rather than handling collisions, fixmap spends time at construction
// making sure there are none: a Strategy brute-forces a small parameter
// space until it finds a hash configuration under which every key of the
// set maps to a distinct slot of a fixed power-of-two table. Candidates
// are verified empirically, by inserting every key into a trial table and
// re-reading it, so nothing is assumed about the hash function itself.
// Lookups on the resulting Map are a single hash, one slot load and one
// key comparison: no probing, no chaining, and the table is never resized
// or rehashed.
//
// The search runs once, ahead of any lookup. It can also be run offline
// with the fixmap CLI under cmd/: a Params value is three integers that
// can be persisted and shipped, and a Map rebuilt from them without
// repeating the search.
//
// # Caveats
//
// The structure is deliberately narrow. Keys are fixed before the Map is
// usable; there is no way to add keys outside the verified set short of
// re-running the search. The design targets on the order of tens of keys.
// The hash is not adversarially resistant and makes no security claims.
//
// Put computes the slot index and replaces the occupant unconditionally:
// inserting a key outside the verified set may silently evict an unrelated
// canonical key whose index it happens to share. Construction code must
// only ever insert the exact key set the configuration was verified
// against.
//
// A built Map performs no internal synchronization. Reads are safe from
// any number of goroutines; Put and Delete require external single-writer
// exclusion.
package fixmap

import "fmt"

// invariants enables expensive self-checks after mutations. Keep false
// except when debugging.
const invariants = false

type slot[V any] struct {
	entry Entry[V]
	used  bool
}

// Map is a fixed-size map from byte-string keys to values, directly
// indexed by a frozen, verified hash configuration. The zero value is not
// usable; construct with New using a Config produced by a Strategy search
// (or persisted from an earlier one).
type Map[V any] struct {
	// cfg is the frozen hash configuration. It never changes after New.
	cfg Config
	// bounds is the length pre-filter for lookups.
	bounds Bounds
	// slots has exactly cfg.TableSize() cells and is never reallocated.
	slots []slot[V]
	used  int
}

// New constructs an empty Map sized to cfg.TableSize(). The Map only
// honors its collision-free guarantee for the key set cfg was searched
// over; bounds should be the KeyBounds of that same set.
func New[V any](cfg Config, bounds Bounds) *Map[V] {
	return &Map[V]{
		cfg:    cfg,
		bounds: bounds,
		slots:  make([]slot[V], cfg.TableSize()),
	}
}

// Get retrieves the value stored for key, with ok=false if the key is not
// present. Keys whose length falls outside the bounds are rejected before
// the hash is computed. The stored-key comparison is mandatory even on a
// verified table: Get accepts arbitrary strings, and a non-member hashing
// into an occupied slot must not be confused with the occupant.
func (m *Map[V]) Get(key string) (value V, ok bool) {
	if !m.bounds.Contains(len(key)) {
		return value, false
	}
	s := &m.slots[m.cfg.Index(key)]
	if !s.used || s.entry.Key != key {
		return value, false
	}
	return s.entry.Value, true
}

// Contains reports whether key is present.
func (m *Map[V]) Contains(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Put stores value under key, replacing the slot's occupant
// unconditionally and returning it if there was one. There is no bounds
// check and no distinction between updating a key and colliding with an
// unrelated one; see the package comment for the eviction hazard this
// implies for keys outside the verified set.
func (m *Map[V]) Put(key string, value V) (prev Entry[V], replaced bool) {
	s := &m.slots[m.cfg.Index(key)]
	prev, replaced = s.entry, s.used
	s.entry = Entry[V]{Key: key, Value: value}
	if !replaced {
		s.used = true
		m.used++
	}
	m.checkInvariants()
	return prev, replaced
}

// Delete clears the slot key maps to, returning the previous occupant if
// there was one. Like Put it is unconditional: the occupant is cleared
// even if its stored key differs from the argument.
func (m *Map[V]) Delete(key string) (prev Entry[V], ok bool) {
	s := &m.slots[m.cfg.Index(key)]
	prev, ok = s.entry, s.used
	*s = slot[V]{}
	if ok {
		m.used--
	}
	m.checkInvariants()
	return prev, ok
}

// Len returns the number of occupied slots.
func (m *Map[V]) Len() int {
	return m.used
}

// All calls yield for each entry in the map, in slot order. If yield
// returns false, iteration stops.
func (m *Map[V]) All(yield func(key string, value V) bool) {
	for i := range m.slots {
		if m.slots[i].used {
			e := m.slots[i].entry
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

func (m *Map[V]) checkInvariants() {
	if invariants {
		used := 0
		for i := range m.slots {
			if !m.slots[i].used {
				continue
			}
			used++
			e := m.slots[i].entry
			if j := m.cfg.Index(e.Key); j != i {
				panic(fmt.Sprintf("invariant failed: slot(%d) holds %q which hashes to %d", i, e.Key, j))
			}
		}
		if used != m.used {
			panic(fmt.Sprintf("invariant failed: found %d used slots, but used count is %d", used, m.used))
		}
	}
}
