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

package fixmap

// Config is a frozen, verified hash configuration: the output of a
// Strategy's search. A Config maps arbitrary byte strings to slot indices
// in [0, TableSize()) and guarantees distinct indices only for the exact
// key set it was searched over.
type Config interface {
	// TableSize returns the slot count of tables built from this config,
	// always a power of two.
	TableSize() int

	// Index maps a key to a slot index in [0, TableSize()). It never
	// fails; keys outside the verified set map somewhere too, they just
	// carry no distinctness guarantee.
	Index(key string) int
}

// A Strategy searches a family of hash functions for a configuration that
// maps every key of a fixed set to a distinct slot. Implementations differ
// only in the shape of the parameter space they walk; all of them verify
// candidates the same way, by inserting every key into a trial table and
// re-reading it.
//
// Three strategies are provided: Multiplicative (seed/mask/offset with a
// growing table), FixedCapacity (seed only, caller-chosen table size), and
// Weighted (per-byte weight vectors). A deployment picks one.
type Strategy interface {
	// Search returns a verified Config for keys, or ErrExhausted if no
	// collision-free configuration was found within maxIterations
	// parameter advances. A nil error guarantees the returned Config
	// round-trips every key.
	Search(keys []string, maxIterations uint64) (Config, error)
}

var (
	_ Strategy = Multiplicative{}
	_ Strategy = FixedCapacity{}
	_ Strategy = Weighted{}

	_ Config = Params{}
	_ Config = fixedConfig{}
	_ Config = (*weightedConfig)(nil)
)

// roundTrips reports whether cfg assigns a distinct slot to every key. It
// inserts all keys into a trial table (later inserts silently overwrite
// earlier ones on an index collision) and then re-reads each one: a key
// that no longer retrieves its own value was overwritten, so cfg collides.
// The re-read, not the insert, is what detects collisions.
func roundTrips(keys []string, cfg Config) bool {
	m := New[int](cfg, KeyBounds(keys))
	for i, k := range keys {
		m.Put(k, i)
	}
	for i, k := range keys {
		if v, ok := m.Get(k); !ok || v != i {
			return false
		}
	}
	return true
}
