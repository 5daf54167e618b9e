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

import "fmt"

// DefaultFixedCapacity is the table size FixedCapacity uses when none is
// specified. Generous relative to the tens-of-keys design target, which is
// what makes the one-dimensional seed search likely to succeed quickly.
const DefaultFixedCapacity = 4096

// FixedCapacity is a strategy that searches only over seeds, against a
// table whose size is chosen up front rather than grown. It trades memory
// for search time: with a table much larger than the key set, most seeds
// already avoid collisions.
type FixedCapacity struct {
	// Size is the table size. It must be a power of two; zero means
	// DefaultFixedCapacity.
	Size int
}

// fixedConfig is a frozen FixedCapacity result. The hash is a generic
// bit-mixing multiply: each byte is scaled by the seed and folded into the
// accumulator, and the low bits select the slot.
type fixedConfig struct {
	Seed uint64
	Size int
}

func (c fixedConfig) TableSize() int {
	return c.Size
}

func (c fixedConfig) Index(key string) int {
	acc := uint64(1)
	for i := 0; i < len(key); i++ {
		acc *= uint64(key[i]) * c.Seed
	}
	return int(acc & uint64(c.Size-1))
}

func (s FixedCapacity) Search(keys []string, maxIterations uint64) (Config, error) {
	size := s.Size
	if size == 0 {
		size = DefaultFixedCapacity
	}
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("fixmap: fixed capacity %d is not a power of two", s.Size)
	}
	if err := checkKeys(keys); err != nil {
		return nil, err
	}

	// Seed 0 would zero every per-byte product and collapse all keys into
	// one slot, so the scan starts at 1.
	cfg := fixedConfig{Seed: 1, Size: size}
	for it := uint64(0); ; it++ {
		if roundTrips(keys, cfg) {
			return cfg, nil
		}
		if it == maxIterations {
			return nil, fmt.Errorf("fixmap: no collision-free seed for %d keys in a %d-slot table after %d iterations: %w",
				len(keys), size, maxIterations, ErrExhausted)
		}
		cfg.Seed++
	}
}
