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

import (
	"fmt"
	"math/rand"
)

const (
	// defaultMaxWeight bounds the candidate weights. Small weights keep
	// the sum range, and therefore the useful table size, small.
	defaultMaxWeight = 8

	// weightedGrowInterval is how many failed candidate vectors are tried
	// at a table size before the table is doubled.
	weightedGrowInterval = 64

	// weightedMaxBits caps table growth. Past 2^16 slots the weighted sum
	// of a short key cannot populate the index range anyway.
	weightedMaxBits = 16
)

// Weighted is a strategy that assigns each byte value a small integer
// weight; a key's index is the sum of its bytes' weights reduced by the
// table mask. Only bytes that actually occur in the key set receive
// nonzero weights.
//
// Candidate weight vectors are enumerated deterministically (the iteration
// number seeds the generator), verified by the same insert-then-re-read
// round trip as the other strategies, and the table doubles on a fixed
// schedule while candidates keep failing.
type Weighted struct {
	// MaxWeight is the largest weight a byte may receive; zero means
	// defaultMaxWeight.
	MaxWeight int
}

// weightedConfig is a frozen Weighted result.
type weightedConfig struct {
	Weights [256]uint16
	Mask    uint64
}

func (c *weightedConfig) TableSize() int {
	return int(c.Mask) + 1
}

func (c *weightedConfig) Index(key string) int {
	var sum uint64
	for i := 0; i < len(key); i++ {
		sum += uint64(c.Weights[key[i]])
	}
	return int(sum & c.Mask)
}

func (s Weighted) Search(keys []string, maxIterations uint64) (Config, error) {
	maxWeight := s.MaxWeight
	if maxWeight == 0 {
		maxWeight = defaultMaxWeight
	}
	if maxWeight < 0 || maxWeight > 1<<15 {
		return nil, fmt.Errorf("fixmap: max weight %d out of range", s.MaxWeight)
	}
	if err := checkKeys(keys); err != nil {
		return nil, err
	}

	var present [256]bool
	for _, k := range keys {
		for i := 0; i < len(k); i++ {
			present[k[i]] = true
		}
	}

	// Start at the smallest power of two that can hold the key set.
	size := 1
	for size < len(keys) {
		size <<= 1
	}

	cfg := &weightedConfig{Mask: uint64(size - 1)}
	for it := uint64(0); ; it++ {
		rng := rand.New(rand.NewSource(int64(it)))
		for b := range cfg.Weights {
			if present[b] {
				cfg.Weights[b] = uint16(rng.Intn(maxWeight + 1))
			} else {
				cfg.Weights[b] = 0
			}
		}
		if roundTrips(keys, cfg) {
			return cfg, nil
		}
		if it == maxIterations {
			return nil, fmt.Errorf("fixmap: no collision-free weight vector for %d keys after %d iterations: %w",
				len(keys), maxIterations, ErrExhausted)
		}
		if (it+1)%weightedGrowInterval == 0 && cfg.Mask+1 < 1<<weightedMaxBits {
			cfg.Mask = cfg.Mask<<1 | 1
		}
	}
}
