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
	"errors"
	"fmt"
	"math"
	"math/bits"
	"sync"
	"sync/atomic"
)

// ErrExhausted is returned when a search runs out of iterations before
// finding a collision-free configuration. The caller decides whether to
// retry with a larger budget, accept a larger table via a different
// strategy, or fall back to an ordinary map.
var ErrExhausted = errors.New("fixmap: search budget exhausted")

// initialParams is where the multiplicative search starts: a 2-slot table.
var initialParams = Params{Seed: 0, Mask: 1, MaskOffset: 0}

// Build searches for a Params under which every key maps to a distinct
// slot, and returns it together with the key set's length bounds. The
// candidate under the initial parameters is always tried, so even
// maxIterations=0 can succeed for key sets the initial 2-slot table
// already separates (e.g. a single key).
//
// The search is a bounded brute force over (seed, mask, maskOffset):
// growing the table monotonically lowers the expected number of
// collisions, but success within the budget is not guaranteed, hence
// ErrExhausted. It runs once, ahead of any lookup, so the
// O(iterations * |keys| * keylen) cost is paid off the hot path.
func Build(keys []string, maxIterations uint64, opts ...Option) (Params, Bounds, error) {
	if err := checkKeys(keys); err != nil {
		return Params{}, Bounds{}, err
	}
	bounds := KeyBounds(keys)

	var bo buildOptions
	for _, o := range opts {
		o.apply(&bo)
	}
	start := initialParams
	if bo.hasStart {
		start = bo.start
	}

	if bo.parallelism > 1 {
		p, err := searchParallel(keys, start, maxIterations, bo.parallelism)
		return p, bounds, err
	}
	p, err := searchSerial(keys, start, maxIterations)
	return p, bounds, err
}

// Multiplicative is the default strategy: the growing-mask search
// performed by Build, adapted to the Strategy interface.
type Multiplicative struct{}

func (Multiplicative) Search(keys []string, maxIterations uint64) (Config, error) {
	p, _, err := Build(keys, maxIterations)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func searchSerial(keys []string, p Params, maxIterations uint64) (Params, error) {
	for it := uint64(0); ; it++ {
		if roundTrips(keys, p) {
			return p, nil
		}
		if it == maxIterations {
			return Params{}, fmt.Errorf("fixmap: no collision-free params for %d keys after %d iterations: %w",
				len(keys), maxIterations, ErrExhausted)
		}
		p = nextParams(p)
	}
}

// nextParams advances the search one step. Seeds are exhausted first
// (every value the current table width can represent), then the mask
// window slides up one bit at a time, and only when the window can no
// longer fit in a native word is the mask widened by one bit, doubling
// the table, with the offset reset to zero.
func nextParams(p Params) Params {
	// size is tableSize-1: a run of bits.Len64(size) set bits.
	size := p.Mask >> p.MaskOffset
	if p.Seed < size {
		p.Seed++
		return p
	}
	p.Seed = 0
	width := uint64(bits.Len64(size))
	if p.MaskOffset+width < 64 {
		p.Mask <<= 1
		p.MaskOffset++
		return p
	}
	p.Mask = size<<1 | 1
	p.MaskOffset = 0
	return p
}

// searchParallel shards the deterministic parameter sequence across
// workers: worker j tries iterations j, j+n, j+2n, ... Each worker stops
// once its iteration index can no longer beat the best success seen so
// far, and the success with the lowest iteration index wins, so the result
// matches what the serial search would have returned.
func searchParallel(keys []string, start Params, maxIterations uint64, workers int) (Params, error) {
	var (
		mu     sync.Mutex
		best   Params
		bestOK bool
		bestIt atomic.Uint64
		wg     sync.WaitGroup
	)
	bestIt.Store(math.MaxUint64)

	for j := 0; j < workers; j++ {
		wg.Add(1)
		go func(j int) {
			defer wg.Done()
			p := start
			for k := 0; k < j; k++ {
				p = nextParams(p)
			}
			for it := uint64(j); it <= maxIterations; it += uint64(workers) {
				if it >= bestIt.Load() {
					return
				}
				if roundTrips(keys, p) {
					mu.Lock()
					if it < bestIt.Load() {
						best, bestOK = p, true
					}
					for cur := bestIt.Load(); it < cur; cur = bestIt.Load() {
						if bestIt.CompareAndSwap(cur, it) {
							break
						}
					}
					mu.Unlock()
					return
				}
				for k := 0; k < workers; k++ {
					p = nextParams(p)
				}
			}
		}(j)
	}
	wg.Wait()

	if !bestOK {
		return Params{}, fmt.Errorf("fixmap: no collision-free params for %d keys after %d iterations: %w",
			len(keys), maxIterations, ErrExhausted)
	}
	return best, nil
}

// checkKeys rejects the inputs that make slot ownership undefined before
// any search work is done.
func checkKeys(keys []string) error {
	if len(keys) == 0 {
		return errors.New("fixmap: empty key set")
	}
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			return fmt.Errorf("fixmap: duplicate key %q", k)
		}
		seen[k] = struct{}{}
	}
	return nil
}
