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

// Params is a frozen hash configuration for the multiplicative strategy:
// three integers discovered once by Build and never changed afterwards. A
// Params value found for one key set is meaningless for any other key set.
//
// The table size derived from a Params is always a power of two: Mask is a
// contiguous run of set bits starting at bit MaskOffset.
type Params struct {
	Seed       uint64 `json:"seed"`
	Mask       uint64 `json:"mask"`
	MaskOffset uint64 `json:"mask_offset"`
}

// TableSize returns the number of slots a table built from p must have.
func (p Params) TableSize() int {
	return int(p.Mask>>p.MaskOffset) + 1
}

// Index maps a key to a table slot. The accumulator starts at 1 and for
// each byte b becomes acc*b - Seed with silent uint64 wrapping; the final
// index is the Mask window of the accumulator. A zero byte collapses the
// accumulator for the rest of the scan, which is tolerated: correctness
// comes from the round-trip verification performed during the search, not
// from any algebraic property of this function.
func (p Params) Index(key string) int {
	acc := uint64(1)
	for i := 0; i < len(key); i++ {
		acc = acc*uint64(key[i]) - p.Seed
	}
	return int((acc & p.Mask) >> p.MaskOffset)
}

// Bounds is the inclusive byte-length range observed over a key set. Get
// uses it to reject queries without hashing them. It is purely an
// optimization: the stored-key comparison already rejects non-members.
type Bounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether a key of length n falls within the bounds.
func (b Bounds) Contains(n int) bool {
	return n >= b.Min && n <= b.Max
}

// KeyBounds computes the length bounds of a key set.
func KeyBounds(keys []string) Bounds {
	var b Bounds
	for i, k := range keys {
		if i == 0 || len(k) < b.Min {
			b.Min = len(k)
		}
		if len(k) > b.Max {
			b.Max = len(k)
		}
	}
	return b
}

// Entry is an occupant of a table slot.
type Entry[V any] struct {
	Key   string
	Value V
}
