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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixedCapacitySearch(t *testing.T) {
	cfg, err := FixedCapacity{}.Search(days, 1<<20)
	require.NoError(t, err)
	require.Equal(t, DefaultFixedCapacity, cfg.TableSize())

	seen := make(map[int]string, len(days))
	for _, day := range days {
		i := cfg.Index(day)
		require.GreaterOrEqual(t, i, 0)
		require.Less(t, i, cfg.TableSize())
		prev, dup := seen[i]
		require.False(t, dup, "%q and %q share index %d", prev, day, i)
		seen[i] = day
	}

	m := New[int](cfg, KeyBounds(days))
	for i, day := range days {
		m.Put(day, i+1)
	}
	for i, day := range days {
		v, ok := m.Get(day)
		require.True(t, ok)
		require.Equal(t, i+1, v)
	}
	_, ok := m.Get("funday")
	require.False(t, ok)
}

func TestFixedCapacitySize(t *testing.T) {
	cfg, err := FixedCapacity{Size: 256}.Search(days, 1<<20)
	require.NoError(t, err)
	require.Equal(t, 256, cfg.TableSize())

	_, err = FixedCapacity{Size: 3}.Search(days, 100)
	require.ErrorContains(t, err, "power of two")

	_, err = FixedCapacity{Size: -8}.Search(days, 100)
	require.Error(t, err)
}

func TestFixedCapacityExhausted(t *testing.T) {
	// Three keys can never occupy distinct slots of a 2-slot table.
	_, err := FixedCapacity{Size: 2}.Search([]string{"one", "two", "three"}, 50)
	require.ErrorIs(t, err, ErrExhausted)
}
