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
	"io"
	"testing"

	"github.com/aclements/go-perfevent/perfbench"
)

// missWords never round-trip: "funday" fails the stored-key comparison,
// the others fail the length bounds.
var missWords = []string{"funday", "mon", "wed", "january", "wednesdays"}

func benchConfigs(b *testing.B) map[string]Config {
	b.Helper()
	params, _, err := Build(days, 1<<22)
	if err != nil {
		b.Fatal(err)
	}
	fixed, err := FixedCapacity{}.Search(days, 1<<20)
	if err != nil {
		b.Fatal(err)
	}
	weighted, err := Weighted{}.Search(days, 1<<20)
	if err != nil {
		b.Fatal(err)
	}
	return map[string]Config{
		"multiplicative": params,
		"fixedCapacity":  fixed,
		"weighted":       weighted,
	}
}

func BenchmarkGetHit(b *testing.B) {
	b.Run("impl=runtimeMap", func(b *testing.B) {
		m := make(map[string]int, len(days))
		for i, day := range days {
			m[day] = i + 1
		}
		cs := perfbench.Open(b)
		b.ResetTimer()
		var v int
		for i := 0; i < b.N; i++ {
			v = m[days[i%len(days)]]
		}
		b.StopTimer()
		cs.Stop()
		fmt.Fprint(io.Discard, v)
	})

	for name, cfg := range benchConfigs(b) {
		b.Run("impl=fixmap/strategy="+name, func(b *testing.B) {
			m := New[int](cfg, KeyBounds(days))
			for i, day := range days {
				m.Put(day, i+1)
			}
			cs := perfbench.Open(b)
			b.ResetTimer()
			var v int
			for i := 0; i < b.N; i++ {
				v, _ = m.Get(days[i%len(days)])
			}
			b.StopTimer()
			cs.Stop()
			fmt.Fprint(io.Discard, v)
		})
	}
}

func BenchmarkGetMiss(b *testing.B) {
	b.Run("impl=runtimeMap", func(b *testing.B) {
		m := make(map[string]int, len(days))
		for i, day := range days {
			m[day] = i + 1
		}
		cs := perfbench.Open(b)
		b.ResetTimer()
		var ok bool
		for i := 0; i < b.N; i++ {
			_, ok = m[missWords[i%len(missWords)]]
		}
		b.StopTimer()
		cs.Stop()
		fmt.Fprint(io.Discard, ok)
	})

	for name, cfg := range benchConfigs(b) {
		b.Run("impl=fixmap/strategy="+name, func(b *testing.B) {
			m := New[int](cfg, KeyBounds(days))
			for i, day := range days {
				m.Put(day, i+1)
			}
			cs := perfbench.Open(b)
			b.ResetTimer()
			var ok bool
			for i := 0; i < b.N; i++ {
				_, ok = m.Get(missWords[i%len(missWords)])
			}
			b.StopTimer()
			cs.Stop()
			fmt.Fprint(io.Discard, ok)
		})
	}
}

func BenchmarkBuild(b *testing.B) {
	b.Run("strategy=multiplicative", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, _, err := Build(days, 1<<22); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("strategy=fixedCapacity", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := (FixedCapacity{}).Search(days, 1<<20); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("strategy=weighted", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := (Weighted{}).Search(days, 1<<20); err != nil {
				b.Fatal(err)
			}
		}
	})
}
