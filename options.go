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

// Option configures a call to Build.
type Option interface {
	apply(*buildOptions)
}

type buildOptions struct {
	parallelism int
	start       Params
	hasStart    bool
}

type parallelismOption int

func (o parallelismOption) apply(bo *buildOptions) {
	bo.parallelism = int(o)
}

// WithParallelism shards the parameter search across n worker goroutines.
// The accepted result is the one the serial search would have found, so
// the output stays deterministic. Values of n below 2 leave the search
// serial.
func WithParallelism(n int) Option {
	return parallelismOption(n)
}

type startOption Params

func (o startOption) apply(bo *buildOptions) {
	bo.start = Params(o)
	bo.hasStart = true
}

// WithInitialParams starts the search at p instead of the 2-slot initial
// configuration. Useful to resume an exhausted search with a larger budget
// without re-walking the space already covered.
func WithInitialParams(p Params) Option {
	return startOption(p)
}
