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

package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fixmap/fixmap"
)

func DefineGenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "gen [keys...]",
		Short:        "Search for collision-free hash parameters for a key set",
		SilenceUsage: true,
		RunE:         RunGen,
	}

	cmd.Flags().StringP("keys-file", "f", "", "read keys from a file, one per line")
	cmd.Flags().Uint64P("max-iterations", "n", 1<<22, "search budget")
	cmd.Flags().IntP("parallelism", "p", 1, "shard the search across worker goroutines")
	cmd.Flags().StringP("output", "o", "", "write the parameters JSON to this file instead of stdout")

	return cmd
}

func RunGen(cmd *cobra.Command, args []string) error {
	keysFile, _ := cmd.Flags().GetString("keys-file")
	maxIterations, _ := cmd.Flags().GetUint64("max-iterations")
	parallelism, _ := cmd.Flags().GetInt("parallelism")
	output, _ := cmd.Flags().GetString("output")

	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	keys, err := readKeys(keysFile, args)
	if err != nil {
		return err
	}

	var opts []fixmap.Option
	if parallelism > 1 {
		opts = append(opts, fixmap.WithParallelism(parallelism))
	}

	start := time.Now()
	params, bounds, err := fixmap.Build(keys, maxIterations, opts...)
	if err != nil {
		log.Error("search failed",
			zap.Int("keys", len(keys)),
			zap.Uint64("max_iterations", maxIterations),
			zap.Error(err))
		return err
	}

	log.Info("search complete",
		zap.Int("keys", len(keys)),
		zap.Uint64("seed", params.Seed),
		zap.Uint64("mask", params.Mask),
		zap.Uint64("mask_offset", params.MaskOffset),
		zap.Int("table_size", params.TableSize()),
		zap.Duration("elapsed", time.Since(start)))

	return writeDoc(output, paramsDoc{
		Strategy:  "multiplicative",
		NumKeys:   len(keys),
		TableSize: params.TableSize(),
		Params:    params,
		Bounds:    bounds,
	})
}
