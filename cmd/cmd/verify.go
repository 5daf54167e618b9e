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
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fixmap/fixmap"
)

func DefineVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "verify <params.json> [keys...]",
		Short:        "Re-check persisted parameters against a key set",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunVerify,
	}

	cmd.Flags().StringP("keys-file", "f", "", "read keys from a file, one per line")

	return cmd
}

func RunVerify(cmd *cobra.Command, args []string) error {
	keysFile, _ := cmd.Flags().GetString("keys-file")

	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	doc, err := readDoc(args[0])
	if err != nil {
		return err
	}
	keys, err := readKeys(keysFile, args[1:])
	if err != nil {
		return err
	}

	if doc.NumKeys != len(keys) {
		return fmt.Errorf("params were generated for %d keys, got %d", doc.NumKeys, len(keys))
	}
	if got := doc.Params.TableSize(); got != doc.TableSize {
		return fmt.Errorf("table size %d does not match parameters (%d)", doc.TableSize, got)
	}

	// The same round trip the search uses to accept parameters: insert
	// every key, then make sure each one still retrieves its own value.
	m := fixmap.New[int](doc.Params, doc.Bounds)
	for i, k := range keys {
		m.Put(k, i)
	}
	for i, k := range keys {
		if v, ok := m.Get(k); !ok || v != i {
			return fmt.Errorf("parameters do not round-trip key %q: table index collides", k)
		}
	}

	log.Info("parameters verified",
		zap.Int("keys", len(keys)),
		zap.Int("table_size", doc.TableSize),
		zap.Uint64("seed", doc.Params.Seed))
	return nil
}
