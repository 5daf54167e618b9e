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
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sugawarayuuta/sonnet"

	"github.com/fixmap/fixmap"
)

// paramsDoc is the persisted artifact of an offline search: the frozen
// parameters plus the metadata needed to rebuild and re-verify a table
// without repeating the search.
type paramsDoc struct {
	Strategy  string        `json:"strategy"`
	NumKeys   int           `json:"num_keys"`
	TableSize int           `json:"table_size"`
	Params    fixmap.Params `json:"params"`
	Bounds    fixmap.Bounds `json:"bounds"`
}

// readKeys returns the key set from a file (one key per line, blank lines
// skipped) or, when no file is given, from the command line arguments.
func readKeys(path string, args []string) ([]string, error) {
	if path == "" {
		if len(args) == 0 {
			return nil, errors.New("no keys given: pass them as arguments or via --keys-file")
		}
		return args, nil
	}
	if len(args) > 0 {
		return nil, errors.New("keys given both as arguments and via --keys-file")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var keys []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimRight(sc.Text(), "\r"); line != "" {
			keys = append(keys, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no keys found in %s", path)
	}
	return keys, nil
}

// writeDoc marshals the document to path, or to stdout when path is empty.
func writeDoc(path string, doc paramsDoc) error {
	data, err := sonnet.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readDoc(path string) (paramsDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return paramsDoc{}, err
	}
	var doc paramsDoc
	if err := sonnet.Unmarshal(data, &doc); err != nil {
		return paramsDoc{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}
