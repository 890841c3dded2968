// This file is part of negpy.
//
// negpy is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// negpy is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with negpy.  If not, see <https://www.gnu.org/licenses/>.

// Package settings implements the SettingsRepository collaborator
// (spec §6.1/§6.3): a typed key/value disk format for live-bound
// global options, and a flat-key serializer for per-file
// WorkspaceConfig snapshots, both using the same "key :: value" line
// grammar.
package settings

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// WarningBoilerPlate is written as the first line of every file this
// package saves.
const WarningBoilerPlate = "# this file is machine generated by negpy - edits will be overwritten"

// splitLine parses one "key :: value" line. Blank lines and anything
// that doesn't contain the separator are reported as !ok so callers
// can skip the boilerplate line and stray whitespace without erroring.
func splitLine(line string) (key, value string, ok bool) {
	const sep = " :: "
	i := strings.Index(line, sep)
	if i < 0 {
		return "", "", false
	}
	return line[:i], line[i+len(sep):], true
}

// writeFlatFile writes m as a sorted, boilerplate-prefixed key/value
// file. Sorting keeps the on-disk form stable across saves of the
// same config.
func writeFlatFile(path string, m map[string]string) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(WarningBoilerPlate)
	b.WriteString("\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s :: %s\n", k, m[k])
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// readFlatFile reads a file written by writeFlatFile back into a map.
// Returns an *os.PathError satisfying os.IsNotExist when path doesn't
// exist, so callers can distinguish "never saved" from a real error.
func readFlatFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := make(map[string]string)
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			if line == WarningBoilerPlate {
				continue
			}
		}
		if key, val, ok := splitLine(line); ok {
			out[key] = val
		}
	}
	return out, scanner.Err()
}
