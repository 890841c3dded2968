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

package settings

import (
	"fmt"
	"os"
	"sync"
)

// Disk is a file-backed table of named Entry values: global_settings'
// key/value table (spec §6.1 SettingsRepository), and the live-bound
// half of the CLI's --settings flag. Entries register themselves
// against a key with Add; Load/Save round-trip every registered entry
// to path in one "key :: value" line each.
type Disk struct {
	mu      sync.Mutex
	path    string
	entries map[string]Entry
	pending map[string]string
}

// NewDisk opens path (which need not yet exist) and loads whatever
// entries were already saved there into the pending table, to be
// claimed as matching entries are Add'd.
func NewDisk(path string) (*Disk, error) {
	d := &Disk{
		path:    path,
		entries: make(map[string]Entry),
		pending: make(map[string]string),
	}
	if err := d.Load(); err != nil {
		return nil, err
	}
	return d, nil
}

// Add registers v under key. If key was already present in the file
// loaded by Load, v is immediately restored from that saved value.
func (d *Disk) Add(key string, v Entry) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.entries[key]; exists {
		return fmt.Errorf("settings: duplicate key %q", key)
	}
	d.entries[key] = v

	if raw, ok := d.pending[key]; ok {
		delete(d.pending, key)
		return v.restore(raw)
	}
	return nil
}

// Lookup returns the entry registered for key, if any.
func (d *Disk) Lookup(key string) (Entry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.entries[key]
	return e, ok
}

// Load reads path and restores every already-registered entry found
// in it; keys with no matching entry yet are held in pending for a
// later Add. A missing file is not an error - it means nothing has
// been saved yet.
func (d *Disk) Load() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	raw, err := readFlatFile(d.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	for key, val := range raw {
		if e, ok := d.entries[key]; ok {
			if err := e.restore(val); err != nil {
				return fmt.Errorf("settings: restoring %q: %w", key, err)
			}
		} else {
			d.pending[key] = val
		}
	}
	return nil
}

// Save writes every registered entry to path, together with any key
// loaded from path that no entry has claimed yet, sorted by key so the
// file is stable across saves.
func (d *Disk) Save() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	flat := make(map[string]string, len(d.entries)+len(d.pending))
	for k, v := range d.pending {
		flat[k] = v
	}
	for k, e := range d.entries {
		flat[k] = e.String()
	}
	return writeFlatFile(d.path, flat)
}
