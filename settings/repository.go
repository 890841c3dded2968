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
	"path/filepath"
	"reflect"
	"sync"

	"github.com/jetsetilly/negpy/pipeline"
)

// Repository implements the SettingsRepository collaborator (spec
// §6.1): a file_settings table (filehash -> serialized
// WorkspaceConfig) and a global_settings table (key -> value), both
// persisted under dir.
type Repository struct {
	mu     sync.Mutex
	dir    string
	global *Disk
}

// NewRepository opens (creating if necessary) a settings repository
// rooted at dir.
func NewRepository(dir string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Join(dir, "file_settings"), 0o755); err != nil {
		return nil, fmt.Errorf("settings: preparing %s: %w", dir, err)
	}

	g, err := NewDisk(filepath.Join(dir, "global_settings"))
	if err != nil {
		return nil, err
	}

	return &Repository{dir: dir, global: g}, nil
}

func (r *Repository) fileSettingsPath(hash string) string {
	return filepath.Join(r.dir, "file_settings", hash+".settings")
}

// LoadWorkspaceConfig reads a single standalone WorkspaceConfig
// snapshot from path (the CLI's --settings flag, spec §6.2), layered
// over defaults the same way LoadFileConfig is. It does not belong to
// a Repository: --settings names one file directly rather than a
// per-file-hash slot in a persistent store.
func LoadWorkspaceConfig(path string, defaults pipeline.WorkspaceConfig) (pipeline.WorkspaceConfig, error) {
	flat, err := readFlatFile(path)
	if err != nil {
		return pipeline.WorkspaceConfig{}, fmt.Errorf("settings: reading %s: %w", path, err)
	}

	cfg := defaults
	unflatten("", reflect.ValueOf(&cfg).Elem(), flat)
	return cfg, nil
}

// SaveWorkspaceConfig writes cfg to path in the same flat format
// LoadWorkspaceConfig reads.
func SaveWorkspaceConfig(path string, cfg pipeline.WorkspaceConfig) error {
	flat := make(map[string]string)
	flatten("", reflect.ValueOf(cfg), flat)
	return writeFlatFile(path, flat)
}

// SaveFileConfig flattens cfg and writes it under hash (spec §6.3).
func (r *Repository) SaveFileConfig(hash string, cfg pipeline.WorkspaceConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	flat := make(map[string]string)
	flatten("", reflect.ValueOf(cfg), flat)
	return writeFlatFile(r.fileSettingsPath(hash), flat)
}

// LoadFileConfig reads hash's saved config over top of defaults.
// Missing keys - including the whole file being absent - inherit
// defaults; unrecognized keys are ignored. The bool result reports
// whether a saved file existed at all.
func (r *Repository) LoadFileConfig(hash string, defaults pipeline.WorkspaceConfig) (pipeline.WorkspaceConfig, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	flat, err := readFlatFile(r.fileSettingsPath(hash))
	if os.IsNotExist(err) {
		return defaults, false, nil
	}
	if err != nil {
		return defaults, false, err
	}

	cfg := defaults
	unflatten("", reflect.ValueOf(&cfg).Elem(), flat)
	return cfg, true, nil
}

// SaveGlobal persists key = v, registering a typed Entry for it the
// first time key is used.
func (r *Repository) SaveGlobal(key string, v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.globalEntry(key, v)
	if err != nil {
		return err
	}
	if err := e.(interface{ Set(any) error }).Set(v); err != nil {
		return err
	}
	return r.global.Save()
}

// GetGlobal returns key's stored value, or def if key has never been
// saved (or was saved as an incompatible type).
func (r *Repository) GetGlobal(key string, def any) any {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.global.Lookup(key)
	if !ok {
		return def
	}
	switch t := e.(type) {
	case *Bool:
		return t.Get()
	case *Float:
		return t.Get()
	case *Int:
		return t.Get()
	case *String:
		return t.String()
	default:
		return def
	}
}

// globalEntry returns the Entry already registered for key, or
// registers one shaped like seed's Go type.
func (r *Repository) globalEntry(key string, seed any) (Entry, error) {
	if e, ok := r.global.Lookup(key); ok {
		return e, nil
	}

	var e Entry
	switch seed.(type) {
	case bool:
		e = &Bool{}
	case float64:
		e = &Float{}
	case int:
		e = &Int{}
	case string:
		e = &String{}
	default:
		return nil, fmt.Errorf("settings: unsupported global value type %T", seed)
	}

	if err := r.global.Add(key, e); err != nil {
		return nil, err
	}
	return e, nil
}
