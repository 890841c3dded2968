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

package gpu

import "sync"

// Usage names what a cached texture is for, so two passes that happen
// to want the same dimensions don't alias each other's storage.
type Usage int

const (
	UsageSource Usage = iota
	UsageIntermediate
	UsageOutput
)

// TextureKey identifies a cache slot: width, height, usage and an
// arbitrary label a caller assigns per named pass (spec §4.10: "a
// cache of intermediate textures keyed by (w, h, usage, label)").
type TextureKey struct {
	W, H  int
	Usage Usage
	Label string
}

// Texture is whatever payload a real backend would attach to a key;
// in this CPU-only module it's left as an opaque handle the caller
// defines, so the cache can be exercised by tests without a real GPU
// resource behind it.
type Texture struct {
	Key     TextureKey
	Handle  any
}

// Cache holds at most one Texture per TextureKey. Access is
// serialized with a mutex per spec §5's "texture cache access must be
// serialized" requirement, since the GPU device a real backend wraps
// is a process-wide singleton shared by every worker.
type Cache struct {
	mu      sync.Mutex
	entries map[TextureKey]*Texture
}

// NewCache returns an empty texture cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[TextureKey]*Texture)}
}

// Get returns the cached texture for key, or nil if none is cached.
func (c *Cache) Get(key TextureKey) *Texture {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key]
}

// Put stores t under its own key, replacing anything cached there.
func (c *Cache) Put(t *Texture) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[t.Key] = t
}

// Evict removes the cached entry for key, if any.
func (c *Cache) Evict(key TextureKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len reports how many textures are currently cached, for tests and
// diagnostics.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
