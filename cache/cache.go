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

package cache

import "github.com/jetsetilly/negpy/imaging"

// Entry is one cached stage result: the buffer it produced, the
// config fingerprint that produced it, and whatever metrics it
// published for downstream stages to merge back into the pipeline
// context.
type Entry struct {
	ConfigHash string
	Data       *imaging.Buffer
	Metrics    map[string]any
}

// Stage names the four cacheable pipeline stages, used only as map
// keys / lookups in Get and Set.
type Stage int

const (
	Base Stage = iota
	Exposure
	Retouch
	Lab
)

// StageCache owns at most one Entry per Stage, all invalidated
// together whenever the source fingerprint changes (spec §4.8, §3
// StageCache).
type StageCache struct {
	SourceHash string
	entries    [4]*Entry
}

// New returns an empty StageCache.
func New() *StageCache {
	return &StageCache{}
}

// Clear discards every cached entry without touching SourceHash.
func (c *StageCache) Clear() {
	c.entries = [4]*Entry{}
}

// SetSource clears the cache if hash differs from the currently
// cached source, then records hash as current. Returns true if the
// cache was cleared.
func (c *StageCache) SetSource(hash string) bool {
	if c.SourceHash == hash {
		return false
	}
	c.Clear()
	c.SourceHash = hash
	return true
}

// Get returns the cached entry for stage, or nil if none is cached.
func (c *StageCache) Get(stage Stage) *Entry {
	return c.entries[stage]
}

// Set stores e as the cached entry for stage.
func (c *StageCache) Set(stage Stage, e *Entry) {
	c.entries[stage] = e
}

// Invalidate discards the cached entry for stage, used when a stage
// fails mid-run (spec §4.7 Failure: "the cache entry for that stage is
// invalidated").
func (c *StageCache) Invalidate(stage Stage) {
	c.entries[stage] = nil
}
