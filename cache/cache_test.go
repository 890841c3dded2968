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

package cache_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/negpy/cache"
	"github.com/jetsetilly/negpy/imaging"
)

func TestConfigFingerprintDeterministic(t *testing.T) {
	type cfg struct {
		Density float64
		Grade   float64
	}
	a := cfg{Density: 0.5, Grade: 1.2}
	b := cfg{Density: 0.5, Grade: 1.2}

	ha, err := cache.ConfigFingerprint(a)
	require.NoError(t, err)
	hb, err := cache.ConfigFingerprint(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
}

func TestConfigFingerprintDiffersOnChange(t *testing.T) {
	type cfg struct{ Density float64 }
	ha, _ := cache.ConfigFingerprint(cfg{Density: 0.5})
	hb, _ := cache.ConfigFingerprint(cfg{Density: 0.6})
	assert.NotEqual(t, ha, hb)
}

func TestConfigFingerprintMapKeyOrderIndependent(t *testing.T) {
	a := map[string]int{"a": 1, "b": 2}
	b := map[string]int{"b": 2, "a": 1}
	ha, _ := cache.ConfigFingerprint(a)
	hb, _ := cache.ConfigFingerprint(b)
	assert.Equal(t, ha, hb)
}

func TestSourceFingerprintDeterministic(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 3000)
	r1 := bytes.NewReader(data)
	r2 := bytes.NewReader(data)

	h1, err := cache.SourceFingerprint(r1, int64(len(data)))
	require.NoError(t, err)
	h2, err := cache.SourceFingerprint(r2, int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestSourceFingerprintDiffersOnContentChange(t *testing.T) {
	a := bytes.Repeat([]byte("x"), 3000)
	b := bytes.Repeat([]byte("y"), 3000)

	ha, err := cache.SourceFingerprint(bytes.NewReader(a), int64(len(a)))
	require.NoError(t, err)
	hb, err := cache.SourceFingerprint(bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)
	assert.NotEqual(t, ha, hb)
}

func TestStageCacheClearsOnSourceChange(t *testing.T) {
	c := cache.New()
	c.SetSource("src-a")
	c.Set(cache.Base, &cache.Entry{ConfigHash: "h1", Data: imaging.NewRGB(2, 2)})

	require.NotNil(t, c.Get(cache.Base))

	cleared := c.SetSource("src-b")
	assert.True(t, cleared)
	assert.Nil(t, c.Get(cache.Base))
}

func TestStageCacheNoOpOnSameSource(t *testing.T) {
	c := cache.New()
	c.SetSource("src-a")
	c.Set(cache.Base, &cache.Entry{ConfigHash: "h1", Data: imaging.NewRGB(2, 2)})

	cleared := c.SetSource("src-a")
	assert.False(t, cleared)
	assert.NotNil(t, c.Get(cache.Base))
}

func TestStageCacheInvalidate(t *testing.T) {
	c := cache.New()
	c.Set(cache.Lab, &cache.Entry{ConfigHash: "h1", Data: imaging.NewRGB(2, 2)})
	c.Invalidate(cache.Lab)
	assert.Nil(t, c.Get(cache.Lab))
}
