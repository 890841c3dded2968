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

// Package retouch implements automatic dust detection and healing,
// manual spot healing with grain synthesis, and luminance-masked
// dodge/burn local adjustments.
package retouch

// Spot is one manually marked dust spot, in normalized raw-frame
// coordinates (spec §3 RetouchConfig.manual_dust_spots).
type Spot struct {
	NX, NY float64
	Size   float64 // pixels, at full resolution
}

// Adjustment is one dodge/burn local adjustment, its polyline points in
// normalized raw-frame coordinates.
type Adjustment struct {
	Points          []Point
	StrengthEV      float64
	RadiusPx        float64
	Feather         float64    // [0,1]
	LumaRange       [2]float64 // [0,1]^2
	LumaSoftness    float64    // [0,1]
}

// Point is a single normalized raw-frame coordinate.
type Point struct {
	NX, NY float64
}

// Config is the user-facing retouch slider set (spec §3 RetouchConfig).
type Config struct {
	DustRemove    bool
	DustThreshold float64 // [0.01, 1]
	DustSize      float64 // pixels

	ManualDustSpots  []Spot
	LocalAdjustments []Adjustment
}

// Clamp brings scalar fields into their legal range in place.
func (c *Config) Clamp() {
	c.DustThreshold = clamp(c.DustThreshold, 0.01, 1)
	if c.DustSize < 1 {
		c.DustSize = 1
	}
	for i := range c.LocalAdjustments {
		a := &c.LocalAdjustments[i]
		a.Feather = clamp(a.Feather, 0, 1)
		a.LumaSoftness = clamp(a.LumaSoftness, 0, 1)
		a.LumaRange[0] = clamp(a.LumaRange[0], 0, 1)
		a.LumaRange[1] = clamp(a.LumaRange[1], 0, 1)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
