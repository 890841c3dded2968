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

// Package geometry implements the rotation/flip/fine-rotation/autocrop
// stage and the coordinate mapper that keeps UI-space clicks coherent
// with pipeline-space pixels across that stage's transforms.
package geometry

// NormRect is a rectangle in normalized raw-space coordinates, as used
// by GeometryConfig.ManualCropRect and reported back by autocrop.
type NormRect struct {
	X1, Y1, X2, Y2 float64
}

// Config is the user-facing geometry slider set (spec §3 GeometryConfig).
type Config struct {
	// Rotation is a count of 90-degree counter-clockwise turns, 0-3.
	Rotation int

	// FineRotation is in degrees, [-5, 5].
	FineRotation float64

	FlipH, FlipV bool

	Autocrop       bool
	AutocropOffset float64 // pixels, at full resolution
	AutocropRatio  string  // e.g. "3:2", "Free"

	ManualCropRect *NormRect
}

// Clamp brings every field into its legal range, per spec §7 ("clamping
// is a contract, not a silent fix"): invalid input is corrected, not
// rejected.
func (c *Config) Clamp() {
	c.Rotation = ((c.Rotation % 4) + 4) % 4
	if c.FineRotation < -5 {
		c.FineRotation = -5
	} else if c.FineRotation > 5 {
		c.FineRotation = 5
	}
	if c.AutocropOffset < 0 {
		c.AutocropOffset = 0
	}
	if !validAspectRatio(c.AutocropRatio) {
		c.AutocropRatio = "3:2"
	}
}

// aspectRatios maps every recognised ratio name (plus its reversed
// form) to a w:h value greater than or equal to 1. "Free" and "1:1" are
// represented as a zero value meaning "no ratio constraint" and 1
// respectively.
var aspectRatios = map[string]float64{
	"Free":    0,
	"3:2":     3.0 / 2.0,
	"2:3":     3.0 / 2.0,
	"4:3":     4.0 / 3.0,
	"3:4":     4.0 / 3.0,
	"5:4":     5.0 / 4.0,
	"4:5":     5.0 / 4.0,
	"6:7":     7.0 / 6.0,
	"7:6":     7.0 / 6.0,
	"1:1":     1,
	"65:24":   65.0 / 24.0,
	"24:65":   65.0 / 24.0,
}

func validAspectRatio(ratio string) bool {
	_, ok := aspectRatios[ratio]
	return ok
}

// aspectRatioValue returns the w:h ratio (always >= 1) for a recognised
// name, defaulting to 3:2 for anything unrecognised.
func aspectRatioValue(ratio string) float64 {
	if v, ok := aspectRatios[ratio]; ok {
		return v
	}
	return 3.0 / 2.0
}
