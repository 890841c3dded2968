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

// Package export implements the export compositor (spec §4.9):
// content sizing, paper framing, greyscale mode selection, an ICC
// transform hook and JPEG/TIFF encoding.
package export

import "github.com/jetsetilly/negpy/icc"

// Format names an output file format.
type Format string

const (
	JPEG Format = "jpeg"
	TIFF Format = "tiff"
)

// PaperRatio names a framed paper aspect ratio, or Original to skip
// framing entirely and export the content buffer as-is.
type PaperRatio string

const (
	PaperOriginal PaperRatio = "original"
	Paper4x6      PaperRatio = "4x6"
	Paper5x7      PaperRatio = "5x7"
	Paper8x10     PaperRatio = "8x10"
	PaperA4       PaperRatio = "a4"
	PaperSquare   PaperRatio = "square"
)

// paperAspect maps a PaperRatio to a width:height ratio >= 1 (the long
// edge over the short edge); orientation is resolved against the
// content's own aspect at framing time.
var paperAspect = map[PaperRatio]float64{
	Paper4x6:    6.0 / 4.0,
	Paper5x7:    7.0 / 5.0,
	Paper8x10:   10.0 / 8.0,
	PaperA4:     297.0 / 210.0,
	PaperSquare: 1,
}

// BorderColor is an sRGB border fill color, channel values in [0,1].
type BorderColor struct {
	R, G, B float64
}

var defaultBorderColor = BorderColor{R: 1, G: 1, B: 1}

// Config is the user-facing export slider set (spec §3 ExportConfig).
type Config struct {
	PrintSizeCM    float64 // long edge, centimetres
	DPI            int
	UseOriginalRes bool

	BorderSizeCM float64
	BorderColor  BorderColor

	PaperAspectRatio PaperRatio

	ColorSpace icc.ColorSpace
	Format     Format
}

// DefaultConfig returns the export defaults used when the CLI is
// invoked without sizing flags.
func DefaultConfig() Config {
	return Config{
		PrintSizeCM:      25.4, // 10 inches
		DPI:              300,
		PaperAspectRatio: PaperOriginal,
		BorderColor:      defaultBorderColor,
		ColorSpace:       icc.SRGB,
		Format:           JPEG,
	}
}

// Clamp brings every field into its legal range (spec §7's clamping
// contract).
func (c *Config) Clamp() {
	if c.PrintSizeCM <= 0 {
		c.PrintSizeCM = 25.4
	}
	if c.DPI <= 0 {
		c.DPI = 300
	}
	if c.BorderSizeCM < 0 {
		c.BorderSizeCM = 0
	}
	if _, ok := paperAspect[c.PaperAspectRatio]; !ok && c.PaperAspectRatio != PaperOriginal {
		c.PaperAspectRatio = PaperOriginal
	}
	if c.Format != JPEG && c.Format != TIFF {
		c.Format = JPEG
	}
}
