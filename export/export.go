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

package export

import (
	"github.com/jetsetilly/negpy/exposure"
	"github.com/jetsetilly/negpy/icc"
	"github.com/jetsetilly/negpy/imaging"
)

// Result is one export's encoded bytes plus the metadata a caller
// (the CLI, the batch worker) needs to pick a filename and extension.
type Result struct {
	Bytes  []byte
	Format Format
}

// Export runs the full compositor (spec §4.9) over a finished positive
// buf: content sizing, paper framing, greyscale mode selection, an
// optional ICC transform, then encoding. mode and toningActive decide
// greyscale mode selection; provider resolves the working and export
// ICC profiles.
func Export(buf *imaging.Buffer, cfg Config, mode exposure.ProcessMode, toningActive bool, provider *icc.Provider) (Result, error) {
	cfg.Clamp()

	content := buf
	if !cfg.UseOriginalRes {
		content = resizeContent(content, contentPixels(cfg))
	} else {
		content = content.Clone()
	}

	framed := frame(content, cfg)

	if wantsGreyscale(cfg, mode, toningActive) {
		framed = toGreyscale(framed)
	}

	working := icc.SRGB
	if provider != nil {
		framed = provider.Transform(framed, working, cfg.ColorSpace)
	}

	var profileBytes []byte
	if provider != nil {
		profileBytes = provider.Resolve(cfg.ColorSpace).Bytes
	}

	switch cfg.Format {
	case TIFF:
		b, err := encodeTIFF(framed, cfg.ColorSpace == icc.Greyscale)
		if err != nil {
			return Result{}, err
		}
		return Result{Bytes: b, Format: TIFF}, nil
	default:
		b, err := encodeJPEG(framed, cfg.DPI, profileBytes)
		if err != nil {
			return Result{}, err
		}
		return Result{Bytes: b, Format: JPEG}, nil
	}
}
