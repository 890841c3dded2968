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

package export_test

import (
	"bytes"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/negpy/export"
	"github.com/jetsetilly/negpy/exposure"
	"github.com/jetsetilly/negpy/icc"
	"github.com/jetsetilly/negpy/imaging"
)

func gradientBuffer(h, w int) *imaging.Buffer {
	buf := imaging.NewRGB(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float32(x) / float32(w)
			buf.SetRGB(y, x, v, v, 1-v)
		}
	}
	return buf
}

func TestContentPixelsRespectsMinimum(t *testing.T) {
	cfg := export.Config{PrintSizeCM: 1, DPI: 10, BorderSizeCM: 10}
	cfg.Clamp()
	res, err := export.Export(gradientBuffer(8, 8), cfg, exposure.C41, false, nil)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(res.Bytes))
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 10, img.Bounds().Dy())
}

func TestExportJPEGDecodes(t *testing.T) {
	cfg := export.DefaultConfig()
	cfg.UseOriginalRes = true
	cfg.Format = export.JPEG

	res, err := export.Export(gradientBuffer(32, 48), cfg, exposure.C41, false, nil)
	require.NoError(t, err)
	assert.Equal(t, export.JPEG, res.Format)

	img, err := jpeg.Decode(bytes.NewReader(res.Bytes))
	require.NoError(t, err)
	assert.Equal(t, 48, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestExportTIFFProducesBytes(t *testing.T) {
	cfg := export.DefaultConfig()
	cfg.UseOriginalRes = true
	cfg.Format = export.TIFF

	res, err := export.Export(gradientBuffer(16, 16), cfg, exposure.C41, false, nil)
	require.NoError(t, err)
	assert.Equal(t, export.TIFF, res.Format)
	assert.Greater(t, len(res.Bytes), 0)
}

func TestExportGreyscaleForBWNoToning(t *testing.T) {
	cfg := export.DefaultConfig()
	cfg.UseOriginalRes = true

	res, err := export.Export(gradientBuffer(16, 16), cfg, exposure.BW, false, nil)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(res.Bytes))
	require.NoError(t, err)
	r0, g0, b0, _ := img.At(2, 2).RGBA()
	assert.InDelta(t, r0, g0, 1500)
	assert.InDelta(t, g0, b0, 1500)
}

func TestExportKeepsColorWhenToningActive(t *testing.T) {
	cfg := export.DefaultConfig()
	cfg.UseOriginalRes = true

	res, err := export.Export(gradientBuffer(16, 16), cfg, exposure.BW, true, nil)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(res.Bytes))
	require.NoError(t, err)
	r0, _, b0, _ := img.At(15, 0).RGBA()
	assert.NotEqual(t, r0, b0)
}

func TestExportPaperFramingAddsBorder(t *testing.T) {
	cfg := export.DefaultConfig()
	cfg.UseOriginalRes = true
	cfg.PaperAspectRatio = export.PaperSquare
	cfg.BorderSizeCM = 1

	res, err := export.Export(gradientBuffer(40, 60), cfg, exposure.C41, false, nil)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(res.Bytes))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds().Dx(), img.Bounds().Dy())
}

func TestICCProviderPassthrough(t *testing.T) {
	p := icc.NewProvider()
	profile := p.Resolve(icc.SRGB)
	assert.Equal(t, icc.SRGB, profile.Name)
	assert.Empty(t, profile.Bytes)

	buf := gradientBuffer(4, 4)
	out := p.Transform(buf, icc.SRGB, icc.AdobeRGB)
	assert.Equal(t, buf, out)
}
