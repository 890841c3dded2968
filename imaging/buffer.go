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

// Package imaging holds the one shared data type every kernel in the
// pipeline operates on - a float32 RGB buffer in [0,1] - plus the
// conversions in and out of it. Nothing here is stage-specific; geometry,
// exposure, retouch, lab and toning all import it.
package imaging

import "github.com/chewxy/math32"

// Rec.709 luma coefficients.
const (
	LumaR = 0.2126
	LumaG = 0.7152
	LumaB = 0.0722
)

// Buffer is a row-major H*W*Channels array of float32 samples. Values
// are expected to lie in [0,1] once EnsureRGB/normalization has run, but
// intermediate stages (density space, log space) may briefly leave that
// range; only the pipeline's final output is contractually clamped.
type Buffer struct {
	Height, Width int
	Channels      int
	Pix           []float32
}

// New allocates a zeroed height x width buffer with the given channel
// count.
func New(height, width, channels int) *Buffer {
	return &Buffer{
		Height:   height,
		Width:    width,
		Channels: channels,
		Pix:      make([]float32, height*width*channels),
	}
}

// NewRGB allocates a zeroed 3-channel buffer.
func NewRGB(height, width int) *Buffer {
	return New(height, width, 3)
}

// Clone returns a deep copy. Stages that mutate a buffer read from the
// cache must clone first; the cache's entries are shared-read.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{Height: b.Height, Width: b.Width, Channels: b.Channels}
	out.Pix = make([]float32, len(b.Pix))
	copy(out.Pix, b.Pix)
	return out
}

// idx returns the sample offset for pixel (y, x), channel c.
func (b *Buffer) idx(y, x, c int) int {
	return (y*b.Width+x)*b.Channels + c
}

// At returns the value of channel c at (y, x).
func (b *Buffer) At(y, x, c int) float32 {
	return b.Pix[b.idx(y, x, c)]
}

// Set writes the value of channel c at (y, x).
func (b *Buffer) Set(y, x, c int, v float32) {
	b.Pix[b.idx(y, x, c)] = v
}

// RGB returns the three channel values at (y, x). Channels beyond 3 are
// ignored; buffers with fewer than 3 channels should have been passed
// through EnsureRGB first.
func (b *Buffer) RGB(y, x int) (r, g, bl float32) {
	i := b.idx(y, x, 0)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// SetRGB writes the three channel values at (y, x).
func (b *Buffer) SetRGB(y, x int, r, g, bl float32) {
	i := b.idx(y, x, 0)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = r, g, bl
}

// EnsureRGB normalises any of the channel layouts a RawLoader or an
// intermediate stage might hand back into a 3-channel buffer:
// 1-channel (or a buffer reporting 0/negative channels, treated as
// single-channel) is replicated across R, G, B; 3-channel passes
// through unchanged; 4-channel drops the alpha channel. Non-finite
// samples are replaced with 0 - this package never panics on bad input.
func EnsureRGB(b *Buffer) *Buffer {
	sanitize(b)

	switch {
	case b.Channels == 3:
		return b
	case b.Channels == 4:
		out := New(b.Height, b.Width, 3)
		for y := 0; y < b.Height; y++ {
			for x := 0; x < b.Width; x++ {
				r, g, bl := b.At(y, x, 0), b.At(y, x, 1), b.At(y, x, 2)
				out.SetRGB(y, x, r, g, bl)
			}
		}
		return out
	default:
		// 1-channel, or any other degenerate layout: replicate the
		// first channel across R, G, B.
		channels := b.Channels
		if channels < 1 {
			channels = 1
		}
		out := New(b.Height, b.Width, 3)
		for y := 0; y < b.Height; y++ {
			for x := 0; x < b.Width; x++ {
				v := b.Pix[(y*b.Width+x)*channels]
				out.SetRGB(y, x, v, v, v)
			}
		}
		return out
	}
}

// sanitize replaces every non-finite sample with 0 in place.
func sanitize(b *Buffer) {
	for i, v := range b.Pix {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			b.Pix[i] = 0
		}
	}
}

// FromUint16 builds a buffer from a 16-bit linear source, scaling each
// sample by 1/65535.
func FromUint16(data []uint16, height, width, channels int) *Buffer {
	b := New(height, width, channels)
	for i, v := range data {
		b.Pix[i] = float32(v) / 65535
	}
	return b
}

// FromUint8 builds a buffer from an 8-bit source, scaling each sample
// by 1/255.
func FromUint8(data []uint8, height, width, channels int) *Buffer {
	b := New(height, width, channels)
	for i, v := range data {
		b.Pix[i] = float32(v) / 255
	}
	return b
}

func clip01(v float32) float32 {
	if math32.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ToUint8 clips each (nan-sanitised) sample to [0,1], scales by 255 and
// truncates toward zero, matching float_to_uint8's documented rounding.
func (b *Buffer) ToUint8() []uint8 {
	out := make([]uint8, len(b.Pix))
	for i, v := range b.Pix {
		out[i] = uint8(clip01(v) * 255)
	}
	return out
}

// ToUint16 is ToUint8's 16-bit counterpart, used by the TIFF encoder
// when the source buffer warrants the extra precision.
func (b *Buffer) ToUint16() []uint16 {
	out := make([]uint16, len(b.Pix))
	for i, v := range b.Pix {
		out[i] = uint16(clip01(v) * 65535)
	}
	return out
}

// Luma returns the Rec.709 luma of every pixel as a single-channel
// slice in row-major (y*Width+x) order. The input must be 3-channel;
// call EnsureRGB first if it might not be.
func Luma(b *Buffer) []float32 {
	out := make([]float32, b.Height*b.Width)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			r, g, bl := b.RGB(y, x)
			out[y*b.Width+x] = LumaR*r + LumaG*g + LumaB*bl
		}
	}
	return out
}

// Clamp01 clips every sample to [0,1] in place, replacing non-finite
// values with 0 first. The final pipeline output must pass through
// this before being handed to a caller.
func (b *Buffer) Clamp01() {
	for i, v := range b.Pix {
		b.Pix[i] = clip01(v)
	}
}

// Finite reports whether every sample is a finite number. Used by
// property-based tests asserting invariant 1 from the spec.
func (b *Buffer) Finite() bool {
	for _, v := range b.Pix {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// InRange01 reports whether every sample lies in [0,1].
func (b *Buffer) InRange01() bool {
	for _, v := range b.Pix {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}
