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

package exposure

import (
	"math"
	"sort"

	"github.com/jetsetilly/negpy/imaging"
)

// epsilon is the floor clip applied before taking log10, and the
// minimum legal span between a channel's floor and ceiling.
const epsilon = 1e-6

// Bounds is the per-channel log10-space measurement a RAW negative's
// floor and ceiling, used to normalize the image to [0,1] before the
// characteristic curve runs.
type Bounds struct {
	Floors [3]float64
	Ceils  [3]float64
}

// Span returns the measured dynamic range of channel c, never below
// epsilon.
func (b Bounds) Span(c int) float64 {
	s := b.Ceils[c] - b.Floors[c]
	if s < epsilon {
		return epsilon
	}
	return s
}

// Region restricts a Measure pass to a sub-rectangle of the buffer; a
// zero-value Region (Y2/X2 both 0) means the full frame.
type Region struct {
	Y1, Y2, X1, X2 int
}

func (r Region) full(height, width int) Region {
	if r.Y2 == 0 && r.X2 == 0 {
		return Region{0, height, 0, width}
	}
	return r
}

// Measure computes Bounds as the 1st and 99.5th per-channel percentiles
// of log10(clip(img, epsilon, 1)) within region (or the whole buffer
// when region is zero-valued).
func Measure(buf *imaging.Buffer, region Region) Bounds {
	r := region.full(buf.Height, buf.Width)

	var samples [3][]float64
	for c := 0; c < 3; c++ {
		samples[c] = make([]float64, 0, (r.Y2-r.Y1)*(r.X2-r.X1))
	}

	for y := r.Y1; y < r.Y2; y++ {
		for x := r.X1; x < r.X2; x++ {
			for c := 0; c < 3; c++ {
				v := float64(buf.At(y, x, c))
				v = clip(v, epsilon, 1)
				samples[c] = append(samples[c], math.Log10(v))
			}
		}
	}

	var b Bounds
	for c := 0; c < 3; c++ {
		b.Floors[c] = percentile(samples[c], 1)
		b.Ceils[c] = percentile(samples[c], 99.5)
		if b.Ceils[c]-b.Floors[c] < epsilon {
			b.Ceils[c] = b.Floors[c] + epsilon
		}
	}
	return b
}

// percentile returns the p-th percentile (0-100) of data using linear
// interpolation between closest ranks. data is sorted in place.
func percentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sort.Float64s(data)
	if len(data) == 1 {
		return data[0]
	}
	rank := (p / 100) * float64(len(data)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return data[lo]
	}
	frac := rank - float64(lo)
	return data[lo]*(1-frac) + data[hi]*frac
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
