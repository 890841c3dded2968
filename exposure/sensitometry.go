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

	"github.com/jetsetilly/negpy/imaging"
)

// sensitometryPercentiles are the log-space percentiles a histogram or
// curve-plot caller wants per channel, distinct from the 1/99.5 pair
// Measure uses to set normalization bounds.
var sensitometryPercentiles = []float64{1, 10, 25, 50, 75, 90, 99}

// Analysis is the read-only sensitometric readout of a negative: its
// measured bounds plus a fuller percentile ladder, for UI histogram and
// curve-plot callers that want more than the two points Measure uses to
// drive normalization.
type Analysis struct {
	Bounds      Bounds
	Percentiles [3]map[float64]float64
}

// Sensitometry analyzes buf without mutating it, unlike Measure+Normalize
// which are part of the mutating pipeline path.
func Sensitometry(buf *imaging.Buffer, region Region) Analysis {
	r := region.full(buf.Height, buf.Width)

	var samples [3][]float64
	for c := 0; c < 3; c++ {
		samples[c] = make([]float64, 0, (r.Y2-r.Y1)*(r.X2-r.X1))
	}
	for y := r.Y1; y < r.Y2; y++ {
		for x := r.X1; x < r.X2; x++ {
			for c := 0; c < 3; c++ {
				v := clip(float64(buf.At(y, x, c)), epsilon, 1)
				samples[c] = append(samples[c], math.Log10(v))
			}
		}
	}

	var a Analysis
	for c := 0; c < 3; c++ {
		a.Bounds.Floors[c] = percentile(samples[c], 1)
		a.Bounds.Ceils[c] = percentile(samples[c], 99.5)
		a.Percentiles[c] = make(map[float64]float64, len(sensitometryPercentiles))
		for _, p := range sensitometryPercentiles {
			a.Percentiles[c][p] = percentile(samples[c], p)
		}
	}
	return a
}
