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

package lab

import (
	"math"

	"github.com/jetsetilly/negpy/imaging"
)

const crosstalkEpsilon = 1e-6

// Crosstalk applies the spectral-crosstalk matrix in density space,
// per spec §4.5.1. A colorSeparation of 1 is the identity (matrix has
// no effect); higher values blend progressively more of matrix m in.
func Crosstalk(buf *imaging.Buffer, m [3][3]float64, colorSeparation float64) *imaging.Buffer {
	s := colorSeparation - 1
	if s < 0 {
		s = 0
	}

	var applied [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			identity := 0.0
			if i == j {
				identity = 1
			}
			applied[i][j] = identity*(1-s) + m[i][j]*s
		}
	}
	applied = rowNormalize(applied)

	out := imaging.NewRGB(buf.Height, buf.Width)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := buf.RGB(y, x)
			d := [3]float64{
				-math.Log10(clip(float64(r), crosstalkEpsilon, 1)),
				-math.Log10(clip(float64(g), crosstalkEpsilon, 1)),
				-math.Log10(clip(float64(b), crosstalkEpsilon, 1)),
			}

			var dOut [3]float64
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					dOut[i] += d[j] * applied[i][j]
				}
			}

			out.SetRGB(y, x,
				float32(clip(math.Pow(10, -dOut[0]), 0, 1)),
				float32(clip(math.Pow(10, -dOut[1]), 0, 1)),
				float32(clip(math.Pow(10, -dOut[2]), 0, 1)),
			)
		}
	}
	return out
}

// rowNormalize scales each row of m so it sums to 1, keeping a neutral
// grey input neutral after the matrix multiply.
func rowNormalize(m [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		sum := m[i][0] + m[i][1] + m[i][2]
		if math.Abs(sum) < crosstalkEpsilon {
			sum = 1
		}
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j] / sum
		}
	}
	return out
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
