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

import "github.com/chewxy/math32"

// DMax is the curve's maximum density, matching the 3.5 of a typical
// silver-halide paper's characteristic curve.
const DMax float32 = 3.5

// outputGamma gamma-encodes the recovered transmittance for display.
const outputGamma float32 = 1 / 2.2

// epsilon32 is density's own float32 copy of bounds.go's epsilon, kept
// separate since density's hot loop never touches the float64 samples
// Measure/Sensitometry collect.
const epsilon32 float32 = 1e-6

func sigmoid(x float32) float32 {
	return 1 / (1 + math32.Exp(-x))
}

// curveParams bundles the toe/shoulder shaping knobs shared by every
// channel; only k (slope) and x0 (pivot) vary per channel.
type curveParams struct {
	Toe, Shoulder                 float32
	ToeWidth, ShoulderWidth       float32
	ToeHardness, ShoulderHardness float32
}

// density evaluates the characteristic curve at x (a normalized
// log-exposure value in [0,1]) given slope k and pivot x0, per spec
// §4.3.2. Runs entirely in float32, matching imaging.Buffer's own
// storage, so this per-pixel, per-channel hot path never round-trips
// through float64.
func density(x, k, x0 float32, p curveParams) float32 {
	diff := x - x0

	wShoulder := sigmoid(p.ShoulderWidth * (diff / math32.Max(x0, epsilon32)))
	wToe := sigmoid(p.ToeWidth * (diff / math32.Max(1-x0, epsilon32)))

	pShoulder := math32.Pow(4*(wShoulder-0.5)*(wShoulder-0.5), p.ShoulderHardness)
	pToe := math32.Pow(4*(wToe-0.5)*(wToe-0.5), p.ToeHardness)

	dampShoulder := p.Shoulder * (1 - wShoulder) * pShoulder
	dampToe := p.Toe * wToe * pToe

	kMod := clip32(1-dampToe-dampShoulder, 0.1, 2.0)

	return DMax * sigmoid(k*diff*kMod)
}

// transmittance converts a characteristic-curve density D to a
// gamma-encoded positive value in [0,1]: T = 10^-D, displayed as
// T^(1/2.2).
func transmittance(d float32) float32 {
	t := math32.Pow(10, -d)
	return math32.Pow(clip32(t, 0, 1), outputGamma)
}

func clip32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
