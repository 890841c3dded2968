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

// ChromaDenoise smooths chroma noise in a/b space per spec §4.5.3: a
// bilateral filter (which respects L edges so it doesn't bleed color
// across them), a secondary Gaussian pass on the bilateral result, and
// two luminance-keyed masks that restrict where each version wins.
func ChromaDenoise(buf *imaging.Buffer, strength, scaleFactor float64) *imaging.Buffer {
	if strength <= 0 {
		return buf
	}

	p := toLab(buf)
	diameter := 9 * scaleFactor
	colorSigma := 2 * strength * 100
	spaceSigma := 0.75 * strength * 100 * scaleFactor

	bilA := bilateral(p.A, p.L, p.Height, p.Width, diameter, colorSigma, spaceSigma)
	bilB := bilateral(p.B, p.L, p.Height, p.Width, diameter, colorSigma, spaceSigma)

	blurRadius := 11 * scaleFactor
	if strength <= 0.5 {
		blurRadius = 7
	}
	blurredA := gaussianBlurPlane(bilA, p.Height, p.Width, blurRadius)
	blurredB := gaussianBlurPlane(bilB, p.Height, p.Width, blurRadius)

	for i, l := range p.L {
		mDeep := clip(1-l/60, 0, 1)
		mDeep *= mDeep
		mBroad := clip(1-(l-150)/80, 0, 1)

		deepA := bilA[i]*(1-mDeep) + blurredA[i]*mDeep
		deepB := bilB[i]*(1-mDeep) + blurredB[i]*mDeep

		p.A[i] = p.A[i]*(1-mBroad) + deepA*mBroad
		p.B[i] = p.B[i]*(1-mBroad) + deepB*mBroad
	}

	return p.toRGB()
}

// bilateral filters plane using reference as the edge-stopping signal
// (L, so chroma smoothing doesn't bleed across luminance edges).
func bilateral(plane, reference []float64, height, width int, diameter, colorSigma, spaceSigma float64) []float64 {
	r := int(diameter / 2)
	if r < 1 {
		r = 1
	}
	out := make([]float64, len(plane))

	colorSigma = math.Max(colorSigma, 1e-3)
	spaceSigma = math.Max(spaceSigma, 1e-3)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			refV := reference[i]

			var sum, wsum float64
			for dy := -r; dy <= r; dy++ {
				yy := y + dy
				if yy < 0 || yy >= height {
					continue
				}
				for dx := -r; dx <= r; dx++ {
					xx := x + dx
					if xx < 0 || xx >= width {
						continue
					}
					j := yy*width + xx
					spaceDist := float64(dy*dy + dx*dx)
					colorDist := reference[j] - refV

					w := math.Exp(-spaceDist/(2*spaceSigma*spaceSigma)) *
						math.Exp(-(colorDist*colorDist)/(2*colorSigma*colorSigma))
					sum += plane[j] * w
					wsum += w
				}
			}
			if wsum == 0 {
				out[i] = plane[i]
			} else {
				out[i] = sum / wsum
			}
		}
	}
	return out
}
