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

import "github.com/jetsetilly/negpy/imaging"

// unsharpRadius and unsharpThreshold8 are the fixed parameters spec
// §4.5.4 gives for L-channel unsharp masking; threshold8 is expressed
// on the conventional 0-255 scale and rescaled to L's 0-100 range at
// use.
const (
	unsharpRadius     = 1.0
	unsharpThreshold8 = 5
)

// Sharpen unsharp-masks buf's lightness channel, percent =
// int(sharpen*250), per spec §4.5.4.
func Sharpen(buf *imaging.Buffer, sharpen float64) *imaging.Buffer {
	if sharpen <= 0 {
		return buf
	}
	percent := int(sharpen * 250)
	amount := float64(percent) / 100
	threshold := float64(unsharpThreshold8) / 255 * 100

	p := toLab(buf)
	blurred := gaussianBlurPlane(p.L, p.Height, p.Width, unsharpRadius)

	for i, l := range p.L {
		diff := l - blurred[i]
		if diff > threshold || diff < -threshold {
			p.L[i] = l + diff*amount
		}
	}
	return p.toRGB()
}
