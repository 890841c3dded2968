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

// CLAHE applies contrast-limited adaptive histogram equalization to
// buf's lightness channel, blended by strength, per spec §4.5.2.
func CLAHE(buf *imaging.Buffer, strength float64) *imaging.Buffer {
	if strength <= 0 {
		return buf
	}
	p := toLab(buf)
	equalized := clahe(p.L, p.Height, p.Width, 5*strength)
	for i := range p.L {
		p.L[i] = p.L[i]*(1-strength) + equalized[i]*strength
	}
	return p.toRGB()
}
