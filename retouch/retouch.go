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

package retouch

import (
	"github.com/jetsetilly/negpy/geometry"
	"github.com/jetsetilly/negpy/imaging"
)

// Apply runs automatic dust removal, manual spot healing and local
// dodge/burn adjustments, in that order. geom is the Params the
// geometry stage published for this run; manual_dust_spots and
// local_adjustments.points arrive in the raw coordinate frame and are
// mapped through geom's forward mapper before rasterization, so a spot
// marked before a rotation or crop change still lands on the same
// physical dust speck.
func Apply(buf *imaging.Buffer, cfg Config, scaleFactor float64, geom geometry.Params) *imaging.Buffer {
	cfg.Clamp()

	out := AutoDust(buf, cfg, scaleFactor)

	if len(cfg.ManualDustSpots) > 0 {
		mapped := make([]Spot, len(cfg.ManualDustSpots))
		for i, s := range cfg.ManualDustSpots {
			nx, ny := geom.Forward(s.NX, s.NY)
			mapped[i] = Spot{NX: nx, NY: ny, Size: s.Size}
		}
		out = ManualHeal(out, mapped, scaleFactor, nil)
	}

	if len(cfg.LocalAdjustments) > 0 {
		mappedAdj := make([]Adjustment, len(cfg.LocalAdjustments))
		for i, a := range cfg.LocalAdjustments {
			mappedPoints := make([]Point, len(a.Points))
			for j, p := range a.Points {
				nx, ny := geom.Forward(p.NX, p.NY)
				mappedPoints[j] = Point{NX: nx, NY: ny}
			}
			mappedAdj[i] = a
			mappedAdj[i].Points = mappedPoints
		}
		out = LocalAdjust(out, mappedAdj, scaleFactor)
	}

	return out
}
