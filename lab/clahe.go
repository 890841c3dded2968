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

import "math"

const (
	claheTiles = 8
	claheBins  = 256
)

// clahe applies contrast-limited adaptive histogram equalization to an
// L plane on the 0-100 scale, per spec §4.5.2: clip-limit
// 5*clahe_strength, an 8x8 tile grid, bilinear blending between tile
// mappings at each pixel.
func clahe(l []float64, height, width int, clipLimit float64) []float64 {
	tileW := (width + claheTiles - 1) / claheTiles
	tileH := (height + claheTiles - 1) / claheTiles

	// per-tile cumulative mapping functions, bin value -> equalized
	// bin value, both on [0, claheBins-1].
	mappings := make([][]float64, claheTiles*claheTiles)

	for ty := 0; ty < claheTiles; ty++ {
		for tx := 0; tx < claheTiles; tx++ {
			y0, y1 := ty*tileH, min(height, (ty+1)*tileH)
			x0, x1 := tx*tileW, min(width, (tx+1)*tileW)
			mappings[ty*claheTiles+tx] = tileMapping(l, width, y0, y1, x0, x1, clipLimit)
		}
	}

	out := make([]float64, len(l))
	for y := 0; y < height; y++ {
		// tile coordinates (continuous) for bilinear interpolation,
		// tile centers anchor the grid.
		fy := float64(y)/float64(tileH) - 0.5
		ty0 := int(math.Floor(fy))
		wy := fy - float64(ty0)
		ty1 := ty0 + 1
		ty0 = clampTile(ty0)
		ty1 = clampTile(ty1)

		for x := 0; x < width; x++ {
			fx := float64(x)/float64(tileW) - 0.5
			tx0 := int(math.Floor(fx))
			wx := fx - float64(tx0)
			tx1 := tx0 + 1
			tx0c := clampTile(tx0)
			tx1c := clampTile(tx1)

			v := l[y*width+x]
			bin := int(clip(v/100*float64(claheBins-1), 0, claheBins-1))

			m00 := mappings[ty0*claheTiles+tx0c][bin]
			m01 := mappings[ty0*claheTiles+tx1c][bin]
			m10 := mappings[ty1*claheTiles+tx0c][bin]
			m11 := mappings[ty1*claheTiles+tx1c][bin]

			top := m00*(1-wx) + m01*wx
			bottom := m10*(1-wx) + m11*wx
			eq := top*(1-wy) + bottom*wy

			out[y*width+x] = eq / float64(claheBins-1) * 100
		}
	}
	return out
}

func clampTile(t int) int {
	if t < 0 {
		return 0
	}
	if t > claheTiles-1 {
		return claheTiles - 1
	}
	return t
}

// tileMapping builds the clip-limited histogram-equalization mapping
// for one tile: bin index -> equalized bin index.
func tileMapping(l []float64, width, y0, y1, x0, x1 int, clipLimit float64) []float64 {
	hist := make([]float64, claheBins)
	n := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			v := l[y*width+x]
			bin := int(clip(v/100*float64(claheBins-1), 0, claheBins-1))
			hist[bin]++
			n++
		}
	}
	if n == 0 {
		m := make([]float64, claheBins)
		for i := range m {
			m[i] = float64(i)
		}
		return m
	}

	avg := float64(n) / float64(claheBins)
	limit := clipLimit * avg
	if limit < 1 {
		limit = 1
	}

	var excess float64
	for i, v := range hist {
		if v > limit {
			excess += v - limit
			hist[i] = limit
		}
	}
	redistribute := excess / float64(claheBins)
	for i := range hist {
		hist[i] += redistribute
	}

	cdf := make([]float64, claheBins)
	var running float64
	for i, v := range hist {
		running += v
		cdf[i] = running
	}

	mapping := make([]float64, claheBins)
	total := cdf[claheBins-1]
	if total == 0 {
		total = 1
	}
	for i, v := range cdf {
		mapping[i] = v / total * float64(claheBins-1)
	}
	return mapping
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
