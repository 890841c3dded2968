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
	"math"
	"sort"

	"github.com/jetsetilly/negpy/imaging"
)

// boxRadius is half the 15-px local-statistics box spec §4.4.1 uses to
// derive flatness/highlight sensitivity.
const boxRadius = 7

// AutoDust detects and heals sensor/scanner dust per spec §4.4.1:
// median-blur as the healing source, an adaptive per-pixel threshold
// derived from local flatness and highlight sensitivity, morphological
// close+dilate to consolidate the raw mask, then a soft blend.
func AutoDust(buf *imaging.Buffer, cfg Config, scaleFactor float64) *imaging.Buffer {
	if !cfg.DustRemove {
		return buf
	}

	kernel := oddAtLeast1(cfg.DustSize * 2 * scaleFactor)
	median := medianBlur(buf, kernel)

	luma := imaging.Luma(buf)
	flatness, highlightSens, localStd := boxStats(luma, buf.Height, buf.Width)

	raw := newMask(buf.Height, buf.Width)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			i := y*buf.Width + x
			detailBoost := (1 - flatness[i]) * 0.05
			tau := cfg.DustThreshold*(1-0.98*math.Sqrt(flatness[i]))*(1-0.5*highlightSens[i]) + detailBoost

			diff := maxChannelDiff(buf, median, y, x)
			if diff > tau && localStd[i] <= 0.2 {
				raw.set(y, x, 1)
			}
		}
	}

	closed := raw.close(2)
	dilated := closed.dilate(1).dilate(1)
	soft := dilated.gaussianBlur(float64(oddAtLeast1(cfg.DustSize)))

	out := imaging.NewRGB(buf.Height, buf.Width)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			m := float32(soft.at(y, x))
			r, g, b := buf.RGB(y, x)
			mr, mg, mb := median.RGB(y, x)
			out.SetRGB(y, x, r*(1-m)+mr*m, g*(1-m)+mg*m, b*(1-m)+mb*m)
		}
	}
	return out
}

func maxChannelDiff(a, b *imaging.Buffer, y, x int) float64 {
	ar, ag, ab := a.RGB(y, x)
	br, bg, bb := b.RGB(y, x)
	d := math.Abs(float64(ar - br))
	if v := math.Abs(float64(ag - bg)); v > d {
		d = v
	}
	if v := math.Abs(float64(ab - bb)); v > d {
		d = v
	}
	return d
}

// medianBlur applies a kxk median filter independently to each channel.
func medianBlur(buf *imaging.Buffer, k int) *imaging.Buffer {
	r := k / 2
	out := imaging.New(buf.Height, buf.Width, buf.Channels)
	window := make([]float32, 0, k*k)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			for c := 0; c < buf.Channels; c++ {
				window = window[:0]
				for dy := -r; dy <= r; dy++ {
					yy := clampInt(y+dy, 0, buf.Height-1)
					for dx := -r; dx <= r; dx++ {
						xx := clampInt(x+dx, 0, buf.Width-1)
						window = append(window, buf.At(yy, xx, c))
					}
				}
				out.Set(y, x, c, medianOf(window))
			}
		}
	}
	return out
}

func medianOf(v []float32) float32 {
	sorted := make([]float32, len(v))
	copy(sorted, v)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[len(sorted)/2]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// boxStats computes, for every pixel, the flatness, highlight
// sensitivity and local std of luma over a (2*boxRadius+1)^2 box.
func boxStats(luma []float32, height, width int) (flatness, highlightSens, std []float64) {
	flatness = make([]float64, height*width)
	highlightSens = make([]float64, height*width)
	std = make([]float64, height*width)

	r := boxRadius
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum, sumSq float64
			n := 0
			for dy := -r; dy <= r; dy++ {
				yy := clampInt(y+dy, 0, height-1)
				for dx := -r; dx <= r; dx++ {
					xx := clampInt(x+dx, 0, width-1)
					v := float64(luma[yy*width+xx])
					sum += v
					sumSq += v * v
					n++
				}
			}
			mean := sum / float64(n)
			variance := sumSq/float64(n) - mean*mean
			if variance < 0 {
				variance = 0
			}
			sd := math.Sqrt(variance)

			i := y*width + x
			std[i] = sd
			flatness[i] = clip(1-sd/0.08, 0, 1)
			highlightSens[i] = clip((float64(luma[i])-0.4)*1.5, 0, 1)
		}
	}
	return
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
