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

package geometry

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/transform"

	"github.com/jetsetilly/negpy/imaging"
)

func rgba8(r, g, b float32) color.RGBA {
	return color.RGBA{R: clamp8(r), G: clamp8(g), B: clamp8(b), A: 0xff}
}

func clamp8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v * 0xff)
}

// autocropMaxDim is the longest edge the detection pass downsamples to
// before scanning for the film-rebate edge; full-resolution scanning
// buys nothing here and costs a lot on a 50+ megapixel scan.
const autocropMaxDim = 1800

// autocropThreshold is the luma level above which a row or column is
// considered rebate (clear film base / light leak), not image.
const autocropThreshold = 0.96

// minQualifyingLines is the minimum number of detected content rows
// (or columns) - i.e. rows/columns that scan below the rebate
// threshold - a frame must have before autocrop trusts the detected
// ROI; fewer than this and there isn't enough content to distinguish
// from noise in the rebate scan, so autocrop backs off to the full
// image rather than risk cropping into picture content.
const minQualifyingLines = 10

// Autocrop detects the film rebate border in buf and returns the pixel
// ROI (in buf's own coordinate space) of the image content within it.
// assistLuma, when non-zero, is a per-image estimate of the image's own
// brightest non-rebate tone (the "assist" the caller's exposure pass
// can supply); the detection threshold becomes assistLuma-0.02 when
// that is lower than the fixed default, so a bright high-key frame
// doesn't get misread as entirely rebate.
func Autocrop(buf *imaging.Buffer, assistLuma float64) ROI {
	full := Full(buf.Height, buf.Width)

	scale := 1.0
	longest := buf.Height
	if buf.Width > longest {
		longest = buf.Width
	}
	scan := buf
	if longest > autocropMaxDim {
		scale = float64(autocropMaxDim) / float64(longest)
		scan = downsample(buf, scale)
	}

	threshold := float32(autocropThreshold)
	if assistLuma > 0 {
		if t := float32(assistLuma - 0.02); t < threshold {
			threshold = t
		}
	}

	luma := imaging.Luma(scan)

	rowClear := make([]bool, scan.Height)
	for y := 0; y < scan.Height; y++ {
		rowClear[y] = rowIsRebate(luma, scan.Width, y, threshold)
	}
	colClear := make([]bool, scan.Width)
	for x := 0; x < scan.Width; x++ {
		colClear[x] = colIsRebate(luma, scan.Width, scan.Height, x, threshold)
	}

	top := firstFalseRun(rowClear)
	bottom := lastFalseRun(rowClear)
	left := firstFalseRun(colClear)
	right := lastFalseRun(colClear)

	qualifyingRows := len(rowClear) - countTrue(rowClear)
	qualifyingCols := len(colClear) - countTrue(colClear)
	if qualifyingRows < minQualifyingLines && qualifyingCols < minQualifyingLines {
		return full
	}

	roi := ROI{
		Y1: int(float64(top) / scale),
		Y2: int(float64(bottom+1) / scale),
		X1: int(float64(left) / scale),
		X2: int(float64(right+1) / scale),
	}
	if !roi.Valid(buf.Height, buf.Width) {
		return full
	}
	return roi
}

func downsample(buf *imaging.Buffer, scale float64) *imaging.Buffer {
	src := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := buf.RGB(y, x)
			src.SetRGBA(x, y, rgba8(r, g, b))
		}
	}
	w := int(float64(buf.Width) * scale)
	h := int(float64(buf.Height) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	resized := transform.Resize(src, w, h, transform.Linear)
	return fromImage(resized, h, w)
}

func rowIsRebate(luma []float32, width, y int, threshold float32) bool {
	var sum float32
	for x := 0; x < width; x++ {
		sum += luma[y*width+x]
	}
	return sum/float32(width) >= threshold
}

func colIsRebate(luma []float32, width, height, x int, threshold float32) bool {
	var sum float32
	for y := 0; y < height; y++ {
		sum += luma[y*width+x]
	}
	return sum/float32(height) >= threshold
}

// firstFalseRun returns the index of the first element that is false,
// i.e. the end of the leading run of true values. Returns len(b) if
// every element is true.
func firstFalseRun(b []bool) int {
	for i, v := range b {
		if !v {
			return i
		}
	}
	return len(b)
}

// lastFalseRun returns the index of the last element that is false,
// i.e. the start of the trailing run of true values, minus one.
// Returns -1 if every element is true.
func lastFalseRun(b []bool) int {
	for i := len(b) - 1; i >= 0; i-- {
		if !b[i] {
			return i
		}
	}
	return -1
}

func countTrue(b []bool) int {
	n := 0
	for _, v := range b {
		if v {
			n++
		}
	}
	return n
}

// EnforceMargin applies a fixed pixel margin (scaled to the buffer's
// own resolution from a full-resolution offset) on every edge of roi,
// then fits the largest centered rectangle matching ratio inside what
// remains. A "Free" ratio (value 0) skips the fit and just applies the
// margin. fullWidth/fullHeight are the dimensions the offsetPx was
// specified against, used to scale it to roi's own frame when that
// differs (e.g. roi already lives in a downsampled space).
func EnforceMargin(roi ROI, offsetPx float64, ratioName string, fullWidth, fullHeight int) ROI {
	scaleFactor := 1.0
	if fullWidth > 0 {
		scaleFactor = float64(roi.X2-roi.X1) / float64(fullWidth)
	}
	margin := int((2 + offsetPx) * scaleFactor)

	y1 := roi.Y1 + margin
	y2 := roi.Y2 - margin
	x1 := roi.X1 + margin
	x2 := roi.X2 - margin
	if y1 >= y2 || x1 >= x2 {
		return roi
	}
	inset := ROI{Y1: y1, Y2: y2, X1: x1, X2: x2}

	ratio := aspectRatioValue(ratioName)
	if ratio == 0 {
		return inset
	}

	w := float64(inset.X2 - inset.X1)
	h := float64(inset.Y2 - inset.Y1)

	// orient the target ratio to match whichever of w/h is larger in
	// the inset itself, so a portrait frame gets a portrait crop.
	targetRatio := ratio
	if h > w {
		targetRatio = 1 / ratio
	}

	var fitW, fitH float64
	if w/h > targetRatio {
		fitH = h
		fitW = h * targetRatio
	} else {
		fitW = w
		fitH = w / targetRatio
	}

	cx := float64(inset.X1) + w/2
	cy := float64(inset.Y1) + h/2

	return ROI{
		X1: int(cx - fitW/2),
		X2: int(cx + fitW/2),
		Y1: int(cy - fitH/2),
		Y2: int(cy + fitH/2),
	}
}
