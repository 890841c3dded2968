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

import "math"

// ROI is a region of interest in pixel coordinates, half-open on the
// high edge: 0 <= Y1 < Y2 <= H, 0 <= X1 < X2 <= W.
type ROI struct {
	Y1, Y2, X1, X2 int
}

// Valid reports whether r describes a non-degenerate rectangle within
// a height x width frame.
func (r ROI) Valid(height, width int) bool {
	return r.Y1 >= 0 && r.Y1 < r.Y2 && r.Y2 <= height &&
		r.X1 >= 0 && r.X1 < r.X2 && r.X2 <= width
}

// Full returns the ROI covering the entire height x width frame.
func Full(height, width int) ROI {
	return ROI{Y1: 0, Y2: height, X1: 0, X2: width}
}

// Params is what the geometry stage publishes into the pipeline
// context's metrics map on every run (spec §9: "Geometry stage
// publishes a geometry_params entry... Retouch stage reads from that
// entry" so the two stages stay one-directionally coupled). It carries
// everything needed to map a raw-space normalized point into the
// post-crop display buffer and back.
type Params struct {
	Rotation     int // 0-3, applied CCW
	FineRotation float64
	FlipH, FlipV bool

	// RawHeight/RawWidth are the dimensions of the buffer as it arrived
	// at the geometry stage, before any transform in this package runs.
	RawHeight, RawWidth int

	// ROI is the crop applied after rotation/flip/fine-rotation, in the
	// coordinate space of the rotated (but not yet cropped) buffer. A
	// nil ROI means no crop was applied.
	ROI *ROI
}

// postRotationDims returns the frame dimensions after the 90-degree
// rotation (width/height swap for odd k).
func (p Params) postRotationDims() (height, width int) {
	if p.Rotation%2 == 1 {
		return p.RawWidth, p.RawHeight
	}
	return p.RawHeight, p.RawWidth
}

// Forward maps a normalized point (nx, ny) in raw-space, (nx,ny) in
// [0,1]^2 with (0,0) top-left, through the current rotation, fine
// rotation, flip and crop, into the corresponding normalized point in
// the post-crop display buffer. Degenerate geometry clamps to [0,1]^2
// rather than erroring, per spec's failure-mode contract.
func (p Params) Forward(nx, ny float64) (float64, float64) {
	x := nx * float64(p.RawWidth)
	y := ny * float64(p.RawHeight)

	// fine rotation applies the same affine the image itself receives,
	// about the center of the raw frame, before the 90-degree rotation.
	if p.FineRotation != 0 {
		x, y = rotateAffine(x, y, float64(p.RawWidth), float64(p.RawHeight), p.FineRotation)
	}

	rh, rw := p.postRotationDims()
	switch p.Rotation % 4 {
	case 1:
		x, y = y, float64(p.RawWidth)-x
	case 2:
		x, y = float64(p.RawWidth)-x, float64(p.RawHeight)-y
	case 3:
		x, y = float64(p.RawHeight)-y, x
	}

	if p.FlipH {
		x = float64(rw) - x
	}
	if p.FlipV {
		y = float64(rh) - y
	}

	// fine rotation applies the same affine the image itself receives,
	// about the center of the rotated and flipped frame.
	if p.FineRotation != 0 {
		x, y = rotateAffine(x, y, float64(rw), float64(rh), p.FineRotation)
	}

	if p.ROI != nil {
		roi := *p.ROI
		w := float64(roi.X2 - roi.X1)
		h := float64(roi.Y2 - roi.Y1)
		if w <= 0 || h <= 0 {
			// degenerate ROI: spec says revert to full frame
			roi = ROI{0, rh, 0, rw}
			w, h = float64(rw), float64(rh)
		}
		x = x - float64(roi.X1)
		y = y - float64(roi.Y1)
		x /= w
		y /= h
	} else {
		x /= float64(rw)
		y /= float64(rh)
	}

	return clamp01(x), clamp01(y)
}

// Inverse maps a normalized point in the post-crop display buffer back
// to raw-space, undoing ROI, the fine rotation, flips and the 90-degree
// rotation in reverse order.
func (p Params) Inverse(nx, ny float64) (float64, float64) {
	rh, rw := p.postRotationDims()

	var x, y float64
	if p.ROI != nil {
		roi := *p.ROI
		w := float64(roi.X2 - roi.X1)
		h := float64(roi.Y2 - roi.Y1)
		if w <= 0 || h <= 0 {
			roi = ROI{0, rh, 0, rw}
			w, h = float64(rw), float64(rh)
		}
		x = nx*w + float64(roi.X1)
		y = ny*h + float64(roi.Y1)
	} else {
		x = nx * float64(rw)
		y = ny * float64(rh)
	}

	if p.FineRotation != 0 {
		x, y = rotateAffine(x, y, float64(rw), float64(rh), -p.FineRotation)
	}

	if p.FlipH {
		x = float64(rw) - x
	}
	if p.FlipV {
		y = float64(rh) - y
	}

	switch p.Rotation % 4 {
	case 1:
		x, y = float64(p.RawWidth)-y, x
	case 2:
		x, y = float64(p.RawWidth)-x, float64(p.RawHeight)-y
	case 3:
		x, y = y, float64(p.RawHeight)-x
	}

	if p.FineRotation != 0 {
		x, y = rotateAffine(x, y, float64(p.RawWidth), float64(p.RawHeight), -p.FineRotation)
	}

	if p.RawWidth == 0 || p.RawHeight == 0 {
		return 0, 0
	}
	return clamp01(x / float64(p.RawWidth)), clamp01(y / float64(p.RawHeight))
}

// rotateAffine rotates point (x,y) by angleDegrees about the center of
// a width x height frame, matching the affine warp FineRotate applies
// to pixel data.
func rotateAffine(x, y, width, height, angleDegrees float64) (float64, float64) {
	cx, cy := width/2, height/2
	rad := angleDegrees * math.Pi / 180
	sinA, cosA := math.Sin(rad), math.Cos(rad)

	dx, dy := x-cx, y-cy
	rx := dx*cosA - dy*sinA
	ry := dx*sinA + dy*cosA
	return rx + cx, ry + cy
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
