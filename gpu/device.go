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

// Package gpu models the compute-pass GPU path (spec §4.10) as an
// interface any real device backend would satisfy, plus the tiling and
// texture-cache bookkeeping that path needs. This module carries no
// GPU binding of its own (no cgo, no platform compute API), so the
// only Device this package can construct is the CPU-fallback one; see
// DESIGN.md for why a real backend is out of scope here.
package gpu

// Device is a compute-pass backend: one pass per CPU stage, dispatched
// over device textures. A real implementation would wrap a graphics
// API's device/queue handle; the CPU fallback simply reports itself
// unavailable so callers route to the CPU pipeline instead.
type Device interface {
	// Name identifies the backend for logging.
	Name() string

	// Available reports whether this device can actually run a
	// dispatch. The CPU fallback always returns false: it exists so
	// callers have a uniform Device to probe rather than a nil check.
	Available() bool
}

type cpuFallback struct{}

// NewCPUFallback returns the Device every caller in this module
// actually gets: one that reports itself unavailable so Run always
// takes the CPU path.
func NewCPUFallback() Device {
	return cpuFallback{}
}

func (cpuFallback) Name() string     { return "cpu-fallback" }
func (cpuFallback) Available() bool { return false }

// WorkgroupSize returns the dispatch workgroup dimensions for a kernel
// class, per spec §4.10: 8x8 for pixel-local kernels, 16x16 for
// reduction/histogram kernels.
func WorkgroupSize(reduction bool) (x, y int) {
	if reduction {
		return 16, 16
	}
	return 8, 8
}

// DispatchGrid returns the (ceil(w/wgx), ceil(h/wgy)) dispatch grid for
// a w x h target and the given workgroup size.
func DispatchGrid(w, h, wgx, wgy int) (gx, gy int) {
	gx = (w + wgx - 1) / wgx
	gy = (h + wgy - 1) / wgy
	return
}
