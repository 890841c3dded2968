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

// Package pipeline assembles the geometry, exposure, retouch, lab and
// toning stages behind the stage cache and a shared per-invocation
// Context, per spec §4.7.
package pipeline

import (
	"github.com/jetsetilly/negpy/exposure"
	"github.com/jetsetilly/negpy/geometry"
	"github.com/jetsetilly/negpy/lab"
	"github.com/jetsetilly/negpy/retouch"
	"github.com/jetsetilly/negpy/toning"
)

// previewReferenceSize is the long-edge pixel count a 1.0 scale_factor
// corresponds to; stage kernels scale their own pixel-space constants
// (blur radii, morphology footprints) by ScaleFactor so behavior is
// resolution-independent.
const previewReferenceSize = 2048

// WorkspaceConfig aggregates every stage's slider set plus the active
// process mode (spec §3 WorkspaceConfig). It is immutable by
// convention: callers construct a new value rather than mutating one
// shared across invocations.
type WorkspaceConfig struct {
	ProcessMode exposure.ProcessMode
	Geometry    geometry.Config
	Exposure    exposure.Config
	Retouch     retouch.Config
	Lab         lab.Config
	Toning      toning.Config
}

// Context is the per-invocation scratch Orchestrator.Process builds
// for each call and returns alongside the output (spec §3
// PipelineContext).
type Context struct {
	ScaleFactor  float64
	OriginalH    int
	OriginalW    int
	ProcessMode  exposure.ProcessMode
	ActiveROI    *geometry.ROI
	Metrics      map[string]any
}

// newContext builds the Context for one process() call, per spec
// §4.7 step 1.
func newContext(height, width int, mode exposure.ProcessMode) *Context {
	longest := height
	if width > longest {
		longest = width
	}
	return &Context{
		ScaleFactor: float64(longest) / previewReferenceSize,
		OriginalH:   height,
		OriginalW:   width,
		ProcessMode: mode,
		Metrics:     make(map[string]any),
	}
}
