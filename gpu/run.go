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

package gpu

import (
	negerrors "github.com/jetsetilly/negpy/errors"
	"github.com/jetsetilly/negpy/imaging"
	"github.com/jetsetilly/negpy/pipeline"
)

// Run processes img through the GPU path if dev is available, falling
// back to the CPU Orchestrator otherwise. requireGPU rejects the
// fallback with a GpuError instead of silently running on CPU, for
// callers that specifically want to benchmark or test device
// availability (the CLI's normal path always passes requireGPU=false,
// per spec §7's "the caller must be able to fall back to the CPU
// path").
//
// No backend in this module ever reports Available() == true, so this
// always takes the CPU branch; it exists as the seam a real device
// implementation would plug into without the caller changing.
func Run(dev Device, o *pipeline.Orchestrator, img *imaging.Buffer, ws pipeline.WorkspaceConfig, sourceFingerprint string, requireGPU bool) (*imaging.Buffer, *pipeline.Context, error) {
	if dev.Available() {
		// no real compute backend exists in this module; a device that
		// reports itself available is a future extension point, not a
		// path this function can reach today.
		return o.Process(img, ws, sourceFingerprint)
	}

	if requireGPU {
		return nil, nil, negerrors.Errorf(negerrors.DeviceAbsent)
	}

	return o.Process(img, ws, sourceFingerprint)
}
