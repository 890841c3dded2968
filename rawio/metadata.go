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

// Package rawio implements the RawLoader collaborator contract (spec
// §6.1): decoding a source file into a linear-light buffer plus the
// metadata the pipeline needs (color space, camera white-balance
// multipliers), and fingerprinting the source for the stage cache.
//
// Demosaicing an actual mosaiced-sensor RAW file is out of scope for
// this module - no such decoder exists anywhere in the reference
// corpus - so Load only decodes already-demosaiced formats (a
// pre-rendered TIFF/PNG scan, or an embedded preview JPEG); a genuine
// camera RAW extension is recognized but reported as unsupported. See
// DESIGN.md.
package rawio

// Metadata is what Load reports alongside the decoded buffer (spec
// §6.1's RawLoader contract).
type Metadata struct {
	// ColorSpace names the profile embedded in (or assumed for) the
	// source file.
	ColorSpace string

	// CameraWBMultipliers are the as-shot white-balance multipliers a
	// real RAW decoder would read from the file's metadata, reported
	// here for informational display even when the returned buffer
	// itself used neutral WB.
	CameraWBMultipliers [4]float64
}

// neutralWB is what the contract requires Load to apply unless the
// caller opts into camera WB: "user-white-balance = 1,1,1,1 (neutral)
// and gamma 1,1".
var neutralWB = [4]float64{1, 1, 1, 1}

// Options controls how Load interprets a decoded source.
type Options struct {
	// UseCameraWB asks Load to apply CameraWBMultipliers to the
	// decoded buffer instead of leaving it neutral. Default formats
	// this module can decode (PNG/JPEG/TIFF) don't carry real camera
	// WB metadata, so this is a no-op against them; it exists for a
	// future RAW-capable backend.
	UseCameraWB bool
}
