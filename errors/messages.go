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

package errors

// error messages, grouped by the five categories in Kind
const (
	// load
	RawDecodeError    = "load error: %v"
	UnsupportedFormat = "load error: unsupported RAW format (%s)"

	// config
	InvalidSlider       = "config error: invalid value for %s (%v)"
	InvalidAspectRatio  = "config error: unrecognised aspect ratio (%s)"
	SettingsParseError  = "config error: malformed settings (%v)"
	UnknownProcessMode  = "config error: unknown process mode (%s)"
	UnknownPaperProfile = "config error: unknown paper profile (%s)"

	// pipeline
	StageError = "%s stage: %v"

	// io
	FileWriteError = "io error: %v"
	DirCreateError = "io error: could not create output directory (%v)"

	// gpu
	DeviceAbsent       = "gpu error: no compatible device found"
	ShaderCompileError = "gpu error: shader compilation failed: %v"
	TextureAllocError  = "gpu error: texture allocation failed: %v"
)
