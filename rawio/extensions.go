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

package rawio

import (
	"path/filepath"
	"slices"
	"strings"
)

// CameraExtensions is the list of mosaiced-sensor RAW extensions a
// real RawLoader backend (a libraw or dcraw binding, not present in
// this module) would demosaic. negpy's own Load recognizes these only
// to report a clear UnsupportedFormat error rather than silently
// skipping the file; see DESIGN.md.
var CameraExtensions = [...]string{
	".CR2", ".CR3", ".NEF", ".ARW", ".DNG", ".RAF", ".ORF", ".RW2", ".PEF", ".SRW",
}

// DecodableExtensions lists the already-demosaiced formats this
// module can actually decode into a linear buffer itself, using
// stdlib/x/image decoders: a pre-rendered 16-bit TIFF or PNG scan, or
// an embedded preview JPEG.
var DecodableExtensions = [...]string{
	".TIFF", ".TIF", ".PNG", ".JPG", ".JPEG",
}

// IsRecognized reports whether path's extension is one this module
// knows about at all, whether or not it can actually decode it.
func IsRecognized(path string) bool {
	ext := strings.ToUpper(filepath.Ext(path))
	return slices.Contains(CameraExtensions[:], ext) || slices.Contains(DecodableExtensions[:], ext)
}

// IsDecodable reports whether path's extension is one Load can
// actually decode.
func IsDecodable(path string) bool {
	ext := strings.ToUpper(filepath.Ext(path))
	return slices.Contains(DecodableExtensions[:], ext)
}

// NameFromFilename converts a filename to a shortened display name by
// stripping a recognized extension.
func NameFromFilename(filename string) string {
	name := filepath.Base(filename)
	ext := strings.ToUpper(filepath.Ext(filename))
	if slices.Contains(CameraExtensions[:], ext) || slices.Contains(DecodableExtensions[:], ext) {
		name = strings.TrimSuffix(name, filepath.Ext(filename))
	}
	return name
}
