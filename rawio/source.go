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
	"os"

	negerrors "github.com/jetsetilly/negpy/errors"
	"github.com/jetsetilly/negpy/cache"
)

// Source is one file on disk the batch converter will load: its path,
// display name and source fingerprint, resolved up front so the
// orchestrator's cache can be primed before the (potentially slow)
// decode runs.
type Source struct {
	Path    string
	Name    string
	FingerprintHash string
}

// NewSource opens path just long enough to compute its fingerprint,
// then closes it; Load (or any other reader) opens it again when
// actual decoding is needed.
func NewSource(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return Source{}, negerrors.Errorf(negerrors.RawDecodeError, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Source{}, negerrors.Errorf(negerrors.RawDecodeError, err)
	}

	hash, err := cache.SourceFingerprint(f, info.Size())
	if err != nil {
		return Source{}, negerrors.Errorf(negerrors.RawDecodeError, err)
	}

	return Source{
		Path:            path,
		Name:            NameFromFilename(path),
		FingerprintHash: hash,
	}, nil
}
