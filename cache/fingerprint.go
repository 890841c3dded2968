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

// Package cache implements the stage cache keyed by source and
// per-stage config fingerprints (spec §4.8), plus the fingerprinting
// functions it and the orchestrator share.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
)

// oneMiB bounds how much of a source's head and tail SourceFingerprint
// reads.
const oneMiB = 1 << 20

// SourceFingerprint returns a stable identity hash for a source asset:
// its size plus its first and last MiB, so a multi-gigabyte RAW file
// doesn't need to be read in full to be identified. r must support
// Seek; io.ReaderAt would also do but every caller in this module
// already has an *os.File.
func SourceFingerprint(r io.ReadSeeker, size int64) (string, error) {
	h := sha256.New()

	var sizeBuf [8]byte
	putUint64(sizeBuf[:], uint64(size))
	h.Write(sizeBuf[:])

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	if err := hashUpTo(h, r, oneMiB); err != nil {
		return "", err
	}

	if size > oneMiB {
		if _, err := r.Seek(-oneMiB, io.SeekEnd); err != nil {
			return "", err
		}
		if err := hashUpTo(h, r, oneMiB); err != nil {
			return "", err
		}
	}
	// a source no larger than a MiB was already read in full by the
	// head pass above; no separate tail read is needed.

	return hex.EncodeToString(h.Sum(nil)), nil
}

func hashUpTo(h io.Writer, r io.Reader, n int64) error {
	_, err := io.CopyN(h, r, n)
	if err == io.EOF {
		return nil
	}
	return err
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

// ConfigFingerprint hashes the canonical JSON encoding of v. Two
// semantically-equal configs of the same Go type always produce
// identical JSON (field order is fixed by the type, and
// encoding/json sorts map keys), which is exactly the determinism
// spec §3's Config fingerprint requires.
func ConfigFingerprint(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
