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

// Kind names the five error categories that group the message heads in
// messages.go. A curated error does not carry a Kind value; callers
// match a failure by its message head with Is/Has/Head.
type Kind int

const (
	// KindLoad covers RAW decode failure or unsupported format.
	KindLoad Kind = iota

	// KindConfig covers an invalid slider value, bad aspect-ratio
	// string, or malformed settings file.
	KindConfig

	// KindPipeline covers a stage raising during process(). The message
	// carries the stage name; see NewPipelineError.
	KindPipeline

	// KindIO covers a file write or directory creation failure.
	KindIO

	// KindGPU covers a device-absent or shader-compilation failure. The
	// caller is expected to fall back to the CPU path rather than treat
	// this as fatal.
	KindGPU
)

func (k Kind) String() string {
	switch k {
	case KindLoad:
		return "load"
	case KindConfig:
		return "config"
	case KindPipeline:
		return "pipeline"
	case KindIO:
		return "io"
	case KindGPU:
		return "gpu"
	default:
		return "unknown"
	}
}
