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

import (
	stderrors "errors"
	"fmt"
)

// PipelineStage names the four cached stages plus the two uncached
// stages that make up one process() invocation, in execution order.
type PipelineStage string

const (
	StageBase     PipelineStage = "base"
	StageExposure PipelineStage = "exposure"
	StageRetouch  PipelineStage = "retouch"
	StageLab      PipelineStage = "lab"
	StageToning   PipelineStage = "toning"
	StageCrop     PipelineStage = "crop"
)

// PipelineFailure is a typed stage error whose Stage/Unwrap give callers
// the provenance of a failure. It formats with the same StageError
// message as NewPipelineError. The Orchestrator returns the curated form
// built by NewPipelineError, which does not contain a PipelineFailure.
type PipelineFailure struct {
	Stage PipelineStage
	Cause error
}

func (e *PipelineFailure) Error() string {
	return fmt.Sprintf(StageError, e.Stage, e.Cause)
}

func (e *PipelineFailure) Unwrap() error {
	return e.Cause
}

// NewPipelineError builds the curated form of a PipelineFailure so it
// composes with Head/Is/Has like every other error produced by this
// package.
func NewPipelineError(stage PipelineStage, cause error) error {
	return Errorf(StageError, stage, cause)
}

// AsPipelineFailure reports whether err (or one of the errors it wraps)
// is a *PipelineFailure and, if so, returns it.
func AsPipelineFailure(err error) (*PipelineFailure, bool) {
	var pf *PipelineFailure
	ok := stderrors.As(err, &pf)
	return pf, ok
}
