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

package pipeline

import (
	"io"

	"github.com/bradleyjkemp/memviz"
)

// DumpStageGraph writes a graphviz dot rendering of the Orchestrator's
// cache state to w: every cached stage entry, its config hash and its
// buffer dimensions. Intended for debugging a stuck or unexpectedly
// re-running stage in the CLI's --debug-graph mode, not for any
// runtime decision.
func (o *Orchestrator) DumpStageGraph(w io.Writer) error {
	memviz.Map(w, o.cache)
	return nil
}
