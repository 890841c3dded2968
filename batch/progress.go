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

package batch

import (
	"fmt"
	"io"
	"sync"

	"github.com/pkg/term"
)

// ProgressLine repaints a single `(completed, total, current_name)`
// line in place, per spec §4.11. It opens the controlling terminal in
// raw mode so carriage returns aren't translated by the line
// discipline; outside a real terminal (redirected to a file, CI) that
// open fails and it falls back to plain newline-terminated writes to
// w.
type ProgressLine struct {
	mu  sync.Mutex
	w   io.Writer
	tty *term.Term
}

// NewProgressLine returns a ProgressLine writing to w, attempting to
// put the controlling tty in raw mode for in-place repaint.
func NewProgressLine(w io.Writer) *ProgressLine {
	p := &ProgressLine{w: w}
	if tty, err := term.Open("/dev/tty"); err == nil {
		if err := tty.SetRaw(); err == nil {
			p.tty = tty
		} else {
			_ = tty.Close()
		}
	}
	return p
}

// Update repaints the progress line for one completed job.
func (p *ProgressLine) Update(pr Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()

	status := "ok"
	if pr.Failed {
		status = "FAILED"
	}
	line := fmt.Sprintf("[%d/%d] %s (%s)", pr.Completed, pr.Total, pr.Current, status)

	if p.tty != nil {
		fmt.Fprintf(p.w, "\r\x1b[K%s", line)
		return
	}
	fmt.Fprintln(p.w, line)
}

// Done finalizes the progress display: a trailing newline when raw
// mode was in use, and restoring the terminal's prior mode.
func (p *ProgressLine) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.tty == nil {
		return
	}
	fmt.Fprintln(p.w)
	_ = p.tty.Restore()
	_ = p.tty.Close()
	p.tty = nil
}
