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

import "github.com/go-echarts/statsview"

// Dashboard wraps an optional live runtime-stats page (goroutine
// count, GC pause, heap size) for long-running batch conversions,
// useful when diagnosing a stalled worker pool. It is strictly a
// debugging aid; batch.Run works identically with or without one.
type Dashboard struct {
	viewer *statsview.Viewer
}

// NewDashboard starts a statsview server on addr (e.g. ":18066") and
// returns a handle to stop it. Pass an empty addr to use statsview's
// built-in default.
func NewDashboard(addr string) *Dashboard {
	if addr != "" {
		statsview.SetConfiguration(statsview.WithAddr(addr))
	}
	v := statsview.New()
	go v.Start()
	return &Dashboard{viewer: v}
}

// Stop shuts the dashboard server down.
func (d *Dashboard) Stop() {
	if d == nil || d.viewer == nil {
		return
	}
	d.viewer.Stop()
}
