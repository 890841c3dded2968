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

// Package batch implements the bounded-concurrency worker pool that
// drives the headless converter over many files (spec §4.11). Each job
// loads, processes and writes one file independently; one file's
// failure never aborts the batch.
package batch

import (
	"runtime"
	"sync"
)

// Job is one unit of batch work: whatever a caller needs to process
// and write a single file, opaque to the pool itself.
type Job struct {
	Name string
	Run  func() error
}

// Progress is reported after every completed job.
type Progress struct {
	Completed int
	Total     int
	Current   string
	Failed    bool
}

// Summary is the aggregate result of a batch run (spec §7's "K/N
// succeeded" line).
type Summary struct {
	Succeeded int
	Failed    int
}

// DefaultWorkers returns max(1, available_parallelism/3), the pool
// size spec §4.11 specifies when the caller doesn't override it.
func DefaultWorkers() int {
	n := runtime.NumCPU() / 3
	if n < 1 {
		n = 1
	}
	return n
}

// Run processes jobs with at most maxWorkers running concurrently. If
// maxWorkers <= 0, DefaultWorkers() is used. onProgress, if non-nil, is
// called once per completed job from whichever worker goroutine
// finished it; callers that need a single display thread should
// serialize inside their own callback (see ProgressLine).
func Run(jobs []Job, maxWorkers int, onProgress func(Progress)) Summary {
	if maxWorkers <= 0 {
		maxWorkers = DefaultWorkers()
	}

	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup
	var mu sync.Mutex

	summary := Summary{}
	completed := 0
	total := len(jobs)

	for _, job := range jobs {
		job := job
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			err := job.Run()

			mu.Lock()
			completed++
			if err != nil {
				summary.Failed++
			} else {
				summary.Succeeded++
			}
			if onProgress != nil {
				onProgress(Progress{Completed: completed, Total: total, Current: job.Name, Failed: err != nil})
			}
			mu.Unlock()
		}()
	}

	wg.Wait()
	return summary
}
