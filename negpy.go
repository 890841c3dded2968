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

// negpy is the headless batch converter described in spec §6.2: it
// walks a set of files or directories, runs each through the
// photometric pipeline and export compositor, and writes the result
// next to (or under) an output directory.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	negerrors "github.com/jetsetilly/negpy/errors"
	"github.com/jetsetilly/negpy/batch"
	"github.com/jetsetilly/negpy/export"
	"github.com/jetsetilly/negpy/gpu"
	"github.com/jetsetilly/negpy/icc"
	"github.com/jetsetilly/negpy/imaging"
	"github.com/jetsetilly/negpy/logger"
	"github.com/jetsetilly/negpy/pipeline"
	"github.com/jetsetilly/negpy/rawio"
)

func main() {
	logger.SetEcho(os.Stderr, false)
	os.Exit(run(os.Args[1:]))
}

// run is main's testable body, returning the process exit code (spec
// §6.2: 0 = all succeeded, 1 = bad arguments/no input/partial
// failure).
func run(args []string) int {
	f, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if len(f.files) == 0 {
		fmt.Fprintln(os.Stderr, "negpy: no input files or directories given")
		return 1
	}

	sources, err := collectSources(f.files)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(sources) == 0 {
		fmt.Fprintln(os.Stderr, "negpy: no recognized source files found")
		return 1
	}

	if err := os.MkdirAll(f.output, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, negerrors.Errorf(negerrors.DirCreateError, err))
		return 1
	}

	var dashboard *batch.Dashboard
	if f.statsAddr != "" {
		dashboard = batch.NewDashboard(f.statsAddr)
		defer dashboard.Stop()
	}

	progress := batch.NewProgressLine(os.Stderr)
	defer progress.Done()

	provider := icc.NewProvider()
	dev := gpu.NewCPUFallback()

	var dumpGraphOnce sync.Once

	jobs := make([]batch.Job, 0, len(sources))
	for _, src := range sources {
		src := src
		jobs = append(jobs, batch.Job{
			Name: src.Name,
			Run: func() error {
				return convertOne(src, f, provider, dev, &dumpGraphOnce)
			},
		})
	}

	start := time.Now()
	summary := batch.Run(jobs, batch.DefaultWorkers(), progress.Update)
	elapsed := time.Since(start)

	fmt.Printf("Done: %d/%d succeeded in %s\n", summary.Succeeded, len(jobs), elapsed.Round(time.Millisecond))

	if summary.Failed > 0 {
		return 1
	}
	return 0
}

// collectSources expands files/directories (recursively) into
// rawio.Source values, warning and skipping anything rawio doesn't
// recognize (spec §6.2).
func collectSources(inputs []string) ([]rawio.Source, error) {
	var sources []rawio.Source

	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			fmt.Fprintf(os.Stderr, "negpy: skipping %s: %v\n", in, err)
			continue
		}

		if !info.IsDir() {
			src, ok := addSource(in)
			if ok {
				sources = append(sources, src)
			}
			continue
		}

		err = filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if src, ok := addSource(path); ok {
				sources = append(sources, src)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return sources, nil
}

func addSource(path string) (rawio.Source, bool) {
	if !rawio.IsRecognized(path) {
		fmt.Fprintf(os.Stderr, "negpy: skipping %s: %v\n", path, negerrors.Errorf(negerrors.UnsupportedFormat, filepath.Ext(path)))
		return rawio.Source{}, false
	}
	if !rawio.IsDecodable(path) {
		fmt.Fprintf(os.Stderr, "negpy: skipping %s: %v\n", path, negerrors.Errorf(negerrors.UnsupportedFormat, filepath.Ext(path)))
		return rawio.Source{}, false
	}
	src, err := rawio.NewSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "negpy: skipping %s: %v\n", path, err)
		return rawio.Source{}, false
	}
	return src, true
}

// convertOne loads, processes and exports one source file, writing the
// result into f.output. dumpGraphOnce guards --debug-graph so only the
// first file processed (of potentially many, run concurrently) writes
// its stage cache graph.
func convertOne(src rawio.Source, f cliFlags, provider *icc.Provider, dev gpu.Device, dumpGraphOnce *sync.Once) error {
	buf, _, err := rawio.Load(src.Path, rawio.Options{})
	if err != nil {
		return err
	}

	ws, exp, err := buildWorkspace(f)
	if err != nil {
		return err
	}

	orch := pipeline.NewOrchestrator()

	var positive *imaging.Buffer
	if f.noGPU {
		positive, _, err = orch.Process(buf, ws, src.FingerprintHash)
	} else {
		positive, _, err = gpu.Run(dev, orch, buf, ws, src.FingerprintHash, false)
	}
	if err != nil {
		return err
	}

	if f.debugGraph != "" {
		dumpGraphOnce.Do(func() {
			if gf, ferr := os.Create(f.debugGraph); ferr == nil {
				defer gf.Close()
				_ = orch.DumpStageGraph(gf)
			}
		})
	}

	toningActive := ws.Toning.SeleniumStrength > 0 || ws.Toning.SepiaStrength > 0
	result, err := export.Export(positive, exp, ws.ProcessMode, toningActive, provider)
	if err != nil {
		return err
	}

	ext := ".jpg"
	if result.Format == export.TIFF {
		ext = ".tiff"
	}
	name := renderFilename(f.filenamePattern, src.Name, ws.ProcessMode, exp.ColorSpace, exp.BorderSizeCM)
	outPath := filepath.Join(f.output, name+ext)

	if err := os.WriteFile(outPath, result.Bytes, 0o644); err != nil {
		return negerrors.Errorf(negerrors.FileWriteError, err)
	}
	return nil
}
