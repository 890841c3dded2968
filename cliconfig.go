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

package main

import (
	"flag"
	"strings"
	"text/template"
	"time"

	negerrors "github.com/jetsetilly/negpy/errors"
	"github.com/jetsetilly/negpy/export"
	"github.com/jetsetilly/negpy/exposure"
	"github.com/jetsetilly/negpy/icc"
	"github.com/jetsetilly/negpy/pipeline"
	"github.com/jetsetilly/negpy/settings"
)

// cliFlags is the parsed form of the flag set described in spec §6.2.
type cliFlags struct {
	mode            string
	format          string
	output          string
	colorSpace      string
	density         float64
	grade           float64
	sharpen         float64
	dpi             int
	printSize       float64
	originalRes     bool
	filenamePattern string
	noGPU           bool
	settingsPath    string
	statsAddr       string
	debugGraph      string

	hasDensity bool
	hasGrade   bool
	hasSharpen bool
	hasDPI     bool
	hasPrint   bool

	files []string
}

// parseFlags builds a flag.FlagSet matching spec §6.2's CLI surface
// and parses args (normally os.Args[1:]) against it.
func parseFlags(args []string) (cliFlags, error) {
	var f cliFlags

	fs := flag.NewFlagSet("negpy", flag.ContinueOnError)
	fs.StringVar(&f.mode, "mode", "c41", "process mode: c41|bw|e6")
	fs.StringVar(&f.format, "format", "jpeg", "output format: jpeg|tiff")
	fs.StringVar(&f.output, "output", ".", "output directory")
	fs.StringVar(&f.colorSpace, "color-space", "srgb", "export color space")
	fs.Float64Var(&f.density, "density", 0, "density slider [-1,3]")
	fs.Float64Var(&f.grade, "grade", 1, "grade (contrast) slider [0,5]")
	fs.Float64Var(&f.sharpen, "sharpen", 0, "sharpen slider [0,1]")
	fs.IntVar(&f.dpi, "dpi", 300, "export DPI")
	fs.Float64Var(&f.printSize, "print-size", 25.4, "print long edge, centimetres")
	fs.BoolVar(&f.originalRes, "original-res", false, "export at the source's native resolution")
	fs.StringVar(&f.filenamePattern, "filename-pattern", "positive_{{ original_name }}", "output filename template")
	fs.BoolVar(&f.noGPU, "no-gpu", false, "never attempt the GPU path")
	fs.StringVar(&f.settingsPath, "settings", "", "settings JSON/flat file to load a full config from")
	fs.StringVar(&f.statsAddr, "stats-addr", "", "serve a live batch dashboard at this address")
	fs.StringVar(&f.debugGraph, "debug-graph", "", "write a graphviz dot dump of the first processed file's stage cache to this path")

	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "density":
			f.hasDensity = true
		case "grade":
			f.hasGrade = true
		case "sharpen":
			f.hasSharpen = true
		case "dpi":
			f.hasDPI = true
		case "print-size":
			f.hasPrint = true
		}
	})

	f.files = fs.Args()
	return f, nil
}

// processMode maps the --mode token to exposure.ProcessMode.
func processMode(s string) (exposure.ProcessMode, error) {
	switch strings.ToLower(s) {
	case "c41":
		return exposure.C41, nil
	case "bw":
		return exposure.BW, nil
	case "e6":
		return exposure.E6, nil
	default:
		return 0, negerrors.Errorf(negerrors.UnknownProcessMode, s)
	}
}

// colorSpace maps the --color-space token to icc.ColorSpace.
func colorSpace(s string) (icc.ColorSpace, error) {
	switch strings.ToLower(s) {
	case "srgb":
		return icc.SRGB, nil
	case "adobe-rgb":
		return icc.AdobeRGB, nil
	case "prophoto":
		return icc.ProPhoto, nil
	case "wide-gamut":
		return icc.WideGamut, nil
	case "aces":
		return icc.ACES, nil
	case "p3":
		return icc.DisplayP3, nil
	case "rec2020":
		return icc.Rec2020, nil
	case "greyscale":
		return icc.Greyscale, nil
	default:
		return "", negerrors.Errorf(negerrors.InvalidSlider, "color-space", s)
	}
}

// exportFormat maps the --format token to export.Format.
func exportFormat(s string) (export.Format, error) {
	switch strings.ToLower(s) {
	case "jpeg", "jpg":
		return export.JPEG, nil
	case "tiff", "tif":
		return export.TIFF, nil
	default:
		return "", negerrors.Errorf(negerrors.InvalidSlider, "format", s)
	}
}

// buildWorkspace resolves flags into a WorkspaceConfig, starting from
// a settings-file config (when --settings is given) and then
// overriding with any flag the user explicitly set, per spec §6.2:
// "then overridden by any explicit flag".
func buildWorkspace(f cliFlags) (pipeline.WorkspaceConfig, export.Config, error) {
	ws := defaultWorkspace()
	exp := export.DefaultConfig()

	if f.settingsPath != "" {
		loaded, err := settings.LoadWorkspaceConfig(f.settingsPath, ws)
		if err != nil {
			return pipeline.WorkspaceConfig{}, export.Config{}, negerrors.Errorf(negerrors.SettingsParseError, err)
		}
		ws = loaded
	}

	mode, err := processMode(f.mode)
	if err != nil {
		return pipeline.WorkspaceConfig{}, export.Config{}, err
	}
	ws.ProcessMode = mode

	if f.hasDensity {
		ws.Exposure.Density = f.density
	}
	if f.hasGrade {
		ws.Exposure.Grade = f.grade
	}
	if f.hasSharpen {
		ws.Lab.Sharpen = f.sharpen
	}

	cs, err := colorSpace(f.colorSpace)
	if err != nil {
		return pipeline.WorkspaceConfig{}, export.Config{}, err
	}
	exp.ColorSpace = cs

	format, err := exportFormat(f.format)
	if err != nil {
		return pipeline.WorkspaceConfig{}, export.Config{}, err
	}
	exp.Format = format

	if f.hasDPI {
		exp.DPI = f.dpi
	}
	if f.hasPrint {
		exp.PrintSizeCM = f.printSize
	}
	exp.UseOriginalRes = f.originalRes

	ws.Geometry.Clamp()
	ws.Exposure.Clamp()
	ws.Retouch.Clamp()
	ws.Lab.Clamp()
	ws.Toning.Clamp()
	exp.Clamp()

	return ws, exp, nil
}

func defaultWorkspace() pipeline.WorkspaceConfig {
	return pipeline.WorkspaceConfig{
		Exposure: exposure.DefaultConfig(),
	}
}

// renderFilename expands --filename-pattern's tokens via text/template,
// each token bound to a zero-arg function rather than a dotted field
// so the literal `{{ original_name }}` syntax spec §6.2 specifies
// parses and executes directly. Any parse or execution failure falls
// back to positive_<original_name>, per the same section.
func renderFilename(pattern, originalName string, mode exposure.ProcessMode, cs icc.ColorSpace, borderCM float64) string {
	fallback := "positive_" + originalName

	border := ""
	if borderCM > 0 {
		border = "border"
	}

	funcs := template.FuncMap{
		"original_name": func() string { return originalName },
		"date":          func() string { return time.Now().Format("2006-01-02") },
		"mode":          func() string { return mode.String() },
		"colorspace":    func() string { return string(cs) },
		"border":        func() string { return border },
	}

	tmpl, err := template.New("filename").Funcs(funcs).Parse(pattern)
	if err != nil {
		return fallback
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, nil); err != nil {
		return fallback
	}

	if b.String() == "" {
		return fallback
	}
	return b.String()
}
