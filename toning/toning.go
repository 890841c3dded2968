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

// Package toning implements paper substrate simulation and chemical
// toning (selenium, sepia), the last photometric stage of the pipeline.
package toning

import (
	"math"

	"github.com/jetsetilly/negpy/exposure"
	"github.com/jetsetilly/negpy/imaging"
)

// PaperProfile is a named substrate tint plus D-max boost.
type PaperProfile struct {
	Name      string
	Tint      [3]float64
	DMaxBoost float64
}

// Named paper profiles, matching spec §3 ToningConfig.paper_profile.
var (
	PaperNone        = PaperProfile{Name: "None", Tint: [3]float64{1, 1, 1}, DMaxBoost: 1}
	PaperNeutralRC   = PaperProfile{Name: "Neutral RC", Tint: [3]float64{1.0, 1.0, 1.0}, DMaxBoost: 1.05}
	PaperCoolGlossy  = PaperProfile{Name: "Cool Glossy", Tint: [3]float64{0.97, 0.99, 1.03}, DMaxBoost: 1.1}
	PaperWarmFiber   = PaperProfile{Name: "Warm Fiber", Tint: [3]float64{1.04, 1.0, 0.93}, DMaxBoost: 0.95}
	PaperAntiqueIvory = PaperProfile{Name: "Antique Ivory", Tint: [3]float64{1.03, 0.98, 0.85}, DMaxBoost: 0.9}
)

var profilesByName = map[string]PaperProfile{
	PaperNone.Name:         PaperNone,
	PaperNeutralRC.Name:    PaperNeutralRC,
	PaperCoolGlossy.Name:   PaperCoolGlossy,
	PaperWarmFiber.Name:    PaperWarmFiber,
	PaperAntiqueIvory.Name: PaperAntiqueIvory,
}

// LookupProfile returns the named profile, falling back to PaperNone
// for an unrecognised name.
func LookupProfile(name string) PaperProfile {
	if p, ok := profilesByName[name]; ok {
		return p
	}
	return PaperNone
}

// Config is the user-facing toning slider set (spec §3 ToningConfig).
type Config struct {
	PaperProfile      string
	SeleniumStrength  float64 // [0,2]
	SepiaStrength     float64 // [0,2]
}

// Clamp brings scalar fields into their legal range in place.
func (c *Config) Clamp() {
	c.SeleniumStrength = clamp(c.SeleniumStrength, 0, 2)
	c.SepiaStrength = clamp(c.SepiaStrength, 0, 2)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var seleniumTint = [3]float64{0.85, 0.75, 0.85}
var sepiaTint = [3]float64{1.0 * 1.1, 0.9 * 1.1, 0.75 * 1.1}

// Apply runs the substrate tint, selenium and sepia passes in order,
// clipping the final output to [0,1]. mode is used to gate selenium to
// B&W-only per spec §4.6.
func Apply(buf *imaging.Buffer, cfg Config, mode exposure.ProcessMode) *imaging.Buffer {
	cfg.Clamp()
	profile := LookupProfile(cfg.PaperProfile)

	out := substrate(buf, profile)
	if mode == exposure.BW {
		out = selenium(out, cfg.SeleniumStrength)
	}
	out = sepia(out, cfg.SepiaStrength)
	out.Clamp01()
	return out
}

func substrate(buf *imaging.Buffer, p PaperProfile) *imaging.Buffer {
	out := imaging.NewRGB(buf.Height, buf.Width)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := buf.RGB(y, x)
			vals := [3]float64{float64(r), float64(g), float64(b)}
			for c := 0; c < 3; c++ {
				v := vals[c] * p.Tint[c]
				vals[c] = math.Pow(clip01(v), p.DMaxBoost)
			}
			out.SetRGB(y, x, float32(vals[0]), float32(vals[1]), float32(vals[2]))
		}
	}
	return out
}

func selenium(buf *imaging.Buffer, strength float64) *imaging.Buffer {
	if strength <= 0 {
		return buf
	}
	return tone(buf, strength, seleniumTint, func(luma float64) float64 {
		m := 1 - luma
		return m * m
	})
}

func sepia(buf *imaging.Buffer, strength float64) *imaging.Buffer {
	if strength <= 0 {
		return buf
	}
	return tone(buf, strength, sepiaTint, func(luma float64) float64 {
		d := luma - 0.6
		return math.Exp(-(d * d) / (2 * 0.2 * 0.2))
	})
}

func tone(buf *imaging.Buffer, strength float64, tint [3]float64, weight func(float64) float64) *imaging.Buffer {
	out := imaging.NewRGB(buf.Height, buf.Width)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := buf.RGB(y, x)
			luma := float64(imaging.LumaR*r + imaging.LumaG*g + imaging.LumaB*b)
			m := strength * weight(luma)

			vals := [3]float64{float64(r), float64(g), float64(b)}
			var outVals [3]float64
			for c := 0; c < 3; c++ {
				outVals[c] = vals[c]*(1-m) + vals[c]*tint[c]*m
			}
			out.SetRGB(y, x, float32(outVals[0]), float32(outVals[1]), float32(outVals[2]))
		}
	}
	return out
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
