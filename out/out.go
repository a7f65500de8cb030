// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements output of material point simulations: tables and plots
package out

import (
	"bytes"
	"image/color"

	"github.com/cpmech/goplast/msolid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// figure size
var (
	Width  = 5 * vg.Inch
	Height = 4 * vg.Inch
)

// Curve holds the data of one x-y curve
type Curve struct {
	X, Y  []float64 // values
	Label string    // legend; "" => no legend entry
	Marks bool      // draw markers as well
}

// Strain returns F[i][j] - δij along the driver results
func Strain(drv *msolid.Driver, i, j int) (x []float64) {
	x = make([]float64, len(drv.Res))
	for k, s := range drv.Res {
		x[k] = s.F[i][j]
		if i == j {
			x[k] -= 1
		}
	}
	return
}

// Stress returns σij along the driver results
func Stress(drv *msolid.Driver, i, j int) (y []float64) {
	y = make([]float64, len(drv.Res))
	for k, s := range drv.Res {
		y[k] = s.Sig[i][j]
	}
	return
}

// Eqps returns the equivalent plastic strain along the driver results
func Eqps(drv *msolid.Driver) (y []float64) {
	y = make([]float64, len(drv.Res))
	for k, s := range drv.Res {
		y[k] = s.Eqps
	}
	return
}

// Draw saves a figure with the given curves; the extension of fn selects the format
func Draw(fn, title, xlbl, ylbl string, curves ...*Curve) (err error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlbl
	p.Y.Label.Text = ylbl
	p.Add(plotter.NewGrid())
	for k, c := range curves {
		if len(c.X) != len(c.Y) {
			return chk.Err("out: curve %d has %d x-values and %d y-values\n", k, len(c.X), len(c.Y))
		}
		xys := make(plotter.XYs, len(c.X))
		for i := range c.X {
			xys[i].X, xys[i].Y = c.X[i], c.Y[i]
		}
		l, e := plotter.NewLine(xys)
		if e != nil {
			return e
		}
		l.Color = palette[k%len(palette)]
		p.Add(l)
		if c.Marks {
			s, e := plotter.NewScatter(xys)
			if e != nil {
				return e
			}
			s.Color = l.Color
			p.Add(s)
		}
		if c.Label != "" {
			p.Legend.Add(c.Label, l)
		}
	}
	return p.Save(Width, Height, fn)
}

// PlotDriver saves σij versus Fij - δij and eqps versus Fij - δij
//  Output: files <dirout>/<key>_sig<i><j>.<ext> and <dirout>/<key>_eqps.<ext>
func PlotDriver(dirout, key, ext string, drv *msolid.Driver, i, j int) (err error) {
	if len(drv.Res) == 0 {
		return chk.Err("out: driver has no results\n")
	}
	x := Strain(drv, i, j)
	cur := &Curve{X: x, Y: Stress(drv, i, j), Label: drv.Mdl.Name(), Marks: true}
	fn := io.Sf("%s/%s_sig%d%d.%s", dirout, key, i, j, ext)
	if err = Draw(fn, key, io.Sf("F%d%d - δ%d%d", i, j, i, j), io.Sf("σ%d%d", i, j), cur); err != nil {
		return
	}
	cur = &Curve{X: x, Y: Eqps(drv), Label: drv.Mdl.Name()}
	fn = io.Sf("%s/%s_eqps.%s", dirout, key, ext)
	return Draw(fn, key, io.Sf("F%d%d - δ%d%d", i, j, i, j), "eqps", cur)
}

// WriteTable saves the driver results as a text table: F, σ, eqps, void, status and iterations
func WriteTable(dirout, fn string, drv *msolid.Driver) {
	var b bytes.Buffer
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			io.Ff(&b, "%23s", io.Sf("F%d%d", i, j))
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			io.Ff(&b, "%23s", io.Sf("sig%d%d", i, j))
		}
	}
	io.Ff(&b, "%23s%23s%8s%6s\n", "eqps", "void", "status", "it")
	for k, s := range drv.Res {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				io.Ff(&b, "%23.15e", s.F[i][j])
			}
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				io.Ff(&b, "%23.15e", s.Sig[i][j])
			}
		}
		io.Ff(&b, "%23.15e%23.15e", s.Eqps, s.Void)
		if k == 0 {
			io.Ff(&b, "%8d%6d\n", 0, 0)
			continue
		}
		io.Ff(&b, "%8d%6d\n", drv.Status[k-1], drv.Iters[k-1])
	}
	io.WriteFileVD(dirout, fn, &b)
}

var palette = []color.Color{
	color.RGBA{R: 31, G: 119, B: 180, A: 255},
	color.RGBA{R: 214, G: 39, B: 40, A: 255},
	color.RGBA{R: 44, G: 160, B: 44, A: 255},
	color.RGBA{R: 255, G: 127, B: 14, A: 255},
	color.RGBA{R: 148, G: 103, B: 189, A: 255},
}
