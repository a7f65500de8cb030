// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"encoding/json"
	"os"

	"github.com/cpmech/goplast/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Path holds a loading path given by deformation gradients
type Path struct {
	F  []tsr.Mat // deformation gradients; F[0] is the initial one
	Dt []float64 // time increments [len(F)-1]
}

// Size returns the number of points in path
func (o *Path) Size() int { return len(o.F) }

// SetF sets the path with given deformation gradients and a constant time increment
func (o *Path) SetF(Fs []tsr.Mat, dt float64) (err error) {
	if len(Fs) < 2 {
		return chk.Err("path: at least two deformation gradients are required. %d is invalid\n", len(Fs))
	}
	if dt < 0 {
		return chk.Err("path: time increment must be non-negative. dt=%g is invalid\n", dt)
	}
	o.F = make([]tsr.Mat, len(Fs))
	copy(o.F, Fs)
	o.Dt = make([]float64, len(Fs)-1)
	for i := range o.Dt {
		o.Dt[i] = dt
	}
	for i, F := range Fs {
		if J := tsr.Det(tsr.FromMat(F)).V; J <= 0 {
			return chk.Err("path: det(F) of point %d must be positive. J=%g is invalid\n", i, J)
		}
	}
	return
}

// SetUniaxialStrain sets a path with F = diag(1+ε, 1, 1)
//  Input:
//   targets -- values of ε at the end of each segment; starts from ε=0
//   ninc    -- number of increments per segment
//   dt      -- time increment
func (o *Path) SetUniaxialStrain(targets []float64, ninc int, dt float64) error {
	return o.segments(targets, ninc, dt, func(ε float64) (F tsr.Mat) {
		F = tsr.MatIdentity()
		F[0][0] += ε
		return
	})
}

// SetSimpleShear sets a path with F = I + γ e₀⊗e₁
//  Input:
//   targets -- values of γ at the end of each segment; starts from γ=0
//   ninc    -- number of increments per segment
//   dt      -- time increment
func (o *Path) SetSimpleShear(targets []float64, ninc int, dt float64) error {
	return o.segments(targets, ninc, dt, func(γ float64) (F tsr.Mat) {
		F = tsr.MatIdentity()
		F[0][1] = γ
		return
	})
}

// segments builds piecewise linear paths of a scalar measure
func (o *Path) segments(targets []float64, ninc int, dt float64, fcn func(x float64) tsr.Mat) error {
	if len(targets) < 1 {
		return chk.Err("path: at least one target is required\n")
	}
	if ninc < 1 {
		return chk.Err("path: number of increments must be positive. ninc=%d is invalid\n", ninc)
	}
	Fs := []tsr.Mat{fcn(0)}
	x0 := 0.0
	for _, x1 := range targets {
		xs := utl.LinSpace(x0, x1, ninc+1)
		for _, x := range xs[1:] {
			Fs = append(Fs, fcn(x))
		}
		x0 = x1
	}
	return o.SetF(Fs, dt)
}

// pathData holds the contents of path files
type pathData struct {
	Type    string        // "uniaxial", "shear" or "F"
	Targets []float64     // targets for "uniaxial" or "shear"
	Ninc    int           // number of increments per segment
	Dt      float64       // time increment
	F       [][][]float64 // deformation gradients for "F"
}

// ReadJson reads path from JSON file
func (o *Path) ReadJson(fn string) (err error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return chk.Err("path: cannot read file %q: %v\n", fn, err)
	}
	return o.ParseJson(b)
}

// ParseJson sets path from JSON data
//  Example: {"type":"uniaxial", "targets":[0.01, 0], "ninc":10, "dt":0.1}
func (o *Path) ParseJson(b []byte) (err error) {
	var dat pathData
	if err = json.Unmarshal(b, &dat); err != nil {
		return chk.Err("path: cannot parse JSON data: %v\n", err)
	}
	switch dat.Type {
	case "uniaxial":
		return o.SetUniaxialStrain(dat.Targets, dat.Ninc, dat.Dt)
	case "shear":
		return o.SetSimpleShear(dat.Targets, dat.Ninc, dat.Dt)
	case "F":
		Fs := make([]tsr.Mat, len(dat.F))
		for k, F := range dat.F {
			if len(F) != 3 {
				return chk.Err("path: deformation gradient %d must be 3x3\n", k)
			}
			for i := 0; i < 3; i++ {
				if len(F[i]) != 3 {
					return chk.Err("path: deformation gradient %d must be 3x3\n", k)
				}
				copy(Fs[k][i][:], F[i])
			}
		}
		return o.SetF(Fs, dat.Dt)
	}
	return chk.Err("path: type %q is not available\n", dat.Type)
}
