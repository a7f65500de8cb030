// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ips evaluates constitutive models over sets of integration points
package ips

import (
	"github.com/cpmech/goplast/msolid"
	"github.com/cpmech/goplast/tsr"
	"github.com/cpmech/gosl/chk"
)

// Mode defines what is evaluated
type Mode int

const (
	Residual Mode = iota // stresses only
	Jacobian             // stresses and derivatives
)

// Point holds the data of one integration point
type Point struct {
	F   tsr.Ten       // deformation gradient; may carry partials w.r.t. the caller's unknowns
	Old *msolid.State // state at the beginning of the step (read only)
	New *msolid.State // state at the end of the step
	Res msolid.Result // stress and internal variables with derivatives
	Err error         // error of the last evaluation
}

// Workset holds a batch of points sharing one model
type Workset struct {
	Mdl      msolid.Model // constitutive model
	Dt       float64      // time step
	Mode     Mode         // evaluation mode
	Nworkers int          // number of concurrent workers; ≤ 1 means sequential
	Pts      []*Point     // points
}

// NewWorkset allocates npts points with initial states from the model
func NewWorkset(mdl msolid.Model, npts int) (o *Workset, err error) {
	if mdl == nil {
		return nil, chk.Err("workset: model must not be nil\n")
	}
	if npts < 1 {
		return nil, chk.Err("workset: number of points must be positive. npts=%d is invalid\n", npts)
	}
	o = &Workset{Mdl: mdl, Nworkers: 1}
	o.Pts = make([]*Point, npts)
	for i := 0; i < npts; i++ {
		old := mdl.InitState()
		o.Pts[i] = &Point{F: tsr.Identity(), Old: old, New: old.GetCopy()}
	}
	return
}

// SetF sets the deformation gradient of point i (no partials)
func (o *Workset) SetF(i int, F tsr.Mat) {
	o.Pts[i].F = tsr.FromMat(F)
}

// Evaluate updates all points and returns the number of failures
//  Note: failed points keep their error in Point.Err and do not stop the batch
func (o *Workset) Evaluate() (nfail int) {
	nw := o.Nworkers
	if nw > len(o.Pts) {
		nw = len(o.Pts)
	}
	if nw <= 1 {
		for _, p := range o.Pts {
			o.evaluate(p)
		}
		return o.failures()
	}

	// disjoint chunks of points
	n := len(o.Pts)
	size := (n + nw - 1) / nw
	done := make(chan int, nw)
	ngo := 0
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		go func(pts []*Point) {
			for _, p := range pts {
				o.evaluate(p)
			}
			done <- 1
		}(o.Pts[start:end])
		ngo++
	}
	for i := 0; i < ngo; i++ {
		<-done
	}
	return o.failures()
}

// evaluate updates one point
func (o *Workset) evaluate(p *Point) {
	F := p.F
	switch o.Mode {
	case Residual:
		F = tsr.Primal(F)
	case Jacobian:
		if tsr.NumDeriv(F) == 0 {
			F = tsr.Seed(tsr.Values(F))
		}
	}
	p.New.Set(p.Old)
	p.Err = o.Mdl.Update(&p.Res, p.New, p.Old, F, o.Dt)
}

// failures counts the points with errors
func (o *Workset) failures() (nfail int) {
	for _, p := range o.Pts {
		if p.Err != nil {
			nfail++
		}
	}
	return
}

// Stress returns the Cauchy stress of point i
func (o *Workset) Stress(i int) tsr.Mat {
	return o.Pts[i].New.Sig
}

// Tangent returns ∂σ/∂x of point i as a [9][m] matrix
//  Note: x are the 9 components of F if the caller did not seed F
func (o *Workset) Tangent(i int) [][]float64 {
	return o.Pts[i].Res.Tangent()
}

// Promote accepts the step: the new states become the old ones
func (o *Workset) Promote() {
	for _, p := range o.Pts {
		p.Old.Set(p.New)
	}
}
