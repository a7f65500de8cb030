// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"
	"testing"

	"github.com/cpmech/goplast/nls"
	"github.com/cpmech/goplast/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Driver runs a model through a loading path
type Driver struct {

	// input
	Mdl Model // constitutive model

	// settings
	Silent  bool    // do not show error messages
	Verbose bool    // show progress
	TolD    float64 // tolerance to check the tangent (relative to the largest entry)
	HD      float64 // finite differences step to check the tangent
	VerD    bool    // verbose check of the tangent

	// check tangent
	Check bool       // check the exact tangent against centered differences
	TstD  *testing.T // if != nil, check the tangent and report failures to the test
	Nbad  int        // number of tangent entries failing the check

	// results
	Res    []*State     // results
	Status []nls.Status // local solver status per increment [len(Res)-1]
	Iters  []int        // number of local iterations per increment [len(Res)-1]
}

// Init initialises driver
func (o *Driver) Init(mdl Model) (err error) {
	if mdl == nil {
		return chk.Err("driver: model must not be nil\n")
	}
	o.Mdl = mdl
	o.TolD = 1e-5
	o.HD = 1e-6
	o.VerD = chk.Verbose
	return
}

// Run runs simulation
func (o *Driver) Run(pth *Path) (err error) {

	// allocate results arrays
	np := pth.Size()
	if np < 2 {
		return chk.Err("driver: path must have at least two points\n")
	}
	o.Res = make([]*State, np)
	o.Status = make([]nls.Status, np-1)
	o.Iters = make([]int, np-1)
	o.Nbad = 0
	check := o.Check || o.TstD != nil

	// initial state
	o.Res[0] = o.Mdl.InitState()
	o.Res[0].F = pth.F[0]

	// update states
	var res Result
	for i := 1; i < np; i++ {
		var F tsr.Ten
		if check {
			F = tsr.Seed(pth.F[i])
		} else {
			F = tsr.FromMat(pth.F[i])
		}
		o.Res[i] = o.Res[i-1].GetCopy()
		err = o.Mdl.Update(&res, o.Res[i], o.Res[i-1], F, pth.Dt[i-1])
		o.Status[i-1] = res.Solve.Status
		o.Iters[i-1] = res.Solve.It
		if err != nil {
			if !o.Silent {
				io.Pfred("driver: update failed at increment %d: %v\n", i, err)
			}
			return
		}
		if o.Verbose {
			io.Pf("%4d: σ00=%13.6e σ01=%13.6e eqps=%11.4e loading=%v it=%d\n", i,
				o.Res[i].Sig[0][0], o.Res[i].Sig[0][1], o.Res[i].Eqps, res.Loading, res.Solve.It)
		}

		// check tangent
		if check {
			o.checkTangent(i, &res, pth)
		}
	}
	return
}

// checkTangent compares ∂σ/∂F of increment i against centered finite differences
func (o *Driver) checkTangent(i int, res *Result, pth *Path) {
	D := res.Tangent()
	var dmax float64
	for _, row := range D {
		for _, v := range row {
			dmax = math.Max(dmax, math.Abs(v))
		}
	}
	scale := math.Max(dmax, 1)
	var rp, rm Result
	sp := o.Res[i].GetCopy()
	sm := o.Res[i].GetCopy()
	for k := 0; k < 9; k++ {
		a, b := k/3, k%3
		Fp, Fm := pth.F[i], pth.F[i]
		Fp[a][b] += o.HD
		Fm[a][b] -= o.HD
		ep := o.Mdl.Update(&rp, sp, o.Res[i-1], tsr.FromMat(Fp), pth.Dt[i-1])
		em := o.Mdl.Update(&rm, sm, o.Res[i-1], tsr.FromMat(Fm), pth.Dt[i-1])
		if ep != nil || em != nil {
			o.Nbad++
			o.report("driver: increment %d: cannot perturb F%d%d: %v %v\n", i, a, b, ep, em)
			return
		}
		for r := 0; r < 9; r++ {
			c, d := r/3, r%3
			num := (sp.Sig[c][d] - sm.Sig[c][d]) / (2 * o.HD)
			ana := D[r][k]
			err := math.Abs(ana-num) / scale
			if o.VerD {
				io.Pf("dσ%d%d/dF%d%d @ %d: ana=%23.15e num=%23.15e err=%g\n", c, d, a, b, i, ana, num, err)
			}
			if err > o.TolD || math.IsNaN(err) {
				o.Nbad++
				o.report("driver: increment %d: dσ%d%d/dF%d%d: ana=%g num=%g (err=%g > %g)\n", i, c, d, a, b, ana, num, err, o.TolD)
			}
		}
	}
}

// report reports a tangent check failure
func (o *Driver) report(msg string, prm ...interface{}) {
	if o.TstD != nil {
		o.TstD.Errorf(msg, prm...)
		return
	}
	if !o.Silent {
		io.Pfred(msg, prm...)
	}
}
