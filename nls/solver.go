// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nls implements the local Newton solver used by the constitutive models
package nls

import (
	"math"

	"github.com/cpmech/goplast/ad"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

// Status holds the outcome of a local solve
type Status int

const (
	Converged             Status = iota // residual below tolerance
	MaxIterationsExceeded               // iteration cap reached; last iterate kept
	LinearSolveFailed                   // singular or non-finite Jacobian
	ResidualFailed                      // residual cannot be evaluated at an iterate
)

// String returns the name of the status
func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case MaxIterationsExceeded:
		return "max iterations exceeded"
	case LinearSolveFailed:
		return "linear solve failed"
	case ResidualFailed:
		return "residual failed"
	}
	return io.Sf("status(%d)", int(s))
}

// ErrResidual is returned by residual functions to flag an inadmissible iterate
var ErrResidual = chk.Err("nls: residual cannot be evaluated at this iterate")

// Func computes the residual r for given unknowns x
//  Note: the derivative layout of r follows the one of x and of the captured inputs
type Func func(r, x []ad.Number) error

// Result holds convergence information
type Result struct {
	It     int     // number of Newton updates
	NormR  float64 // final residual norm
	NormR0 float64 // initial residual norm
	Status Status  // outcome
}

// Solver implements a plain full-step Newton method with dense LU
type Solver struct {
	Tol     float64 // tolerance on the absolute or relative residual norm
	MaxIt   int     // max number of iterations
	Verbose bool    // show iterations
	Name    string  // prefix for messages
}

// NewSolver returns a solver with the given iteration cap and the default tolerance
func NewSolver(name string, maxIt int) *Solver {
	return &Solver{Tol: 1e-11, MaxIt: maxIt, Name: name}
}

// converged checks the convergence criteria
func (o *Solver) converged(nr, nr0 float64) bool {
	if nr < o.Tol {
		return true
	}
	return nr0 > 0 && nr/nr0 < o.Tol
}

// Solve solves r(x) = 0 starting from x; x is overwritten by the last iterate
func (o *Solver) Solve(x []float64, fcn Func) (res Result) {
	n := len(x)
	r := make([]ad.Number, n)
	J := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)
	var dx mat.VecDense
	var lu mat.LU
	for it := 0; ; it++ {

		// residual and Jacobian with unknowns seeded
		xs := ad.Vars(x)
		if err := fcn(r, xs); err != nil {
			res.Status = ResidualFailed
			return
		}
		res.NormR = ad.Norm(r)
		if it == 0 {
			res.NormR0 = res.NormR
		}
		if o.Verbose {
			io.Pf("%s: it=%2d |r|=%23.15e\n", o.Name, it, res.NormR)
		}
		if math.IsNaN(res.NormR) || math.IsInf(res.NormR, 0) {
			res.Status = ResidualFailed
			return
		}
		if o.converged(res.NormR, res.NormR0) {
			res.Status = Converged
			return
		}
		if it == o.MaxIt {
			res.Status = MaxIterationsExceeded
			return
		}

		// solve J⋅dx = -r
		if !fill(J, r) {
			res.Status = LinearSolveFailed
			return
		}
		for i := 0; i < n; i++ {
			b.SetVec(i, -r[i].V)
		}
		lu.Factorize(J)
		if err := lu.SolveVecTo(&dx, false, b); err != nil {
			res.Status = LinearSolveFailed
			return
		}
		for i := 0; i < n; i++ {
			δ := dx.AtVec(i)
			if math.IsNaN(δ) || math.IsInf(δ, 0) {
				res.Status = LinearSolveFailed
				return
			}
			x[i] += δ
		}
		res.It++
	}
}

// Sensitivity returns the converged unknowns x carrying derivatives w.r.t. outer unknowns
//  local -- residual evaluated with primal inputs; gives J = ∂r/∂x
//  outer -- residual evaluated with dual inputs (m partials) and plain x; gives ∂r/∂p
//  Output: dx/dp = -J⁻¹⋅∂r/∂p
func (o *Solver) Sensitivity(x []float64, local, outer Func) (xs []ad.Number, err error) {
	n := len(x)
	r := make([]ad.Number, n)
	if err = outer(r, ad.Consts(x)); err != nil {
		return
	}
	m := 0
	for _, ri := range r {
		if ri.N() > 0 {
			m = ri.N()
			break
		}
	}
	if m == 0 {
		return ad.Consts(x), nil
	}
	B := mat.NewDense(n, m, nil)
	for i, ri := range r {
		for k, d := range ri.D {
			B.Set(i, k, -d)
		}
	}
	if err = local(r, ad.Vars(x)); err != nil {
		return
	}
	J := mat.NewDense(n, n, nil)
	if !fill(J, r) {
		return nil, chk.Err("%s: non-finite Jacobian in sensitivity\n", o.Name)
	}
	var lu mat.LU
	var X mat.Dense
	lu.Factorize(J)
	if err = lu.SolveTo(&X, false, B); err != nil {
		return nil, chk.Err("%s: cannot solve for sensitivities: %v\n", o.Name, err)
	}
	xs = make([]ad.Number, n)
	for i := 0; i < n; i++ {
		d := make([]float64, m)
		for k := 0; k < m; k++ {
			d[k] = X.At(i, k)
		}
		xs[i] = ad.Number{V: x[i], D: d}
	}
	return
}

// fill sets J from the partials of r; returns false if any entry is not finite
func fill(J *mat.Dense, r []ad.Number) bool {
	n := len(r)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := r[i].Deriv(j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
			J.Set(i, j, v)
		}
	}
	return true
}
