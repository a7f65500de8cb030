// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ad implements forward-mode dual numbers carrying a dense vector of partial derivatives
package ad

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Number holds a primal value and its partial derivatives w.r.t. a set of unknowns
//  Note: D == nil means plain mode; no derivative work is done
type Number struct {
	V float64   // primal value
	D []float64 // partial derivatives (nil => plain)
}

// Const returns a plain number
func Const(v float64) Number {
	return Number{V: v}
}

// Var returns a number seeded as the i-th of n unknowns
func Var(v float64, i, n int) Number {
	d := make([]float64, n)
	d[i] = 1
	return Number{V: v, D: d}
}

// Zero returns a number with value zero and n zero partials
func Zero(n int) Number {
	if n == 0 {
		return Number{}
	}
	return Number{D: make([]float64, n)}
}

// N returns the number of partials
func (a Number) N() int { return len(a.D) }

// Plain returns true if a carries no derivatives
func (a Number) Plain() bool { return a.D == nil }

// Primal returns a copy of a without derivatives
func (a Number) Primal() Number { return Number{V: a.V} }

// Copy returns a deep copy of a
func (a Number) Copy() Number {
	if a.D == nil {
		return Number{V: a.V}
	}
	d := make([]float64, len(a.D))
	copy(d, a.D)
	return Number{V: a.V, D: d}
}

// Deriv returns the i-th partial or zero in plain mode
func (a Number) Deriv(i int) float64 {
	if a.D == nil {
		return 0
	}
	return a.D[i]
}

// IsFinite returns true if the value and all partials are finite
func (a Number) IsFinite() bool {
	if math.IsNaN(a.V) || math.IsInf(a.V, 0) {
		return false
	}
	for _, d := range a.D {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return false
		}
	}
	return true
}

// size returns the common derivative length of a and b
func size(a, b Number) int {
	na, nb := len(a.D), len(b.D)
	switch {
	case a.D == nil:
		return nb
	case b.D == nil:
		return na
	case na != nb:
		chk.Panic("ad: derivative lengths differ: %d != %d\n", na, nb)
	}
	return na
}

// combine returns α⋅a.D + β⋅b.D (nil if both are plain)
func combine(α float64, a Number, β float64, b Number) []float64 {
	n := size(a, b)
	if a.D == nil && b.D == nil {
		return nil
	}
	d := make([]float64, n)
	if a.D != nil {
		for i, v := range a.D {
			d[i] = α * v
		}
	}
	if b.D != nil {
		for i, v := range b.D {
			d[i] += β * v
		}
	}
	return d
}

// chain returns df⋅a.D (nil if a is plain)
func chain(df float64, a Number) []float64 {
	if a.D == nil {
		return nil
	}
	d := make([]float64, len(a.D))
	for i, v := range a.D {
		d[i] = df * v
	}
	return d
}

// Add returns a + b
func (a Number) Add(b Number) Number {
	return Number{a.V + b.V, combine(1, a, 1, b)}
}

// Sub returns a - b
func (a Number) Sub(b Number) Number {
	return Number{a.V - b.V, combine(1, a, -1, b)}
}

// Mul returns a * b
func (a Number) Mul(b Number) Number {
	return Number{a.V * b.V, combine(b.V, a, a.V, b)}
}

// Div returns a / b
func (a Number) Div(b Number) Number {
	v := a.V / b.V
	return Number{v, combine(1/b.V, a, -v/b.V, b)}
}

// AddF returns a + s
func (a Number) AddF(s float64) Number {
	return Number{a.V + s, chain(1, a)}
}

// SubF returns a - s
func (a Number) SubF(s float64) Number {
	return Number{a.V - s, chain(1, a)}
}

// MulF returns a * s
func (a Number) MulF(s float64) Number {
	return Number{a.V * s, chain(s, a)}
}

// DivF returns a / s
func (a Number) DivF(s float64) Number {
	return Number{a.V / s, chain(1/s, a)}
}

// Neg returns -a
func (a Number) Neg() Number {
	return Number{-a.V, chain(-1, a)}
}

// Inv returns 1/a
func (a Number) Inv() Number {
	v := 1 / a.V
	return Number{v, chain(-v*v, a)}
}

// Sq returns a²
func (a Number) Sq() Number {
	return Number{a.V * a.V, chain(2*a.V, a)}
}

// Exp returns exp(a)
func Exp(a Number) Number {
	v := math.Exp(a.V)
	return Number{v, chain(v, a)}
}

// Log returns log(a)
func Log(a Number) Number {
	return Number{math.Log(a.V), chain(1/a.V, a)}
}

// Sqrt returns √a
func Sqrt(a Number) Number {
	v := math.Sqrt(a.V)
	return Number{v, chain(0.5/v, a)}
}

// Pow returns a^p with a real exponent p
func Pow(a Number, p float64) Number {
	v := math.Pow(a.V, p)
	if a.D == nil {
		return Number{V: v}
	}
	var df float64
	if p != 0 {
		df = p * math.Pow(a.V, p-1)
	}
	return Number{v, chain(df, a)}
}

// PowN returns a^b with a dual exponent b; requires a > 0 when b carries derivatives
func PowN(a, b Number) Number {
	if b.D == nil {
		return Pow(a, b.V)
	}
	return Exp(b.Mul(Log(a)))
}

// Sinh returns sinh(a)
func Sinh(a Number) Number {
	return Number{math.Sinh(a.V), chain(math.Cosh(a.V), a)}
}

// Cosh returns cosh(a)
func Cosh(a Number) Number {
	return Number{math.Cosh(a.V), chain(math.Sinh(a.V), a)}
}

// Abs returns |a|; the derivative at zero is taken as zero
func Abs(a Number) Number {
	return Number{math.Abs(a.V), chain(Sign(a.V), a)}
}

// Sign returns the sign of x (zero at zero)
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// Values returns the primal values of xs
func Values(xs []Number) []float64 {
	v := make([]float64, len(xs))
	for i, x := range xs {
		v[i] = x.V
	}
	return v
}

// Consts converts vals into plain numbers
func Consts(vals []float64) []Number {
	xs := make([]Number, len(vals))
	for i, v := range vals {
		xs[i] = Number{V: v}
	}
	return xs
}

// Vars converts vals into numbers seeded w.r.t. themselves
func Vars(vals []float64) []Number {
	n := len(vals)
	xs := make([]Number, n)
	for i, v := range vals {
		xs[i] = Var(v, i, n)
	}
	return xs
}

// Norm returns the Euclidean norm of the primal values of xs
func Norm(xs []Number) float64 {
	var sum float64
	for _, x := range xs {
		sum += x.V * x.V
	}
	return math.Sqrt(sum)
}

// NormN returns the Euclidean norm of xs as a dual number
func NormN(xs []Number) Number {
	var sum Number
	for _, x := range xs {
		sum = sum.Add(x.Sq())
	}
	if sum.V == 0 {
		return Zero(sum.N())
	}
	return Sqrt(sum)
}

// Atan2 returns the angle of the point (x, y)
func Atan2(y, x Number) Number {
	r2 := x.V*x.V + y.V*y.V
	return Number{math.Atan2(y.V, x.V), combine(-y.V/r2, x, x.V/r2, y)}
}
