// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ad

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_number01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("number01")

	x := Var(2, 0, 2)
	y := Var(3, 1, 2)

	// f = x⋅y + x/y
	f := x.Mul(y).Add(x.Div(y))
	io.Pforan("f = %v\n", f)
	chk.Float64(tst, "f", 1e-15, f.V, 6+2.0/3.0)
	chk.Array(tst, "df", 1e-15, f.D, []float64{3 + 1.0/3.0, 2 - 2.0/9.0})

	// g = exp(x) - log(y) + √x
	g := Exp(x).Sub(Log(y)).Add(Sqrt(x))
	chk.Float64(tst, "g", 1e-15, g.V, math.Exp(2)-math.Log(3)+math.Sqrt(2))
	chk.Array(tst, "dg", 1e-15, g.D, []float64{math.Exp(2) + 0.5/math.Sqrt(2), -1.0 / 3.0})

	// h = sinh(x)⋅cosh(y)
	h := Sinh(x).Mul(Cosh(y))
	chk.Array(tst, "dh", 1e-12, h.D, []float64{math.Cosh(2) * math.Cosh(3), math.Sinh(2) * math.Sinh(3)})
}

func Test_number02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("number02")

	// plain arithmetic does no derivative work
	a := Const(2).Mul(Const(5)).AddF(1)
	if !a.Plain() {
		tst.Errorf("plain arithmetic must not allocate derivatives\n")
		return
	}
	chk.Float64(tst, "a", 1e-17, a.V, 11)

	// mixing plain and seeded operands gives seeded results
	x := Var(4, 0, 1)
	b := Const(3).Mul(x).Sub(Pow(x, 1.5))
	chk.Float64(tst, "b", 1e-15, b.V, 12-8)
	chk.Array(tst, "db", 1e-15, b.D, []float64{3 - 1.5*2})

	// dual exponent
	c := PowN(Const(2), x)
	chk.Float64(tst, "c", 1e-14, c.V, 16)
	chk.Array(tst, "dc", 1e-14, c.D, []float64{16 * math.Log(2)})

	// abs and inverse
	d := Abs(x.Neg()).Inv()
	chk.Float64(tst, "d", 1e-15, d.V, 0.25)
	chk.Array(tst, "dd", 1e-15, d.D, []float64{-1.0 / 16.0})
}

func Test_number03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("number03")

	// non-finite detection
	x := Var(0, 0, 1)
	l := Log(x)
	if l.IsFinite() {
		tst.Errorf("log(0) must be flagged as non-finite\n")
		return
	}
	if !Sqrt(Var(1, 0, 1)).IsFinite() {
		tst.Errorf("sqrt(1) must be finite\n")
		return
	}

	// different lengths is a programming error
	defer func() {
		if r := recover(); r == nil {
			tst.Errorf("mixing derivative lengths should panic\n")
		}
	}()
	Var(1, 0, 2).Add(Var(1, 0, 3))
}

func Test_number04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("number04")

	xs := Vars([]float64{3, 4})
	nrm := NormN(xs)
	chk.Float64(tst, "|x|", 1e-15, nrm.V, 5)
	chk.Array(tst, "d|x|", 1e-15, nrm.D, []float64{0.6, 0.8})
	chk.Float64(tst, "Norm", 1e-15, Norm(xs), 5)
	chk.Array(tst, "Values", 1e-15, Values(xs), []float64{3, 4})
}
