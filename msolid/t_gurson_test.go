// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/goplast/nls"
	"github.com/cpmech/goplast/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// newGurson allocates a Gurson model for tests; extra parameters are appended to the defaults
func newGurson(tst *testing.T, extra ...*dbf.P) Model {
	prms := []*dbf.P{
		&dbf.P{N: "E", V: 200000},
		&dbf.P{N: "nu", V: 0.3},
		&dbf.P{N: "Y", V: 300},
		&dbf.P{N: "H", V: 500},
		&dbf.P{N: "f0", V: 0.01},
	}
	mdl, err := New(&Config{Model: "gurson", Prms: append(prms, extra...)})
	if err != nil {
		tst.Fatalf("cannot allocate model: %v\n", err)
	}
	return mdl
}

func Test_gurson01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gurson01. elastic response")

	λ := 1.0005
	for _, hypo := range []float64{0, 1} {
		mdl := newGurson(tst, &dbf.P{N: "hypo", V: hypo})
		o := mdl.(*Gurson)
		sOld := mdl.InitState()
		sNew := sOld.GetCopy()
		F := tsr.MatIdentity()
		F[0][0] = λ
		var res Result
		if err := mdl.Update(&res, sNew, sOld, tsr.FromMat(F), 1); err != nil {
			tst.Errorf("update failed: %v\n", err)
			return
		}
		if sNew.Loading {
			tst.Errorf("step should be elastic\n")
		}
		e := math.Log(λ)
		var σ00, σ11 float64
		if hypo > 0 {
			σ00, σ11 = (o.L+2*o.G)*e, o.L*e
		} else {
			σ00 = (4.0/3.0*o.G*e + o.K*e) / λ
			σ11 = (-2.0/3.0*o.G*e + o.K*e) / λ
		}
		io.Pforan("hypo=%v σ = %v\n", hypo, sNew.Sig)
		chk.Float64(tst, "σ00", 1e-8, sNew.Sig[0][0], σ00)
		chk.Float64(tst, "σ11", 1e-8, sNew.Sig[1][1], σ11)
		chk.Float64(tst, "σ22", 1e-8, sNew.Sig[2][2], σ11)
		chk.Float64(tst, "f", 1e-17, sNew.Void, 0.01)
	}
}

func Test_gurson02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gurson02. tangent: hyperelastic")

	var drv Driver
	err := drv.Init(newGurson(tst))
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	drv.TstD = tst

	var pth Path
	err = pth.SetUniaxialStrain([]float64{0.006}, 3, 1)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	err = drv.Run(&pth)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if !drv.Res[3].Loading {
		tst.Errorf("last step should be plastic\n")
	}
}

func Test_gurson03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gurson03. tangent: nucleation and shear damage")

	var drv Driver
	err := drv.Init(newGurson(tst,
		&dbf.P{N: "fN", V: 0.04},
		&dbf.P{N: "sN", V: 0.1},
		&dbf.P{N: "eN", V: 0.01},
		&dbf.P{N: "kw", V: 1},
	))
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	drv.TstD = tst

	var pth Path
	err = pth.SetF([]tsr.Mat{
		tsr.MatIdentity(),
		{{1.002, 0.001, 0}, {0, 1.0005, 0}, {0, 0, 1}},
		{{1.004, 0.002, 0}, {0, 1.001, 0}, {0, 0, 1}},
		{{1.006, 0.004, 0}, {0.001, 1.0015, 0}, {0, 0, 1.0005}},
	}, 1)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	err = drv.Run(&pth)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	for i, st := range drv.Status {
		if st != nls.Converged {
			tst.Errorf("increment %d: local solver did not converge: %v\n", i+1, st)
		}
	}
}

func Test_gurson04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gurson04. tangent: hypoelastic")

	var drv Driver
	err := drv.Init(newGurson(tst, &dbf.P{N: "hypo", V: 1}))
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	drv.TstD = tst
	drv.TolD = 1e-4

	var pth Path
	err = pth.SetUniaxialStrain([]float64{0.006}, 3, 1)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	err = drv.Run(&pth)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
	}
}

func Test_gurson05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gurson05. objectivity")

	mdl := newGurson(tst, &dbf.P{N: "fN", V: 0.04}, &dbf.P{N: "sN", V: 0.1})
	F := tsr.Mat{{1.004, 0.002, 0}, {0.001, 1.001, 0}, {0, 0, 1.0005}}
	Q := rotQ([3]float64{-0.4, 0.1, 0.7})

	sOld := mdl.InitState()
	s1, s2 := sOld.GetCopy(), sOld.GetCopy()
	var res Result
	if err := mdl.Update(&res, s1, sOld, tsr.FromMat(F), 1); err != nil {
		tst.Errorf("update failed: %v\n", err)
		return
	}
	if err := mdl.Update(&res, s2, sOld, tsr.FromMat(Q.Dot(F)), 1); err != nil {
		tst.Errorf("update failed: %v\n", err)
		return
	}
	if !s1.Loading {
		tst.Errorf("step should be plastic\n")
	}
	σ := Q.Dot(s1.Sig).Dot(Q.T())
	chk.Deep2(tst, "Q⋅σ⋅Qᵀ", 1e-7, s2.Sig.Slice(), σ.Slice())
	chk.Float64(tst, "f", 1e-12, s2.Void, s1.Void)
	chk.Float64(tst, "eqps", 1e-12, s2.Eqps, s1.Eqps)
}

func Test_gurson06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gurson06. void fraction bound")

	var drv Driver
	err := drv.Init(newGurson(tst,
		&dbf.P{N: "fN", V: 0.04},
		&dbf.P{N: "sN", V: 0.1},
		&dbf.P{N: "eN", V: 0.05},
	))
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	var pth Path
	err = pth.SetUniaxialStrain([]float64{0.02}, 20, 1)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	err = drv.Run(&pth)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	for i := 1; i < len(drv.Res); i++ {
		f := drv.Res[i].Void
		io.Pforan("%2d: f=%v eqps=%v\n", i, f, drv.Res[i].Eqps)
		if f < 0 || f >= 1 {
			tst.Errorf("void fraction out of bounds at %d: %g\n", i, f)
		}
		if f < drv.Res[i-1].Void {
			tst.Errorf("void fraction decreased under tension at %d\n", i)
		}
		if drv.Res[i].Eqps < drv.Res[i-1].Eqps {
			tst.Errorf("eqps decreased at %d\n", i)
		}
		if drv.Status[i-1] != nls.Converged {
			tst.Errorf("increment %d did not converge: %v\n", i, drv.Status[i-1])
		}
	}
	if drv.Res[20].Void <= 0.01 {
		tst.Errorf("voids should grow under tension\n")
	}
}

func Test_gurson07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gurson07. configuration errors")

	for _, extra := range [][]*dbf.P{
		{&dbf.P{N: "fN", V: 0.04}},
		{&dbf.P{N: "f0", V: 1}},
		{&dbf.P{N: "fc", V: 0.3}, &dbf.P{N: "ff", V: 0.2}},
		{&dbf.P{N: "unknown", V: 1}},
	} {
		prms := append([]*dbf.P{
			&dbf.P{N: "E", V: 200000},
			&dbf.P{N: "nu", V: 0.3},
			&dbf.P{N: "Y", V: 300},
		}, extra...)
		_, err := New(&Config{Model: "gurson", Prms: prms})
		var cerr *ConfigError
		if !errors.As(err, &cerr) {
			tst.Errorf("configuration error expected for %v. got %v\n", extra[0].N, err)
			continue
		}
		io.Pforan("%v\n", err)
	}
}
