// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/goplast/ad"
	"github.com/cpmech/goplast/nls"
	"github.com/cpmech/goplast/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func Test_model01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model01. factory")

	chk.Strings(tst, "names", Names(), []string{"cp", "gurson", "j2"})

	_, err := New(&Config{Model: "cam-clay"})
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		tst.Errorf("unknown model should give a configuration error. got %v\n", err)
		return
	}
	chk.String(tst, cerr.Model, "cam-clay")

	_, err = New(&Config{Model: "j2", Prms: []*dbf.P{&dbf.P{N: "E", V: 1000}, &dbf.P{N: "nu", V: 0.3}}})
	if !errors.As(err, &cerr) {
		tst.Errorf("missing yield stress should give a configuration error. got %v\n", err)
	}
	_, err = New(&Config{Model: "j2", Prms: []*dbf.P{&dbf.P{N: "Y", V: 100}}})
	if !errors.As(err, &cerr) {
		tst.Errorf("missing elastic moduli should give a configuration error. got %v\n", err)
	}

	// example parameters are valid and the logger is called
	var nlog int
	for _, name := range []string{"j2", "gurson"} {
		prms := allocators[name]().GetPrms()
		mdl, err := New(&Config{Model: name, Prms: prms, Log: func(msg string, prm ...interface{}) {
			nlog++
			io.Pf(msg, prm...)
		}})
		if err != nil {
			tst.Errorf("%s: example parameters failed: %v\n", name, err)
			continue
		}
		chk.String(tst, mdl.Name(), name)
	}
	if nlog == 0 {
		tst.Errorf("logger should have been called\n")
	}
}

func Test_model02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model02. sanity check")

	var res Result
	res.Sig = tsr.Identity()
	res.Fp = tsr.Identity()
	res.Slip = []ad.Number{ad.Const(0), ad.Const(1)}
	res.Hard = []ad.Number{ad.Const(0), ad.Const(0)}
	if !res.CheckFinite() {
		tst.Errorf("finite result flagged: %v\n", res.Message)
	}
	res.Slip[1] = ad.Number{V: 1, D: []float64{math.NaN()}}
	if res.CheckFinite() {
		tst.Errorf("non-finite derivative should be flagged\n")
	}
	chk.String(tst, res.Message, "slip 1")

	// strict mode returns a point error
	b := modelBase{name: "test", strictFin: true}
	sNew := NewState(2)
	err := b.finish(&res, sNew, tsr.Identity())
	var perr *PointError
	if !errors.As(err, &perr) {
		tst.Errorf("point error expected. got %v\n", err)
		return
	}
	if !perr.NonFinite {
		tst.Errorf("non-finite flag should be set\n")
	}
	io.Pforan("%v\n", err)

	// default mode only records
	b.strictFin = false
	if err = b.finish(&res, sNew, tsr.Identity()); err != nil {
		tst.Errorf("non-strict mode should not return errors: %v\n", err)
	}
	if !res.NonFinite {
		tst.Errorf("non-finite flag should be recorded\n")
	}
}

func Test_model03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model03. tangent layout")

	mdl := newJ2(tst, 1000, 0, 0)
	sOld := mdl.InitState()
	sNew := sOld.GetCopy()
	F := tsr.Mat{{1.0003, 0.0001, 0}, {0, 1, 0}, {0, 0, 1}}
	var res Result
	if err := mdl.Update(&res, sNew, sOld, tsr.Seed(F), 1); err != nil {
		tst.Errorf("update failed: %v\n", err)
		return
	}
	D := res.Tangent()
	chk.Int(tst, "rows", len(D), 9)
	chk.Int(tst, "cols", len(D[0]), 9)

	// plain mode carries no derivatives
	if err := mdl.Update(&res, sNew, sOld, tsr.FromMat(F), 1); err != nil {
		tst.Errorf("update failed: %v\n", err)
		return
	}
	chk.Int(tst, "cols", len(res.Tangent()[0]), 0)

	// one partial: dσ/dF00 only
	Fs := tsr.FromMat(F)
	Fs[0][0] = ad.Var(F[0][0], 0, 1)
	if err := mdl.Update(&res, sNew, sOld, tsr.FromMat(F), 1); err != nil {
		tst.Errorf("update failed: %v\n", err)
		return
	}
	σ := sNew.Sig
	if err := mdl.Update(&res, sNew, sOld, Fs, 1); err != nil {
		tst.Errorf("update failed: %v\n", err)
		return
	}
	chk.Deep2(tst, "σ", 1e-15, sNew.Sig.Slice(), σ.Slice())
	chk.Int(tst, "cols", len(res.Tangent()[0]), 1)
}

func Test_model04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model04. failure of the tangent solve")

	var res Result
	sOld := NewState(0)
	elastic(&res, sOld)
	res.Sig = tsr.Identity()
	res.Eqps = ad.Number{V: math.Inf(1)}
	res.Solve.Status = nls.Converged

	b := modelBase{name: "test"}
	err := b.failed(&res, errors.New("singular jacobian"))
	var perr *PointError
	if !errors.As(err, &perr) {
		tst.Errorf("point error expected. got %v\n", err)
		return
	}
	if perr.Status != nls.LinearSolveFailed || res.Solve.Status != nls.LinearSolveFailed {
		tst.Errorf("status should be %v. got %v and %v\n", nls.LinearSolveFailed, perr.Status, res.Solve.Status)
	}
	if !res.Loading {
		tst.Errorf("loading flag should be set\n")
	}
	if !res.NonFinite {
		tst.Errorf("non-finite values should be recorded\n")
	}
	chk.String(tst, res.Message, "equivalent plastic strain")
	io.Pforan("%v\n", err)
}
