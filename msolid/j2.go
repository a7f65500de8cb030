// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/goplast/ad"
	"github.com/cpmech/goplast/mhard"
	"github.com/cpmech/goplast/nls"
	"github.com/cpmech/goplast/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// J2 implements finite strain von Mises plasticity with isotropic (linear + saturation) hardening
//  Note: the elastic response is computed from the isochoric elastic left Cauchy-Green tensor
type J2 struct {
	modelBase
	Elasticity
	Iso mhard.Isotropic // isotropic hardening
}

// add model to factory
func init() {
	allocators["j2"] = func() Model { return new(J2) }
}

// Init initialises model
func (o *J2) Init(cfg *Config) (err error) {
	o.initBase("j2", cfg, 30)
	if err = o.Elasticity.Init(cfg.Prms); err != nil {
		return
	}
	for _, p := range cfg.Prms {
		switch p.N {
		case "Y":
			o.Iso.Y = p.V
		case "H":
			o.Iso.K = p.V
		case "satmod":
			o.Iso.SatMod = p.V
		case "satexp":
			o.Iso.SatExp = p.V
		default:
			if !elasticPrm(p.N) {
				return chk.Err("j2: parameter named %q is incorrect\n", p.N)
			}
		}
	}
	return o.Iso.Validate()
}

// GetPrms gets (an example) of parameters
func (o J2) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 210000},
		&dbf.P{N: "nu", V: 0.3},
		&dbf.P{N: "Y", V: 200},
		&dbf.P{N: "H", V: 1000},
		&dbf.P{N: "satmod", V: 0},
		&dbf.P{N: "satexp", V: 0},
	}
}

// InitState allocates the initial state
func (o J2) InitState() *State {
	return NewState(0)
}

// trial computes the trial deviatoric Kirchhoff stress s and μ̄
func (o *J2) trial(F, Cpinv tsr.Ten) (s tsr.Ten, mubar ad.Number) {
	J := tsr.Det(F)
	be := tsr.Scale(ad.Pow(J, -2.0/3.0), tsr.Dot3(F, Cpinv, tsr.Transpose(F)))
	s = tsr.ScaleF(o.G, tsr.Dev(be))
	mubar = tsr.Trace(be).MulF(o.G / 3.0)
	return
}

// residual returns the consistency condition for Δγ = x[0]
func (o *J2) residual(smag, mubar ad.Number, eqpsOld float64) nls.Func {
	sq23 := math.Sqrt(2.0 / 3.0)
	return func(r, x []ad.Number) error {
		α := x[0].MulF(sq23).AddF(eqpsOld)
		H := o.Iso.Hardening(α)
		r[0] = smag.Sub(mubar.MulF(2).Mul(x[0])).Sub(H.AddF(o.Iso.Y).MulF(sq23))
		return nil
	}
}

// Update computes the new state for deformation gradient F
func (o *J2) Update(res *Result, sNew, sOld *State, F tsr.Ten, dt float64) (err error) {

	// trial state
	Fpn := tsr.FromMat(sOld.Fp)
	Fpinv := tsr.Inverse(Fpn)
	Cpinv := tsr.Dot(Fpinv, tsr.Transpose(Fpinv))
	s, mubar := o.trial(F, Cpinv)
	smag := tsr.Norm(s)

	// yield condition
	sq23 := math.Sqrt(2.0 / 3.0)
	f := smag.V - sq23*o.Iso.FlowStress(ad.Const(sOld.Eqps)).V

	elastic(res, sOld)
	if f > 1e-12 && dt > 0 {

		// local Newton on primal values
		sp, mbp := o.trial(tsr.Primal(F), Cpinv)
		local := o.residual(tsr.Norm(sp), mbp.Primal(), sOld.Eqps)
		x := []float64{0}
		res.Solve = o.sol.Solve(x, local)

		// sensitivity w.r.t. the partials of F
		var xs []ad.Number
		xs, err = o.sol.Sensitivity(x, local, o.residual(smag, mubar, sOld.Eqps))
		if err != nil {
			return o.failed(res, err)
		}
		dgam := xs[0]

		// plastic direction and updates
		N := tsr.Scale(smag.Inv(), s)
		s = tsr.Sub(s, tsr.Scale(mubar.MulF(2).Mul(dgam), N))
		α := dgam.MulF(sq23).AddF(sOld.Eqps)
		res.Eqps = α
		res.Hard = []ad.Number{o.Iso.Hardening(α)}
		res.Fp = tsr.Dot(tsr.Exp(tsr.Scale(dgam, N)), Fpn)
		res.Dgam = dgam
		res.Loading = true
	}

	// stress
	J := tsr.Det(F)
	p := J.Sub(J.Inv()).MulF(0.5 * o.K)
	res.Sig = tsr.AddI(tsr.Scale(J.Inv(), s), p)
	return o.finish(res, sNew, F)
}
