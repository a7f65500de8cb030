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

// Gurson implements the Gurson-Tvergaard-Needleman porous plasticity model
//  Unknowns of the local problem: Δγ, p, f (void fraction) and eqps
//  Hyperelastic: Hencky trial stress from the elastic left Cauchy-Green tensor
//  Hypoelastic:  corotational rate form driven by the incremental deformation gradient
type Gurson struct {
	modelBase
	Elasticity
	Iso  mhard.Isotropic // matrix flow stress
	Q1   float64         // q1 GTN coefficient
	Q2   float64         // q2 GTN coefficient
	Q3   float64         // q3 GTN coefficient
	F0   float64         // initial void volume fraction
	FN   float64         // volume fraction of void nucleating particles
	SN   float64         // standard deviation of nucleation strain
	EN   float64         // mean nucleation strain
	Fc   float64         // critical void fraction (coalescence onset)
	Ff   float64         // void fraction at failure
	Kw   float64         // shear damage coefficient
	Hypo bool            // hypoelastic formulation
	Cel  tsr.Ten4        // elasticity tensor (hypoelastic)
}

// add model to factory
func init() {
	allocators["gurson"] = func() Model { return new(Gurson) }
}

// Init initialises model
func (o *Gurson) Init(cfg *Config) (err error) {
	o.initBase("gurson", cfg, 20)
	if err = o.Elasticity.Init(cfg.Prms); err != nil {
		return
	}
	o.Q1, o.Q2, o.Q3 = 1.5, 1.0, 2.25
	sat := 1.0
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
		case "N":
			o.Iso.PowN = p.V
		case "sat":
			sat = p.V
		case "q1":
			o.Q1 = p.V
		case "q2":
			o.Q2 = p.V
		case "q3":
			o.Q3 = p.V
		case "f0":
			o.F0 = p.V
		case "fN":
			o.FN = p.V
		case "sN":
			o.SN = p.V
		case "eN":
			o.EN = p.V
		case "fc":
			o.Fc = p.V
		case "ff":
			o.Ff = p.V
		case "kw":
			o.Kw = p.V
		case "hypo":
			o.Hypo = p.V > 0
		default:
			if !elasticPrm(p.N) {
				return chk.Err("gurson: parameter named %q is incorrect\n", p.N)
			}
		}
	}
	o.Iso.Power = sat == 0
	o.Iso.E = o.E
	if err = o.Iso.Validate(); err != nil {
		return
	}
	if o.F0 < 0 || o.F0 >= 1 {
		return chk.Err("gurson: initial void fraction must be in [0,1). f0=%g\n", o.F0)
	}
	if o.FN != 0 && o.SN <= 0 {
		return chk.Err("gurson: nucleation requires sN > 0. fN=%g sN=%g\n", o.FN, o.SN)
	}
	if o.Fc != 0 || o.Ff != 0 {
		if !(o.Fc < o.Ff && o.Ff <= 1) {
			return chk.Err("gurson: void fractions must satisfy fc < ff ≤ 1. fc=%g ff=%g\n", o.Fc, o.Ff)
		}
	}
	if o.Hypo {
		o.Cel = tsr.IsotropicC(o.L, o.G)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Gurson) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 200000},
		&dbf.P{N: "nu", V: 0.3},
		&dbf.P{N: "Y", V: 300},
		&dbf.P{N: "H", V: 500},
		&dbf.P{N: "satmod", V: 0},
		&dbf.P{N: "satexp", V: 0},
		&dbf.P{N: "q1", V: 1.5},
		&dbf.P{N: "q2", V: 1.0},
		&dbf.P{N: "q3", V: 2.25},
		&dbf.P{N: "f0", V: 0.01},
		&dbf.P{N: "fN", V: 0.04},
		&dbf.P{N: "sN", V: 0.1},
		&dbf.P{N: "eN", V: 0.3},
		&dbf.P{N: "fc", V: 0.15},
		&dbf.P{N: "ff", V: 0.25},
		&dbf.P{N: "kw", V: 0},
	}
}

// InitState allocates the initial state
func (o Gurson) InitState() *State {
	s := NewState(0)
	s.Void = o.F0
	return s
}

// trial holds the trial state
type gursonTrial struct {
	s tsr.Ten   // deviatoric (Kirchhoff in hyperelastic) stress
	p ad.Number // pressure
	J ad.Number // det(F)
	R tsr.Ten   // rotation of F (hypoelastic)
}

// trial computes the trial elastic state
func (o *Gurson) trial(F tsr.Ten, sOld *State, dt float64) (t gursonTrial) {
	t.J = tsr.Det(F)
	if !o.Hypo {
		Fpinv := tsr.Inverse(tsr.FromMat(sOld.Fp))
		Cpinv := tsr.Dot(Fpinv, tsr.Transpose(Fpinv))
		be := tsr.Dot3(F, Cpinv, tsr.Transpose(F))
		t.s = tsr.ScaleF(o.G, tsr.Dev(tsr.Log(be)))
		t.p = ad.Log(tsr.Det(be)).MulF(0.5 * o.K)
		return
	}
	Finc := tsr.Dot(F, tsr.Inverse(tsr.FromMat(sOld.F)))
	_, t.R = tsr.PolarLeft(F)
	Vinc, Rinc := tsr.PolarLeft(Finc)
	logFinc := tsr.BCH(tsr.Log(Vinc), tsr.LogRotation(Rinc))
	Rt := tsr.Transpose(t.R)
	sigOld := tsr.Dot3(Rt, tsr.FromMat(sOld.Sig), t.R)
	sig := sigOld
	if dt > 0 {
		D := tsr.Dot3(Rt, tsr.Sym(logFinc), t.R) // dt⋅D
		sig = tsr.Add(sigOld, tsr.DotDot4(&o.Cel, D))
	}
	t.p = tsr.Trace(sig).MulF(1.0 / 3.0)
	t.s = tsr.AddI(sig, t.p.Neg())
	return
}

// flowStress returns Ȳ (scaled by J in the hyperelastic formulation)
func (o *Gurson) flowStress(eq, J ad.Number) ad.Number {
	Ybar := o.Iso.FlowStress(eq)
	if !o.Hypo {
		Ybar = Ybar.Mul(J)
	}
	return Ybar
}

// yield computes Φ = ½ s:s - ψ⋅Ȳ²/3
func (o *Gurson) yield(t *gursonTrial, f, eq float64) float64 {
	Ybar := o.flowStress(ad.Const(eq), t.J.Primal()).V
	tmp := 1.5 * o.Q2 * t.p.V / Ybar
	ψ := 1 + o.Q3*f*f - 2*o.Q1*f*math.Cosh(tmp)
	ss := tsr.DotDot(t.s, t.s).V
	return 0.5*ss - ψ*Ybar*Ybar/3.0
}

// residual returns the local system of equations
func (o *Gurson) residual(t *gursonTrial, fOld, eqOld float64) nls.Func {
	sq23 := math.Sqrt(2.0 / 3.0)
	sq32 := math.Sqrt(3.0 / 2.0)
	return func(r, x []ad.Number) error {
		dgam, p, f, eq := x[0], x[1], x[2], x[3]

		fac := dgam.MulF(2 * o.G).AddF(1).Inv()
		Ybar := o.flowStress(eq, t.J)
		tmp := p.Div(Ybar).MulF(1.5 * o.Q2)
		ψ := f.Sq().MulF(o.Q3).Sub(f.Mul(ad.Cosh(tmp)).MulF(2 * o.Q1)).AddF(1)
		sinh := ad.Sinh(tmp)

		// shear-dependent term
		sfad := tsr.Scale(fac, t.s)
		J3 := tsr.Det(sfad)
		smag2 := tsr.DotDot(sfad, sfad)
		var smag, taue, ω ad.Number
		if smag2.V > 0 {
			smag = ad.Sqrt(smag2)
			taue = smag.MulF(sq32)
		}
		if taue.V > 0 {
			ρ := J3.MulF(27.0 / 2.0).Div(taue.Mul(taue).Mul(taue))
			ω = ρ.Sq().Neg().AddF(1)
		}

		// equivalent plastic strain increment
		q12 := o.Q1 * o.Q2
		dil := p.Mul(Ybar).Mul(f).Mul(sinh).MulF(q12)
		deq := dgam.Mul(smag2.Add(dil)).Div(f.Neg().AddF(1)).Div(Ybar)

		// nucleation
		var dfn ad.Number
		if p.V >= 0 && o.FN != 0 {
			e := eq.SubF(o.EN)
			An := ad.Exp(e.Sq().MulF(-0.5 / (o.SN * o.SN))).MulF(o.FN / (o.SN * math.Sqrt(2.0*math.Pi)))
			dfn = An.Mul(deq)
		}

		// growth
		dfg := dgam.Mul(f.Neg().AddF(1)).Mul(f).Mul(Ybar).Mul(sinh).MulF(q12)
		if taue.V > 0 {
			dfg = dfg.Add(dgam.Mul(f).Mul(ω).Mul(smag).MulF(sq23 * o.Kw))
		}

		r[0] = smag2.MulF(0.5).Sub(ψ.Mul(Ybar).Mul(Ybar).DivF(3))
		r[1] = p.Sub(t.p).Add(dgam.Mul(Ybar).Mul(f).Mul(sinh).MulF(q12 * o.K))
		r[2] = f.SubF(fOld).Sub(dfg).Sub(dfn)
		r[3] = eq.SubF(eqOld).Sub(deq)
		return nil
	}
}

// Update computes the new state for deformation gradient F
func (o *Gurson) Update(res *Result, sNew, sOld *State, F tsr.Ten, dt float64) (err error) {

	// trial state
	t := o.trial(F, sOld, dt)
	s, p := t.s, t.p

	elastic(res, sOld)
	Φ := o.yield(&t, sOld.Void, sOld.Eqps)
	if Φ > 1e-12 && dt > 0 {

		// local Newton on primal values
		tp := gursonTrial{s: tsr.Primal(t.s), p: t.p.Primal(), J: t.J.Primal()}
		local := o.residual(&tp, sOld.Void, sOld.Eqps)
		x := []float64{0, t.p.V, sOld.Void, sOld.Eqps}
		res.Solve = o.sol.Solve(x, local)

		// sensitivity w.r.t. the partials of F
		var xs []ad.Number
		xs, err = o.sol.Sensitivity(x, local, o.residual(&t, sOld.Void, sOld.Eqps))
		if err != nil {
			return o.failed(res, err)
		}
		dgam, f, eq := xs[0], xs[2], xs[3]
		p = xs[1]

		// update
		s = tsr.Scale(dgam.MulF(2*o.G).AddF(1).Inv(), s)
		if !o.Hypo {
			Ybar := o.flowStress(eq, t.J)
			tmp := p.Div(Ybar).MulF(1.5 * o.Q2)
			tr := Ybar.Mul(f).Mul(ad.Sinh(tmp)).MulF(o.Q1 * o.Q2 / 3.0)
			dPhi := tsr.AddI(s, tr)
			res.Fp = tsr.Dot(tsr.Exp(tsr.Scale(dgam, dPhi)), tsr.FromMat(sOld.Fp))
		}
		res.Eqps = eq
		res.Void = f
		res.Hard = []ad.Number{o.Iso.Hardening(eq)}
		res.Dgam = dgam
		res.Loading = true
	}

	// Cauchy stress
	if o.Hypo {
		sig := tsr.AddI(s, p)
		res.Sig = tsr.Dot3(t.R, sig, tsr.Transpose(t.R))
	} else {
		Jinv := t.J.Inv()
		res.Sig = tsr.AddI(tsr.Scale(Jinv, s), p.Mul(Jinv))
	}
	return o.finish(res, sNew, F)
}
