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

// CrystalPlasticity implements rate dependent finite strain crystal plasticity
//  Elasticity: Saint Venant-Kirchhoff with cubic (C11, C12, C44) or isotropic (E, nu) moduli
//  Flow rule:  γ̇ = γ̇₀ |τ/(τc+h)|^(m-1) τ/(τc+h) on every slip system
type CrystalPlasticity struct {
	modelBase
	Slips    []*mhard.SlipSystem // slip systems in sample axes
	Hrd      *mhard.Hardening    // hardening law and latent matrix
	C        tsr.Ten4            // elasticity tensor in sample axes
	Joint    bool                // solve for slips and hardnesses jointly
	Explicit bool                // explicit update
}

// add model to factory
func init() {
	allocators["cp"] = func() Model { return new(CrystalPlasticity) }
}

// Init initialises model
func (o *CrystalPlasticity) Init(cfg *Config) (err error) {
	o.initBase("cp", cfg, 30)
	o.Joint, o.Explicit = cfg.Joint, cfg.Explicit
	if len(cfg.Slips) == 0 {
		return chk.Err("cp: at least one slip system is required\n")
	}

	// elasticity
	var c11, c12, c44 float64
	var cubic bool
	var iso []*dbf.P
	for _, p := range cfg.Prms {
		switch p.N {
		case "C11":
			c11, cubic = p.V, true
		case "C12":
			c12 = p.V
		case "C44":
			c44 = p.V
		default:
			if !elasticPrm(p.N) {
				return chk.Err("cp: parameter named %q is incorrect\n", p.N)
			}
			iso = append(iso, p)
		}
	}
	if cubic {
		if c11 <= 0 || c44 <= 0 {
			return chk.Err("cp: cubic moduli must be positive. C11=%g C44=%g\n", c11, c44)
		}
		o.C = tsr.CubicC(c11, c12, c44)
	} else {
		var el Elasticity
		if err = el.Init(iso); err != nil {
			return
		}
		o.C = tsr.IsotropicC(el.L, el.G)
	}

	// slip systems
	for i, ss := range cfg.Slips {
		if err = ss.Validate(); err != nil {
			return chk.Err("cp: slip system %d: %v", i, err)
		}
	}
	o.Slips = cfg.Slips
	if cfg.Orient != nil {
		o.Slips = mhard.Rotate(cfg.Slips, *cfg.Orient)
		o.C = tsr.RotateC(o.C, *cfg.Orient)
	}

	// hardening
	law, err := mhard.ParseLaw(cfg.Hardening)
	if err != nil {
		return
	}
	if o.Hrd, err = mhard.New(law, o.Slips); err != nil {
		return
	}
	o.logf("cp: %d slip systems; hardening=%v\n", len(o.Slips), law)
	for _, row := range o.Hrd.Latent {
		o.logf("  %v\n", row)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o CrystalPlasticity) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "C11", V: 204600},
		&dbf.P{N: "C12", V: 137700},
		&dbf.P{N: "C44", V: 126200},
	}
}

// InitState allocates the initial state
func (o CrystalPlasticity) InitState() *State {
	return NewState(len(o.Slips))
}

// Nslip returns the number of slip systems
func (o *CrystalPlasticity) Nslip() int { return len(o.Slips) }

// stress computes σ and the resolved shear stresses for given F and Fp
func (o *CrystalPlasticity) stress(F, Fp tsr.Ten) (sig tsr.Ten, τ []ad.Number) {
	Fe := tsr.Dot(F, tsr.Inverse(Fp))
	Ce := tsr.Dot(tsr.Transpose(Fe), Fe)
	Ee := tsr.ScaleF(0.5, tsr.AddI(Ce, ad.Const(-1)))
	S := tsr.DotDot4(&o.C, Ee)
	sig = tsr.Scale(tsr.Det(Fe).Inv(), tsr.Dot3(Fe, S, tsr.Transpose(Fe)))
	CeS := tsr.Dot(Ce, S)
	τ = make([]ad.Number, len(o.Slips))
	for i, ss := range o.Slips {
		τ[i] = tsr.DotDotMat(CeS, ss.Projector)
	}
	return
}

// plastic computes Fp = exp(Lp⋅dt)⋅Fpn with Lp = Σ (slip - slipn)/dt Pᵢ
func (o *CrystalPlasticity) plastic(slip []ad.Number, sOld *State, dt float64) tsr.Ten {
	var Lpdt tsr.Ten
	if dt > 0 {
		for i, ss := range o.Slips {
			inc := slip[i].SubF(sOld.Slip[i])
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					if ss.Projector[k][l] != 0 {
						Lpdt[k][l] = Lpdt[k][l].Add(inc.MulF(ss.Projector[k][l]))
					}
				}
			}
		}
	}
	return tsr.Dot(tsr.Exp(Lpdt), tsr.FromMat(sOld.Fp))
}

// flow computes slip_n + dt⋅γ̇ for given shear stresses and hardnesses
func (o *CrystalPlasticity) flow(τ, h []ad.Number, sOld *State, dt float64) []ad.Number {
	slip := make([]ad.Number, len(o.Slips))
	for i, ss := range o.Slips {
		ratio := τ[i].Div(h[i].AddF(ss.TauCritical))
		if ratio.V == 0 && ss.Exponent > 1 {
			slip[i] = ratio.MulF(0).AddF(sOld.Slip[i])
			continue
		}
		γdt := ad.Pow(ad.Abs(ratio), ss.Exponent-1).Mul(ratio).MulF(dt * ss.RateRef)
		slip[i] = γdt.AddF(sOld.Slip[i])
	}
	return slip
}

// rates returns (slip - slip_n)/dt; zero if dt = 0
func rates(slip []ad.Number, sOld *State, dt float64) (rate []ad.Number, incNorm float64) {
	rate = make([]ad.Number, len(slip))
	var sum float64
	for i := range slip {
		if dt > 0 {
			rate[i] = slip[i].SubF(sOld.Slip[i]).DivF(dt)
		}
		sum += rate[i].V * rate[i].V * dt * dt
	}
	return rate, math.Sqrt(sum)
}

// residual returns the local system for given F
//  unknowns: slips [nslip] or slips and hardnesses [2⋅nslip] (joint formulation)
func (o *CrystalPlasticity) residual(F tsr.Ten, sOld *State, dt float64) nls.Func {
	n := len(o.Slips)
	return func(r, x []ad.Number) error {
		slip := x[:n]
		rate, incNorm := rates(slip, sOld, dt)
		if incNorm > 1 {
			return nls.ErrResidual
		}
		h := o.Hrd.Harden(o.Slips, dt, rate, sOld.Hard)
		Fp := o.plastic(slip, sOld, dt)
		_, τ := o.stress(F, Fp)
		computed := o.flow(τ, h, sOld, dt)
		for i := 0; i < n; i++ {
			r[i] = slip[i].Sub(computed[i])
			if o.Joint {
				r[n+i] = x[n+i].Sub(h[i])
			}
		}
		return nil
	}
}

// predictor returns the explicit estimate of the slips using the resolved shear stresses at Fp_n
func (o *CrystalPlasticity) predictor(F tsr.Ten, sOld *State, dt float64) []ad.Number {
	_, τ := o.stress(F, tsr.FromMat(sOld.Fp))
	return o.flow(τ, ad.Consts(sOld.Hard), sOld, dt)
}

// Update computes the new state for deformation gradient F
func (o *CrystalPlasticity) Update(res *Result, sNew, sOld *State, F tsr.Ten, dt float64) (err error) {
	n := len(o.Slips)
	elastic(res, sOld)
	res.Loading = dt > 0

	// explicit update
	var slip, h []ad.Number
	if o.Explicit {
		slip = o.predictor(F, sOld, dt)
		rate, _ := rates(slip, sOld, dt)
		h = o.Hrd.Harden(o.Slips, dt, rate, sOld.Hard)
		return o.output(res, sNew, sOld, F, slip, h, dt)
	}

	// initial guess: explicit predictor if admissible, previous slips otherwise
	Fprim := tsr.Primal(F)
	nx := n
	if o.Joint {
		nx = 2 * n
	}
	guesses := [][]float64{make([]float64, nx)}
	copy(guesses[0], sOld.Slip)
	copy(guesses[0][n:], sOld.Hard)
	if dt > 0 {
		pred := ad.Values(o.predictor(Fprim, sOld, dt))
		if _, incNorm := rates(ad.Consts(pred), sOld, dt); incNorm <= 1 && finite(pred) {
			g := make([]float64, nx)
			copy(g, pred)
			copy(g[n:], sOld.Hard)
			guesses = [][]float64{g, guesses[0]}
		}
	}

	// local Newton on primal values
	local := o.residual(Fprim, sOld, dt)
	var x []float64
	for _, g := range guesses {
		x = g
		res.Solve = o.sol.Solve(x, local)
		if res.Solve.Status == nls.Converged {
			break
		}
	}

	// sensitivity w.r.t. the partials of F
	var xs []ad.Number
	if res.Solve.Status == nls.Converged || res.Solve.Status == nls.MaxIterationsExceeded {
		xs, err = o.sol.Sensitivity(x, local, o.residual(F, sOld, dt))
		if err != nil {
			return o.failed(res, err)
		}
	} else {
		xs = ad.Consts(x)
	}
	slip = xs[:n]
	rate, _ := rates(slip, sOld, dt)
	h = o.Hrd.Harden(o.Slips, dt, rate, sOld.Hard)
	return o.output(res, sNew, sOld, F, slip, h, dt)
}

// output computes the final stress and stores the results
func (o *CrystalPlasticity) output(res *Result, sNew, sOld *State, F tsr.Ten, slip, h []ad.Number, dt float64) error {
	res.Slip = slip
	res.Hard = h
	res.Fp = o.plastic(slip, sOld, dt)
	res.Sig, _ = o.stress(F, res.Fp)
	var eq float64
	for i := range slip {
		eq += math.Abs(slip[i].V - sOld.Slip[i])
	}
	res.Eqps = ad.Const(sOld.Eqps + eq)
	return o.finish(res, sNew, F)
}

// finite returns true if all values are finite
func finite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
