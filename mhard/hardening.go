// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mhard

import (
	"math"
	"strings"

	"github.com/cpmech/goplast/ad"
	"github.com/cpmech/gosl/chk"
)

// Law is the kind of slip system hardening
type Law int

const (
	LinearMinusRecovery Law = iota // dH/dt = (H - Rd⋅h)⋅driver; full latent hardening
	Saturation                     // relaxation towards a rate-dependent saturation stress
	DislocationDensity             // identity (extension point)
	None                           // identity
)

// lawNames maps names to laws
var lawNames = map[string]Law{
	"linear minus recovery": LinearMinusRecovery,
	"lmr":                   LinearMinusRecovery,
	"saturation":            Saturation,
	"dislocation density":   DislocationDensity,
	"dd":                    DislocationDensity,
	"none":                  None,
	"":                      None,
}

// ParseLaw returns the law corresponding to name (case insensitive)
func ParseLaw(name string) (Law, error) {
	if law, ok := lawNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return law, nil
	}
	return None, chk.Err("hardening law %q is not available\n", name)
}

// String returns the name of the law
func (l Law) String() string {
	switch l {
	case LinearMinusRecovery:
		return "linear minus recovery"
	case Saturation:
		return "saturation"
	case DislocationDensity:
		return "dislocation density"
	case None:
		return "none"
	}
	return "unknown"
}

// Hardening computes the evolution of slip resistances
type Hardening struct {
	Law    Law         // kind of law
	Latent [][]float64 // latent hardening matrix [nslip][nslip]
}

// New returns a hardening object with the latent matrix of the given slip systems
func New(law Law, slips []*SlipSystem) (o *Hardening, err error) {
	if len(slips) == 0 {
		return nil, chk.Err("hardening: at least one slip system is required\n")
	}
	o = &Hardening{Law: law}
	if err = o.check(slips); err != nil {
		return nil, err
	}
	o.createLatentMatrix(slips)
	return
}

// check validates the law-specific coefficients
func (o *Hardening) check(slips []*SlipSystem) error {
	for i, ss := range slips {
		switch o.Law {
		case LinearMinusRecovery:
			if ss.Rd < 0 {
				return chk.Err("hardening: slip system %d: recovery coefficient must be non-negative. Rd=%g\n", i, ss.Rd)
			}
			if ss.Rd > 0 && ss.H <= 0 {
				return chk.Err("hardening: slip system %d: H must be positive when Rd > 0. H=%g\n", i, ss.H)
			}
		case Saturation:
			if ss.RateRef <= 0 {
				return chk.Err("hardening: slip system %d: reference slip rate must be positive. g0=%g\n", i, ss.RateRef)
			}
		}
	}
	return nil
}

// createLatentMatrix computes the latent hardening matrix
func (o *Hardening) createLatentMatrix(slips []*SlipSystem) {
	n := len(slips)
	o.Latent = make([][]float64, n)
	for i := 0; i < n; i++ {
		o.Latent[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			switch o.Law {
			case LinearMinusRecovery:
				o.Latent[i][j] = 1
			case Saturation:
				o.Latent[i][j] = math.Abs(slips[i].Projector.Sym().DotDot(slips[j].Projector.Sym()))
			}
		}
	}
}

// Harden computes the slip resistances at the end of the step
//  Input:
//   slips -- slip systems
//   dt    -- time step
//   rate  -- slip rates (may carry derivatives)
//   hn    -- resistances at the beginning of the step
//  Output:
//   h -- new resistances; equal to hn if dt ≤ 0
func (o *Hardening) Harden(slips []*SlipSystem, dt float64, rate []ad.Number, hn []float64) (h []ad.Number) {
	n := len(hn)
	h = ad.Consts(hn)
	if dt <= 0 || o.Law == DislocationDensity || o.Law == None {
		return
	}

	// driving term
	driver := make([]ad.Number, n)
	abs := make([]ad.Number, n)
	for i := 0; i < n; i++ {
		abs[i] = ad.Abs(rate[i])
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if o.Latent[i][j] != 0 {
				driver[i] = driver[i].Add(abs[j].MulF(o.Latent[i][j]))
			}
		}
	}

	switch o.Law {

	case LinearMinusRecovery:
		for i, ss := range slips {
			if ss.Rd > 0 {
				eff := -math.Log(1-ss.Rd/ss.H*hn[i]) / ss.Rd
				arg := driver[i].MulF(dt).AddF(eff).MulF(-ss.Rd)
				h[i] = ad.Exp(arg).Neg().AddF(1).MulF(ss.H / ss.Rd)
			} else {
				h[i] = driver[i].MulF(ss.H * dt).AddF(hn[i])
			}
		}

	case Saturation:
		var effRate ad.Number
		for _, a := range abs {
			effRate = effRate.Add(a)
		}
		for i, ss := range slips {
			sat := ad.Const(ss.StressSatInitial)
			if ss.ExponentSat > 0 {
				sat = ad.Pow(effRate.DivF(ss.RateRef), ss.ExponentSat).MulF(ss.StressSatInitial)
			}
			den := sat.SubF(ss.ResistanceInitial)
			if den.V == 0 {
				continue
			}
			num := sat.SubF(hn[i] + ss.ResistanceInitial)
			h[i] = num.Div(den).Mul(driver[i]).MulF(dt * ss.RateHardening).AddF(hn[i])
		}
	}
	return
}
