// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mhard

import (
	"github.com/cpmech/goplast/ad"
	"github.com/cpmech/gosl/chk"
)

// Isotropic implements isotropic hardening of the flow stress
//  linear + saturation: Y + K⋅α + Ysat⋅(1 - exp(-δ⋅α))
//  power law:           Y⋅(1 + E⋅α/Y)^n
type Isotropic struct {
	Y      float64 // initial yield stress
	K      float64 // linear hardening modulus
	SatMod float64 // saturation modulus
	SatExp float64 // saturation exponent
	Power  bool    // use power law
	PowN   float64 // power law exponent
	E      float64 // Young's modulus for the power law
}

// Validate checks parameters
func (o *Isotropic) Validate() error {
	if o.Y <= 0 {
		return chk.Err("isotropic hardening: yield stress must be positive. Y=%g\n", o.Y)
	}
	if o.Power && o.E <= 0 {
		return chk.Err("isotropic hardening: power law requires E > 0. E=%g\n", o.E)
	}
	if o.SatExp < 0 {
		return chk.Err("isotropic hardening: saturation exponent must be non-negative. δ=%g\n", o.SatExp)
	}
	return nil
}

// Hardening returns the increase of flow stress for equivalent plastic strain α
func (o *Isotropic) Hardening(α ad.Number) ad.Number {
	if o.Power {
		return o.FlowStress(α).SubF(o.Y)
	}
	h := α.MulF(o.K)
	if o.SatMod != 0 {
		h = h.Add(ad.Exp(α.MulF(-o.SatExp)).Neg().AddF(1).MulF(o.SatMod))
	}
	return h
}

// FlowStress returns the flow stress for equivalent plastic strain α
func (o *Isotropic) FlowStress(α ad.Number) ad.Number {
	if o.Power {
		return ad.Pow(α.MulF(o.E/o.Y).AddF(1), o.PowN).MulF(o.Y)
	}
	return o.Hardening(α).AddF(o.Y)
}
