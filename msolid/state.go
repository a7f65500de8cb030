// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "github.com/cpmech/goplast/tsr"

// State holds the data of one material point at one time
type State struct {

	// essential
	Sig tsr.Mat // σ: Cauchy stress tensor
	F   tsr.Mat // deformation gradient at the time of this state

	// for plasticity
	Fp      tsr.Mat   // plastic deformation gradient
	Eqps    float64   // equivalent plastic strain
	Void    float64   // void volume fraction (porous models)
	Slip    []float64 // slip per slip system (crystal plasticity) [nslip]
	Hard    []float64 // hardness per slip system [nslip] or isotropic hardening [1]
	Dgam    float64   // Δγ: increment of Lagrange multiplier
	Loading bool      // plastic loading flag
}

// NewState allocates a state with identity deformation gradients and zero internal variables
//  nslip -- number of slip systems; 0 means one isotropic hardness value
func NewState(nslip int) *State {
	nhard := nslip
	if nhard < 1 {
		nhard = 1
	}
	var state State
	state.F = tsr.MatIdentity()
	state.Fp = tsr.MatIdentity()
	state.Hard = make([]float64, nhard)
	if nslip > 0 {
		state.Slip = make([]float64, nslip)
	}
	return &state
}

// Set copies states
//  Note: 1) this and other states must have been pre-allocated with the same sizes
//        2) this method does not check for errors
func (o *State) Set(other *State) {
	o.Sig = other.Sig
	o.F = other.F
	o.Fp = other.Fp
	o.Eqps = other.Eqps
	o.Void = other.Void
	copy(o.Slip, other.Slip)
	copy(o.Hard, other.Hard)
	o.Dgam = other.Dgam
	o.Loading = other.Loading
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	other := NewState(len(o.Slip))
	other.Set(o)
	return other
}
