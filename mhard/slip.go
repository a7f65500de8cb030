// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mhard implements slip systems and hardening laws for plasticity models
package mhard

import (
	"math"

	"github.com/cpmech/goplast/tsr"
	"github.com/cpmech/gosl/chk"
)

// SlipSystem holds the (immutable) data of one slip system
type SlipSystem struct {

	// geometry
	S         [3]float64 // slip direction (unit)
	N         [3]float64 // slip plane normal (unit)
	Projector tsr.Mat    // Schmid tensor s⊗n

	// flow rule
	TauCritical float64 // critical resolved shear stress τc
	RateRef     float64 // reference slip rate γ̇₀
	Exponent    float64 // rate sensitivity exponent m

	// linear-minus-recovery hardening
	H  float64 // hardening modulus
	Rd float64 // recovery coefficient

	// saturation hardening
	RateHardening     float64 // hardening rate
	StressSatInitial  float64 // initial saturation stress
	ExponentSat       float64 // saturation exponent
	ResistanceInitial float64 // initial slip resistance
}

// NewSlipSystem returns a slip system with normalised s and n and the default flow data
func NewSlipSystem(s, n [3]float64) (o *SlipSystem, err error) {
	o = new(SlipSystem)
	if err = o.SetGeometry(s, n); err != nil {
		return nil, err
	}
	o.RateRef = 1
	o.Exponent = 1
	return
}

// SetGeometry normalises s and n and computes the Schmid tensor
func (o *SlipSystem) SetGeometry(s, n [3]float64) error {
	ns, nn := norm(s), norm(n)
	if ns == 0 || nn == 0 {
		return chk.Err("slip system: direction and normal must be non-zero. s=%v n=%v\n", s, n)
	}
	for i := 0; i < 3; i++ {
		o.S[i] = s[i] / ns
		o.N[i] = n[i] / nn
	}
	if math.Abs(o.S[0]*o.N[0]+o.S[1]*o.N[1]+o.S[2]*o.N[2]) > 1e-10 {
		return chk.Err("slip system: direction %v must be orthogonal to normal %v\n", s, n)
	}
	o.Projector = tsr.Dyad(o.S, o.N)
	return nil
}

// Validate checks the flow data
func (o *SlipSystem) Validate() error {
	if o.RateRef <= 0 {
		return chk.Err("slip system: reference slip rate must be positive. g0=%g\n", o.RateRef)
	}
	if o.Exponent < 1 {
		return chk.Err("slip system: rate sensitivity exponent must be ≥ 1. m=%g\n", o.Exponent)
	}
	if o.TauCritical <= 0 {
		return chk.Err("slip system: critical resolved shear stress must be positive. tauc=%g\n", o.TauCritical)
	}
	return nil
}

// Rotate returns copies of slips with geometry rotated by Q (crystal to sample axes)
func Rotate(slips []*SlipSystem, Q tsr.Mat) (res []*SlipSystem) {
	res = make([]*SlipSystem, len(slips))
	for i, ss := range slips {
		c := *ss
		c.S = tsr.MatVec(Q, ss.S)
		c.N = tsr.MatVec(Q, ss.N)
		c.Projector = tsr.Dyad(c.S, c.N)
		res[i] = &c
	}
	return
}

// FCC returns the 12 {111}<110> slip systems of face-centred cubic crystals with copies of the flow data in proto
func FCC(proto *SlipSystem) (slips []*SlipSystem) {
	planes := [][3]float64{{1, 1, 1}, {-1, 1, 1}, {1, -1, 1}, {1, 1, -1}}
	dirs := [][3]float64{{0, 1, -1}, {1, 0, -1}, {1, -1, 0}, {0, 1, 1}, {1, 0, 1}, {1, 1, 0}}
	for _, n := range planes {
		for _, s := range dirs {
			if s[0]*n[0]+s[1]*n[1]+s[2]*n[2] != 0 {
				continue
			}
			c := *proto
			c.SetGeometry(s, n)
			slips = append(slips, &c)
		}
	}
	return
}

// norm returns the length of v
func norm(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}
