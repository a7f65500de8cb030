// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Elasticity holds isotropic elastic moduli
type Elasticity struct {
	E  float64 // Young's modulus
	Nu float64 // Poisson's coefficient
	K  float64 // bulk modulus κ
	G  float64 // shear modulus μ
	L  float64 // Lamé's coefficient λ
}

// Init reads "E" and "nu", or "K" and "G", or "l" and "G"; other parameters are ignored
func (o *Elasticity) Init(prms dbf.Params) (err error) {
	var hasE, hasNu, hasK, hasG, hasL bool
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E, hasE = p.V, true
		case "nu":
			o.Nu, hasNu = p.V, true
		case "K":
			o.K, hasK = p.V, true
		case "G":
			o.G, hasG = p.V, true
		case "l":
			o.L, hasL = p.V, true
		}
	}
	switch {
	case hasE && hasNu:
		o.K = o.E / (3.0 * (1.0 - 2.0*o.Nu))
		o.G = o.E / (2.0 * (1.0 + o.Nu))
	case hasK && hasG:
		o.E = 9.0 * o.K * o.G / (3.0*o.K + o.G)
		o.Nu = (3.0*o.K - 2.0*o.G) / (2.0 * (3.0*o.K + o.G))
	case hasL && hasG:
		o.K = o.L + 2.0*o.G/3.0
		o.E = 9.0 * o.K * o.G / (3.0*o.K + o.G)
		o.Nu = (3.0*o.K - 2.0*o.G) / (2.0 * (3.0*o.K + o.G))
	default:
		return chk.Err("elasticity: a pair of moduli is required: (E,nu), (K,G) or (l,G)\n")
	}
	o.L = o.K - 2.0*o.G/3.0
	if o.K <= 0 || o.G <= 0 {
		return chk.Err("elasticity: bulk and shear moduli must be positive. K=%g G=%g\n", o.K, o.G)
	}
	return
}

// elasticPrm returns true if name is read by Elasticity
func elasticPrm(name string) bool {
	switch name {
	case "E", "nu", "K", "G", "l":
		return true
	}
	return false
}
