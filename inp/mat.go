// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/goplast/mhard"
	"github.com/cpmech/goplast/msolid"
	"github.com/cpmech/goplast/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// SlipData holds the input data of one slip system (or of the prototype of a lattice)
type SlipData struct {
	S     []float64 `json:"s"`     // slip direction
	N     []float64 `json:"n"`     // slip plane normal
	Tauc  float64   `json:"tauc"`  // critical resolved shear stress
	G0    float64   `json:"g0"`    // reference slip rate
	M     float64   `json:"m"`     // rate sensitivity exponent
	H     float64   `json:"H"`     // hardening modulus
	Rd    float64   `json:"Rd"`    // recovery coefficient
	Theta float64   `json:"theta"` // saturation: hardening rate
	Ssat  float64   `json:"ssat"`  // saturation: initial saturation stress
	Msat  float64   `json:"msat"`  // saturation: exponent
	R0    float64   `json:"r0"`    // saturation: initial resistance
}

// Material holds material data
type Material struct {

	// input
	Name      string      `json:"name"`      // name of material
	Model     string      `json:"model"`     // name of model; e.g. "j2", "gurson", "cp"
	Extra     string      `json:"extra"`     // extra information about this material
	Prms      dbf.Params  `json:"prms"`      // model parameters
	Hardening string      `json:"hardening"` // slip system hardening law
	Lattice   string      `json:"lattice"`   // lattice generating the slip systems from "slip"; e.g. "fcc"
	Slip      *SlipData   `json:"slip"`      // prototype for the lattice slip systems
	Slips     []*SlipData `json:"slips"`     // explicit list of slip systems
	Orient    [][]float64 `json:"orient"`    // crystal to sample rotation (3x3)
	Explicit  bool        `json:"explicit"`  // explicit crystal plasticity update
	Joint     bool        `json:"joint"`     // solve for slips and hardnesses jointly
	Tol       float64     `json:"tol"`       // local solver tolerance
	MaxIt     int         `json:"maxit"`     // local solver max number of iterations
	StrictCvg bool        `json:"strictcvg"` // non-convergence is an error
	StrictFin bool        `json:"strictfin"` // non-finite states are errors

	// derived
	Cfg   *msolid.Config // configuration bundle
	Solid msolid.Model   // initialised model
}

// MatDb implements a database of materials
type MatDb struct {
	Materials []*Material `json:"materials"` // all materials
}

// ReadMat reads all materials data from a .mat JSON file
func ReadMat(dir, fn string, log msolid.Logger) (mdb *MatDb, err error) {
	b, err := os.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, chk.Err("cannot read materials file: %v\n", err)
	}
	return ParseMat(b, log)
}

// ParseMat decodes a materials database and initialises all models
func ParseMat(b []byte, log msolid.Logger) (mdb *MatDb, err error) {
	mdb = new(MatDb)
	if err = json.Unmarshal(b, mdb); err != nil {
		return nil, chk.Err("cannot decode materials database: %v\n", err)
	}
	names := make(map[string]bool)
	for _, m := range mdb.Materials {
		if m.Name == "" {
			return nil, chk.Err("material name must not be empty\n")
		}
		if names[m.Name] {
			return nil, chk.Err("material %q is defined more than once\n", m.Name)
		}
		names[m.Name] = true
		if m.Cfg, err = m.config(log); err != nil {
			return nil, chk.Err("material %q: %v", m.Name, err)
		}
		if m.Solid, err = msolid.New(m.Cfg); err != nil {
			return nil, chk.Err("material %q: %v", m.Name, err)
		}
	}
	return
}

// Get returns a material
//  Note: returns nil if not found
func (o MatDb) Get(name string) *Material {
	for _, mat := range o.Materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// config converts the input data into a model configuration
func (o *Material) config(log msolid.Logger) (cfg *msolid.Config, err error) {
	cfg = &msolid.Config{
		Model:     o.Model,
		Prms:      o.Prms,
		Hardening: o.Hardening,
		Explicit:  o.Explicit,
		Joint:     o.Joint,
		Tol:       o.Tol,
		MaxIt:     o.MaxIt,
		StrictCvg: o.StrictCvg,
		StrictFin: o.StrictFin,
		Log:       log,
	}

	// slip systems
	switch strings.ToLower(o.Lattice) {
	case "":
	case "fcc":
		if o.Slip == nil {
			return nil, chk.Err("lattice %q requires the prototype \"slip\"\n", o.Lattice)
		}
		var proto *mhard.SlipSystem
		if proto, err = o.Slip.system(false); err != nil {
			return
		}
		cfg.Slips = mhard.FCC(proto)
	default:
		return nil, chk.Err("lattice %q is not available\n", o.Lattice)
	}
	for i, sd := range o.Slips {
		ss, e := sd.system(true)
		if e != nil {
			return nil, chk.Err("slip system %d: %v", i, e)
		}
		cfg.Slips = append(cfg.Slips, ss)
	}

	// orientation
	if len(o.Orient) > 0 {
		var Q tsr.Mat
		if Q, err = rotation(o.Orient); err != nil {
			return
		}
		cfg.Orient = &Q
	}
	return
}

// system returns the slip system; geometry is required if withGeometry
func (o *SlipData) system(withGeometry bool) (ss *mhard.SlipSystem, err error) {
	ss = &mhard.SlipSystem{
		TauCritical:       o.Tauc,
		RateRef:           o.G0,
		Exponent:          o.M,
		H:                 o.H,
		Rd:                o.Rd,
		RateHardening:     o.Theta,
		StressSatInitial:  o.Ssat,
		ExponentSat:       o.Msat,
		ResistanceInitial: o.R0,
	}
	if ss.RateRef == 0 {
		ss.RateRef = 1
	}
	if ss.Exponent == 0 {
		ss.Exponent = 1
	}
	if !withGeometry {
		return
	}
	if len(o.S) != 3 || len(o.N) != 3 {
		return nil, chk.Err("slip direction and normal must have 3 components\n")
	}
	err = ss.SetGeometry([3]float64{o.S[0], o.S[1], o.S[2]}, [3]float64{o.N[0], o.N[1], o.N[2]})
	return
}

// rotation converts and checks a rotation matrix
func rotation(a [][]float64) (Q tsr.Mat, err error) {
	if len(a) != 3 {
		return Q, chk.Err("orientation must be a 3x3 matrix\n")
	}
	for i := 0; i < 3; i++ {
		if len(a[i]) != 3 {
			return Q, chk.Err("orientation must be a 3x3 matrix\n")
		}
	}
	Q = tsr.FromSlice(a)
	QtQ := Q.T().Dot(Q)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			δ := 0.0
			if i == j {
				δ = 1
			}
			if math.Abs(QtQ[i][j]-δ) > 1e-8 {
				return Q, chk.Err("orientation must be orthogonal. QᵀQ=%v\n", QtQ)
			}
		}
	}
	if tsr.Det(tsr.FromMat(Q)).V < 0 {
		return Q, chk.Err("orientation must be a proper rotation (det = 1)\n")
	}
	return
}

// String prints one material
func (o *Material) String() string {
	l := io.Sf("    {\n      \"name\"  : %q,\n      \"model\" : %q,\n      \"prms\"  : [", o.Name, o.Model)
	for i, p := range o.Prms {
		if i > 0 {
			l += ","
		}
		l += io.Sf("\n        {\"n\":%q, \"v\":%g}", p.N, p.V)
	}
	l += "\n      ]"
	if o.Cfg != nil && len(o.Cfg.Slips) > 0 {
		l += io.Sf(",\n      \"nslip\" : %d", len(o.Cfg.Slips))
	}
	return l + "\n    }"
}

// String outputs all materials
func (o MatDb) String() string {
	l := "{\n  \"materials\" : [\n"
	for i, m := range o.Materials {
		if i > 0 {
			l += ",\n"
		}
		l += m.String()
	}
	return l + "\n  ]\n}"
}
