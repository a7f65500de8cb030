// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package msolid implements finite strain constitutive models integrated at material points
package msolid

import (
	"sort"

	"github.com/cpmech/goplast/ad"
	"github.com/cpmech/goplast/mhard"
	"github.com/cpmech/goplast/nls"
	"github.com/cpmech/goplast/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Logger is a diagnostic sink used at configuration time only
type Logger func(msg string, prm ...interface{})

// VerboseLogger prints diagnostics to the terminal
func VerboseLogger(msg string, prm ...interface{}) {
	io.Pforan(msg, prm...)
}

// Config holds the data needed to construct a model
type Config struct {
	Model     string              // model name; e.g. "j2", "gurson", "cp"
	Prms      dbf.Params          // material parameters
	Slips     []*mhard.SlipSystem // slip systems (crystal plasticity)
	Hardening string              // slip system hardening law (crystal plasticity)
	Orient    *tsr.Mat            // crystal to sample rotation (crystal plasticity); nil => identity
	Explicit  bool                // crystal plasticity: explicit (forward) update instead of the local Newton solve
	Joint     bool                // crystal plasticity: solve for slips and hardnesses jointly
	Tol       float64             // tolerance of local solver; 0 => 1e-11
	MaxIt     int                 // max number of local iterations; 0 => model default
	StrictCvg bool                // non-convergence is returned as an error
	StrictFin bool                // non-finite states are returned as errors
	Log       Logger              // diagnostic sink; nil => silent
}

// Model defines finite strain constitutive models
//  Note: models are immutable after Init and may be shared by concurrent material points
type Model interface {
	Name() string                                                       // name of model
	Init(cfg *Config) error                                             // initialises model
	GetPrms() dbf.Params                                                // gets (an example) of parameters
	InitState() *State                                                  // allocates the initial state
	Update(res *Result, sNew, sOld *State, F tsr.Ten, dt float64) error // computes the new state for deformation gradient F
	base() *modelBase                                                   // restricts implementations to this package
}

// allocators holds all available models
var allocators = map[string]func() Model{}

// Names returns the names of all available models
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// New allocates and initialises a model
func New(cfg *Config) (Model, error) {
	allocator, ok := allocators[cfg.Model]
	if !ok {
		return nil, &ConfigError{cfg.Model, chk.Err("model %q is not available in 'msolid' database", cfg.Model)}
	}
	mdl := allocator()
	if err := mdl.Init(cfg); err != nil {
		return nil, &ConfigError{cfg.Model, err}
	}
	b := mdl.base()
	b.logf("msolid: model %q initialised; tol=%g maxit=%d\n", cfg.Model, b.sol.Tol, b.sol.MaxIt)
	for _, p := range cfg.Prms {
		b.logf("  %-8s = %g\n", p.N, p.V)
	}
	return mdl, nil
}

// Result holds the outcome of one update, including derivatives w.r.t. the partials carried by F
type Result struct {
	Sig       tsr.Ten     // Cauchy stress
	Fp        tsr.Ten     // plastic deformation gradient
	Eqps      ad.Number   // equivalent plastic strain
	Void      ad.Number   // void volume fraction
	Slip      []ad.Number // slips
	Hard      []ad.Number // hardnesses
	Dgam      ad.Number   // plastic multiplier
	Loading   bool        // plastic loading
	Solve     nls.Result  // local solver information (zero for elastic steps)
	NonFinite bool        // some value is not finite
	Message   string      // description of the first non-finite value
}

// Tangent returns ∂σ/∂x as a [9][m] matrix; row 3⋅i+j corresponds to σij
func (o *Result) Tangent() (D [][]float64) {
	m := tsr.NumDeriv(o.Sig)
	D = make([][]float64, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			D[3*i+j] = make([]float64, m)
			for k := 0; k < m; k++ {
				D[3*i+j][k] = o.Sig[i][j].Deriv(k)
			}
		}
	}
	return
}

// CheckFinite checks every component of the result; sets NonFinite and Message
func (o *Result) CheckFinite() bool {
	o.NonFinite, o.Message = false, ""
	flag := func(msg string) {
		if !o.NonFinite {
			o.NonFinite, o.Message = true, msg
		}
	}
	if !tsr.AllFinite(o.Sig) {
		flag("Cauchy stress")
	}
	if !tsr.AllFinite(o.Fp) {
		flag("plastic deformation gradient")
	}
	if !o.Eqps.IsFinite() {
		flag("equivalent plastic strain")
	}
	if !o.Void.IsFinite() {
		flag("void volume fraction")
	}
	for i, v := range o.Slip {
		if !v.IsFinite() {
			flag(io.Sf("slip %d", i))
		}
	}
	for i, v := range o.Hard {
		if !v.IsFinite() {
			flag(io.Sf("hardness %d", i))
		}
	}
	return !o.NonFinite
}

// store copies the primal values into s
func (o *Result) store(s *State) {
	s.Sig = tsr.Values(o.Sig)
	s.Fp = tsr.Values(o.Fp)
	s.Eqps = o.Eqps.V
	s.Void = o.Void.V
	for i := range s.Slip {
		s.Slip[i] = o.Slip[i].V
	}
	for i := range s.Hard {
		s.Hard[i] = o.Hard[i].V
	}
	s.Dgam = o.Dgam.V
	s.Loading = o.Loading
}

// modelBase holds data shared by all models
type modelBase struct {
	name      string     // model name
	sol       nls.Solver // local solver
	strictCvg bool       // non-convergence is an error
	strictFin bool       // non-finite values are errors
	log       Logger     // diagnostic sink
}

// base returns the shared data
func (o *modelBase) base() *modelBase { return o }

// Name returns the name of the model
func (o *modelBase) Name() string { return o.name }

// initBase sets the shared data
func (o *modelBase) initBase(name string, cfg *Config, maxIt int) {
	o.name = name
	o.sol = nls.Solver{Tol: 1e-11, MaxIt: maxIt, Name: name}
	if cfg.Tol > 0 {
		o.sol.Tol = cfg.Tol
	}
	if cfg.MaxIt > 0 {
		o.sol.MaxIt = cfg.MaxIt
	}
	o.strictCvg = cfg.StrictCvg
	o.strictFin = cfg.StrictFin
	o.log = cfg.Log
}

// logf writes to the diagnostic sink
func (o *modelBase) logf(msg string, prm ...interface{}) {
	if o.log != nil {
		o.log(msg, prm...)
	}
}

// finish runs the sanity check and stores the primal values
func (o *modelBase) finish(res *Result, sNew *State, F tsr.Ten) error {
	res.CheckFinite()
	res.store(sNew)
	sNew.F = tsr.Values(F)
	if res.NonFinite && o.strictFin {
		return &PointError{Model: o.name, Status: res.Solve.Status, NonFinite: true, Msg: res.Message}
	}
	if res.Loading && res.Solve.Status != nls.Converged && o.strictCvg {
		return &PointError{Model: o.name, Status: res.Solve.Status,
			Msg: io.Sf("it=%d |r|=%g |r0|=%g", res.Solve.It, res.Solve.NormR, res.Solve.NormR0)}
	}
	return nil
}

// failed records a failure of the tangent solve and returns the corresponding error
//  Note: res keeps the values set before the failure and is checked for non-finite values
func (o *modelBase) failed(res *Result, err error) error {
	res.Loading = true
	res.Solve.Status = nls.LinearSolveFailed
	res.CheckFinite()
	return &PointError{Model: o.name, Status: nls.LinearSolveFailed, Msg: err.Error()}
}

// elastic sets res with the previous internal state (no plastic flow)
func elastic(res *Result, sOld *State) {
	res.Fp = tsr.FromMat(sOld.Fp)
	res.Eqps = ad.Const(sOld.Eqps)
	res.Void = ad.Const(sOld.Void)
	res.Slip = ad.Consts(sOld.Slip)
	res.Hard = ad.Consts(sOld.Hard)
	res.Dgam = ad.Number{}
	res.Loading = false
	res.Solve = nls.Result{}
}
