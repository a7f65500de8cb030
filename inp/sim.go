// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from (.sim) and (.mat) JSON files
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/goplast/msolid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for material point simulations
type Data struct {
	Desc     string `json:"desc"`     // description of simulation
	Matfile  string `json:"matfile"`  // materials file path (relative to the .sim file)
	Material string `json:"material"` // name of material to be driven
	DirOut   string `json:"dirout"`   // directory for output; e.g. /tmp/goplast
	Verbose  bool   `json:"verbose"`  // show progress
	LogMat   bool   `json:"logmat"`   // show models' diagnostics at configuration time
}

// PlotData holds data for plotting driver results
type PlotData struct {
	I   int    `json:"i"`   // row of stress and strain components
	J   int    `json:"j"`   // column of stress and strain components
	Ext string `json:"ext"` // file extension; e.g. "png", "svg", "pdf"
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data Data            `json:"data"` // global simulation data
	Path json.RawMessage `json:"path"` // loading path; see msolid.Path.ParseJson
	Plot *PlotData       `json:"plot"` // plot results; nil => no plot

	// derived
	Key       string       // simulation key; e.g. mysim01.sim => mysim01
	DirOut    string       // directory to save results
	MatParams *MatDb       // materials' parameters
	Mat       *Material    // driven material
	Pth       *msolid.Path // loading path
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath string, erasefiles bool) (o *Simulation, err error) {

	// read file
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read simulation file %q: %v", simfilepath, err)
	}

	// decode
	o = new(Simulation)
	if err = json.Unmarshal(b, o); err != nil {
		return nil, chk.Err("ReadSim: cannot unmarshal simulation file %q: %v", simfilepath, err)
	}

	// input directory and filename key
	dir := os.ExpandEnv(filepath.Dir(simfilepath))
	o.Key = io.FnKey(filepath.Base(simfilepath))

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = filepath.Join(os.TempDir(), "goplast", o.Key)
	}
	if erasefiles {
		if err = os.MkdirAll(o.DirOut, 0777); err != nil {
			return nil, chk.Err("ReadSim: cannot create directory for output results (%s): %v", o.DirOut, err)
		}
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, o.Key))
	}

	// materials database
	var log msolid.Logger
	if o.Data.LogMat {
		log = msolid.VerboseLogger
	}
	if o.MatParams, err = ReadMat(dir, o.Data.Matfile, log); err != nil {
		return nil, chk.Err("ReadSim: cannot read materials database: %v", err)
	}
	if o.Mat = o.MatParams.Get(o.Data.Material); o.Mat == nil {
		return nil, chk.Err("ReadSim: cannot find material %q in %q", o.Data.Material, o.Data.Matfile)
	}

	// loading path
	if len(o.Path) == 0 {
		return nil, chk.Err("ReadSim: loading path is missing")
	}
	o.Pth = new(msolid.Path)
	if err = o.Pth.ParseJson(o.Path); err != nil {
		return nil, chk.Err("ReadSim: %v", err)
	}

	// plot
	if o.Plot != nil {
		if o.Plot.I < 0 || o.Plot.I > 2 || o.Plot.J < 0 || o.Plot.J > 2 {
			return nil, chk.Err("ReadSim: plot component (%d,%d) is invalid", o.Plot.I, o.Plot.J)
		}
		if o.Plot.Ext == "" {
			o.Plot.Ext = "png"
		}
	}
	return
}
