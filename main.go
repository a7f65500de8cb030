// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/goplast/inp"
	"github.com/cpmech/goplast/msolid"
	"github.com/cpmech/goplast/out"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)
	erasePrev := io.ArgToBool(2, true)
	checkD := io.ArgToBool(3, false)

	// message
	if verbose {
		io.PfWhite("\nGoplast -- material point driver for finite strain plasticity\n\n")
		io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
		io.Pf("filename path          : fnamepath = %v\n", fnamepath)
		io.Pf("show messages          : verbose   = %v\n", verbose)
		io.Pf("erase previous results : erasePrev = %v\n", erasePrev)
		io.Pf("check tangent          : checkD    = %v\n\n", checkD)
	}

	// simulation data
	sim, err := inp.ReadSim(fnamepath, erasePrev)
	if err != nil {
		chk.Panic("cannot read simulation:\n%v", err)
	}
	if verbose {
		io.Pf("%v\n", sim.Mat)
	}

	// driver
	var drv msolid.Driver
	if err = drv.Init(sim.Mat.Solid); err != nil {
		chk.Panic("%v", err)
	}
	drv.Verbose = verbose && sim.Data.Verbose
	drv.Check = checkD

	// run
	if err = drv.Run(sim.Pth); err != nil {
		chk.Panic("Run failed:\n%v", err)
	}
	if drv.Nbad > 0 {
		io.PfRed("tangent check failed in %d entries\n", drv.Nbad)
	}

	// output
	out.WriteTable(sim.DirOut, sim.Key+".res", &drv)
	if sim.Plot != nil {
		if err = out.PlotDriver(sim.DirOut, sim.Key, sim.Plot.Ext, &drv, sim.Plot.I, sim.Plot.J); err != nil {
			chk.Panic("cannot plot results:\n%v", err)
		}
	}
	if verbose {
		last := drv.Res[len(drv.Res)-1]
		io.Pfgreen("σ   = %v\n", last.Sig)
		io.Pfgreen("eqps = %g\n", last.Eqps)
		io.Pf("results saved in %s\n", sim.DirOut)
	}
}
