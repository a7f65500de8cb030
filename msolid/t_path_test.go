// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/goplast/tsr"
	"github.com/cpmech/gosl/chk"
)

func Test_path01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("path01")

	var pth Path
	err := pth.SetUniaxialStrain([]float64{0.02, 0.01}, 2, 0.5)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Int(tst, "size", pth.Size(), 5)
	chk.Array(tst, "dt", 1e-17, pth.Dt, []float64{0.5, 0.5, 0.5, 0.5})
	F00 := make([]float64, pth.Size())
	for i, F := range pth.F {
		F00[i] = F[0][0]
	}
	chk.Array(tst, "F00", 1e-15, F00, []float64{1, 1.01, 1.02, 1.015, 1.01})

	err = pth.ParseJson([]byte(`{"type":"shear", "targets":[0.1], "ninc":4, "dt":1}`))
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Int(tst, "size", pth.Size(), 5)
	chk.Float64(tst, "F01", 1e-15, pth.F[4][0][1], 0.1)

	err = pth.ParseJson([]byte(`{"type":"F", "dt":0.1, "F":[[[1,0,0],[0,1,0],[0,0,1]], [[1.1,0,0],[0,1,0],[0,0,1]]]}`))
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Deep2(tst, "F1", 1e-17, pth.F[1].Slice(), tsr.Mat{{1.1, 0, 0}, {0, 1, 0}, {0, 0, 1}}.Slice())

	// errors
	for _, str := range []string{
		`{"type":"cyclic"}`,
		`{"type":"uniaxial", "targets":[], "ninc":2, "dt":1}`,
		`{"type":"uniaxial", "targets":[-1.5], "ninc":1, "dt":1}`,
		`{"type":"F", "dt":1, "F":[[[1,0,0],[0,1,0],[0,0,1]], [[1,0],[0,1]]]}`,
		`{"type":"shear", "targets":[0.1], "ninc":2, "dt":-1}`,
	} {
		if err = pth.ParseJson([]byte(str)); err == nil {
			tst.Errorf("%s should fail\n", str)
		}
	}

	// files
	fn := filepath.Join(tst.TempDir(), "shear.json")
	if err = os.WriteFile(fn, []byte(`{"type":"shear", "targets":[0.2], "ninc":2, "dt":1}`), 0644); err != nil {
		tst.Errorf("cannot write file: %v\n", err)
		return
	}
	if err = pth.ReadJson(fn); err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Float64(tst, "F01", 1e-15, pth.F[2][0][1], 0.2)
	if err = pth.ReadJson(filepath.Join(tst.TempDir(), "missing.json")); err == nil {
		tst.Errorf("missing file should fail\n")
	}
}

func Test_driver01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("driver01. tangent check without a test handle")

	var pth Path
	if err := pth.SetSimpleShear([]float64{0.01}, 4, 1); err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	var drv Driver
	if err := drv.Init(newJ2(tst, 1000, 0, 0)); err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	drv.Check = true
	drv.VerD = false
	if err := drv.Run(&pth); err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Int(tst, "nbad", drv.Nbad, 0)

	// an absurd tolerance flags every non-zero entry
	drv.Silent = true
	drv.TolD = -1
	if err := drv.Run(&pth); err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if drv.Nbad != 4*81 {
		tst.Errorf("all entries should fail. nbad=%d\n", drv.Nbad)
	}

	if err := drv.Init(nil); err == nil {
		tst.Errorf("nil model should fail\n")
	}
}
