// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/goplast/msolid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

const matfile = `{
  "materials" : [
    {
      "name"  : "steel",
      "model" : "j2",
      "prms"  : [
        {"n":"E",  "v":210000},
        {"n":"nu", "v":0.3},
        {"n":"Y",  "v":200},
        {"n":"H",  "v":1000}
      ]
    },
    {
      "name"  : "porous",
      "model" : "gurson",
      "maxit" : 25,
      "prms"  : [
        {"n":"E",  "v":200000},
        {"n":"nu", "v":0.3},
        {"n":"Y",  "v":300},
        {"n":"f0", "v":0.01}
      ]
    },
    {
      "name"      : "copper",
      "model"     : "cp",
      "hardening" : "saturation",
      "lattice"   : "fcc",
      "slip"      : {"tauc":100, "g0":0.1, "m":3, "theta":200, "ssat":150},
      "orient"    : [[0,-1,0],[1,0,0],[0,0,1]],
      "prms"      : [
        {"n":"C11", "v":168400},
        {"n":"C12", "v":121400},
        {"n":"C44", "v":75400}
      ]
    },
    {
      "name"  : "single",
      "model" : "cp",
      "joint" : true,
      "slips" : [
        {"s":[1,-1,0], "n":[1,1,1], "tauc":50, "H":100},
        {"s":[0,1,-1], "n":[1,1,1], "tauc":50, "H":100}
      ],
      "prms"  : [
        {"n":"E",  "v":200000},
        {"n":"nu", "v":0.3}
      ]
    }
  ]
}`

func Test_mat01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat01")

	mdb, err := ParseMat([]byte(matfile), nil)
	require.NoError(tst, err)
	require.Len(tst, mdb.Materials, 4)
	io.Pforan("%v\n", mdb)

	steel := mdb.Get("steel")
	require.NotNil(tst, steel)
	require.Equal(tst, "j2", steel.Solid.Name())

	porous := mdb.Get("porous")
	require.NotNil(tst, porous)
	require.Equal(tst, 25, porous.Cfg.MaxIt)
	require.InDelta(tst, 0.01, porous.Solid.InitState().Void, 1e-17)

	copper := mdb.Get("copper")
	require.NotNil(tst, copper)
	require.Len(tst, copper.Cfg.Slips, 12)
	require.NotNil(tst, copper.Cfg.Orient)
	require.Equal(tst, "saturation", copper.Cfg.Hardening)
	require.Len(tst, copper.Solid.InitState().Slip, 12)

	single := mdb.Get("single")
	require.NotNil(tst, single)
	require.True(tst, single.Cfg.Joint)
	require.Len(tst, single.Cfg.Slips, 2)
	require.InDelta(tst, 1.0, single.Cfg.Slips[0].RateRef, 1e-17)

	require.Nil(tst, mdb.Get("wood"))
}

func Test_mat02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat02. errors")

	for _, str := range []string{
		`{"materials":[{"name":"a", "model":"dp", "prms":[]}]}`,
		`{"materials":[{"model":"j2", "prms":[{"n":"E","v":1},{"n":"nu","v":0.3},{"n":"Y","v":1}]}]}`,
		`{"materials":[{"name":"a", "model":"j2", "prms":[{"n":"E","v":1},{"n":"nu","v":0.3},{"n":"Y","v":1}]},
		               {"name":"a", "model":"j2", "prms":[{"n":"E","v":1},{"n":"nu","v":0.3},{"n":"Y","v":1}]}]}`,
		`{"materials":[{"name":"a", "model":"cp", "lattice":"bcc", "slip":{"tauc":1}, "prms":[{"n":"E","v":1},{"n":"nu","v":0.3}]}]}`,
		`{"materials":[{"name":"a", "model":"cp", "lattice":"fcc", "prms":[{"n":"E","v":1},{"n":"nu","v":0.3}]}]}`,
		`{"materials":[{"name":"a", "model":"cp", "slips":[{"s":[1,0], "n":[0,1,0], "tauc":1}], "prms":[{"n":"E","v":1},{"n":"nu","v":0.3}]}]}`,
		`{"materials":[{"name":"a", "model":"cp", "lattice":"fcc", "slip":{"tauc":1}, "orient":[[2,0,0],[0,1,0],[0,0,1]],
		                "prms":[{"n":"E","v":1},{"n":"nu","v":0.3}]}]}`,
		`{"materials":[{"name":"a", "model":"cp", "lattice":"fcc", "slip":{"tauc":1}, "orient":[[-1,0,0],[0,1,0],[0,0,1]],
		                "prms":[{"n":"E","v":1},{"n":"nu","v":0.3}]}]}`,
		`{"materials":`,
	} {
		_, err := ParseMat([]byte(str), nil)
		require.Error(tst, err, str)
		io.Pforan("%v\n", err)
	}
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01")

	dir := tst.TempDir()
	require.NoError(tst, os.WriteFile(filepath.Join(dir, "test.mat"), []byte(matfile), 0644))
	sim := `{
	  "data" : {"desc":"uniaxial", "matfile":"test.mat", "material":"steel", "dirout":"` + dir + `"},
	  "path" : {"type":"uniaxial", "targets":[0.01], "ninc":5, "dt":1},
	  "plot" : {"i":0, "j":0}
	}`
	fn := filepath.Join(dir, "uniaxial.sim")
	require.NoError(tst, os.WriteFile(fn, []byte(sim), 0644))

	o, err := ReadSim(fn, false)
	require.NoError(tst, err)
	require.Equal(tst, "uniaxial", o.Key)
	require.Equal(tst, "steel", o.Mat.Name)
	require.Equal(tst, 6, o.Pth.Size())
	require.Equal(tst, "png", o.Plot.Ext)

	var drv msolid.Driver
	require.NoError(tst, drv.Init(o.Mat.Solid))
	require.NoError(tst, drv.Run(o.Pth))
	require.Greater(tst, drv.Res[5].Eqps, 0.0)

	// missing material
	bad := `{"data":{"matfile":"test.mat", "material":"wood"}, "path":{"type":"shear", "targets":[0.1], "ninc":1, "dt":1}}`
	require.NoError(tst, os.WriteFile(fn, []byte(bad), 0644))
	_, err = ReadSim(fn, false)
	require.Error(tst, err)

	// missing path
	bad = `{"data":{"matfile":"test.mat", "material":"steel"}}`
	require.NoError(tst, os.WriteFile(fn, []byte(bad), 0644))
	_, err = ReadSim(fn, false)
	require.Error(tst, err)

	// missing files
	_, err = ReadSim(filepath.Join(dir, "missing.sim"), false)
	require.Error(tst, err)
	_, err = ReadMat(dir, "missing.mat", nil)
	require.Error(tst, err)
	bad = `{"data":{"matfile":"missing.mat", "material":"steel"}, "path":{"type":"shear", "targets":[0.1], "ninc":1, "dt":1}}`
	require.NoError(tst, os.WriteFile(fn, []byte(bad), 0644))
	_, err = ReadSim(fn, false)
	require.Error(tst, err)
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. example files")

	for _, fn := range []string{"uniaxial_steel.sim", "shear_copper.sim"} {
		o, err := ReadSim(filepath.Join("..", "examples", fn), false)
		require.NoError(tst, err, fn)
		require.Len(tst, o.MatParams.Materials, 3)
		require.NotNil(tst, o.Plot)
		require.Greater(tst, o.Pth.Size(), 2)
	}
}
