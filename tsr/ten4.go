// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsr

import "github.com/cpmech/goplast/ad"

// Ten4 is a fourth order tensor with plain components (elasticity moduli)
type Ten4 [3][3][3][3]float64

// δ returns the Kronecker delta
func δ(i, j int) float64 {
	if i == j {
		return 1
	}
	return 0
}

// IsotropicC returns the isotropic elasticity tensor λ δij δkl + μ (δik δjl + δil δjk)
func IsotropicC(λ, μ float64) (C Ten4) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					C[i][j][k][l] = λ*δ(i, j)*δ(k, l) + μ*(δ(i, k)*δ(j, l)+δ(i, l)*δ(j, k))
				}
			}
		}
	}
	return
}

// CubicC returns the elasticity tensor of a cubic crystal in its own axes
func CubicC(c11, c12, c44 float64) (C Ten4) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				C[i][i][i][i] = c11
				continue
			}
			C[i][i][j][j] = c12
			C[i][j][i][j] = c44
			C[i][j][j][i] = c44
		}
	}
	return
}

// RotateC returns C'ijkl = Qim Qjn Qko Qlp Cmnop
func RotateC(C Ten4, Q Mat) (D Ten4) {
	var t1, t2, t3 Ten4
	for i := 0; i < 3; i++ {
		for n := 0; n < 3; n++ {
			for o := 0; o < 3; o++ {
				for p := 0; p < 3; p++ {
					for m := 0; m < 3; m++ {
						t1[i][n][o][p] += Q[i][m] * C[m][n][o][p]
					}
				}
			}
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for o := 0; o < 3; o++ {
				for p := 0; p < 3; p++ {
					for n := 0; n < 3; n++ {
						t2[i][j][o][p] += Q[j][n] * t1[i][n][o][p]
					}
				}
			}
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for p := 0; p < 3; p++ {
					for o := 0; o < 3; o++ {
						t3[i][j][k][p] += Q[k][o] * t2[i][j][o][p]
					}
				}
			}
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					for p := 0; p < 3; p++ {
						D[i][j][k][l] += Q[l][p] * t3[i][j][k][p]
					}
				}
			}
		}
	}
	return
}

// DotDot4 returns C:E, i.e. Sij = Cijkl Ekl
func DotDot4(C *Ten4, E Ten) (S Ten) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s ad.Number
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					if C[i][j][k][l] != 0 {
						s = s.Add(E[k][l].MulF(C[i][j][k][l]))
					}
				}
			}
			S[i][j] = s
		}
	}
	return
}
