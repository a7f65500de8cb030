// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tsr implements 3×3 second order tensors over dual numbers and some fourth order tensors
package tsr

import (
	"math"

	"github.com/cpmech/goplast/ad"
)

// Ten is a second order tensor with dual components
type Ten [3][3]ad.Number

// Mat is a second order tensor with plain components
type Mat [3][3]float64

// Identity returns the second order identity
func Identity() (I Ten) {
	for i := 0; i < 3; i++ {
		I[i][i] = ad.Const(1)
	}
	return
}

// MatIdentity returns the plain identity
func MatIdentity() (I Mat) {
	for i := 0; i < 3; i++ {
		I[i][i] = 1
	}
	return
}

// FromMat converts m into a plain dual tensor
func FromMat(m Mat) (A Ten) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			A[i][j] = ad.Const(m[i][j])
		}
	}
	return
}

// FromSlice converts a [3][3] slice into a plain matrix
func FromSlice(a [][]float64) (m Mat) {
	for i := 0; i < 3 && i < len(a); i++ {
		for j := 0; j < 3 && j < len(a[i]); j++ {
			m[i][j] = a[i][j]
		}
	}
	return
}

// Seed returns m with each component seeded as an unknown
//  Note: component (i,j) is the unknown number 3⋅i+j of 9
func Seed(m Mat) Ten {
	return SeedN(m, 0, 9)
}

// SeedN returns m with component (i,j) seeded as unknown number off+3⋅i+j of n
func SeedN(m Mat, off, n int) (A Ten) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			A[i][j] = ad.Var(m[i][j], off+3*i+j, n)
		}
	}
	return
}

// Values returns the primal values of A
func Values(A Ten) (m Mat) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = A[i][j].V
		}
	}
	return
}

// Primal returns A without derivatives
func Primal(A Ten) Ten {
	return FromMat(Values(A))
}

// NumDeriv returns the number of partials carried by A (zero if plain)
func NumDeriv(A Ten) int {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if n := A[i][j].N(); n > 0 {
				return n
			}
		}
	}
	return 0
}

// Deriv returns ∂A/∂x_k for the k-th unknown
func Deriv(A Ten, k int) (m Mat) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = A[i][j].Deriv(k)
		}
	}
	return
}

// Add returns A + B
func Add(A, B Ten) (C Ten) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			C[i][j] = A[i][j].Add(B[i][j])
		}
	}
	return
}

// Sub returns A - B
func Sub(A, B Ten) (C Ten) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			C[i][j] = A[i][j].Sub(B[i][j])
		}
	}
	return
}

// Scale returns s⋅A
func Scale(s ad.Number, A Ten) (C Ten) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			C[i][j] = s.Mul(A[i][j])
		}
	}
	return
}

// ScaleF returns s⋅A with a plain scalar
func ScaleF(s float64, A Ten) (C Ten) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			C[i][j] = A[i][j].MulF(s)
		}
	}
	return
}

// AddI returns A + s⋅I
func AddI(A Ten, s ad.Number) (C Ten) {
	C = A
	for i := 0; i < 3; i++ {
		C[i][i] = A[i][i].Add(s)
	}
	return
}

// Dot returns the single contraction A⋅B
func Dot(A, B Ten) (C Ten) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c := A[i][0].Mul(B[0][j])
			c = c.Add(A[i][1].Mul(B[1][j]))
			C[i][j] = c.Add(A[i][2].Mul(B[2][j]))
		}
	}
	return
}

// Dot3 returns A⋅B⋅C
func Dot3(A, B, C Ten) Ten {
	return Dot(Dot(A, B), C)
}

// Transpose returns Aᵀ
func Transpose(A Ten) (B Ten) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			B[i][j] = A[j][i]
		}
	}
	return
}

// Trace returns tr(A)
func Trace(A Ten) ad.Number {
	return A[0][0].Add(A[1][1]).Add(A[2][2])
}

// Det returns det(A)
func Det(A Ten) ad.Number {
	c0 := A[1][1].Mul(A[2][2]).Sub(A[1][2].Mul(A[2][1]))
	c1 := A[1][0].Mul(A[2][2]).Sub(A[1][2].Mul(A[2][0]))
	c2 := A[1][0].Mul(A[2][1]).Sub(A[1][1].Mul(A[2][0]))
	return A[0][0].Mul(c0).Sub(A[0][1].Mul(c1)).Add(A[0][2].Mul(c2))
}

// Inverse returns A⁻¹ computed with cofactors
//  Note: a singular A gives non-finite components
func Inverse(A Ten) (B Ten) {
	det := Det(A)
	cof := func(i0, j0, i1, j1 int) ad.Number {
		return A[i0][j0].Mul(A[i1][j1]).Sub(A[i0][j1].Mul(A[i1][j0]))
	}
	B[0][0] = cof(1, 1, 2, 2)
	B[0][1] = cof(0, 2, 2, 1)
	B[0][2] = cof(0, 1, 1, 2)
	B[1][0] = cof(1, 2, 2, 0)
	B[1][1] = cof(0, 0, 2, 2)
	B[1][2] = cof(0, 2, 1, 0)
	B[2][0] = cof(1, 0, 2, 1)
	B[2][1] = cof(0, 1, 2, 0)
	B[2][2] = cof(0, 0, 1, 1)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			B[i][j] = B[i][j].Div(det)
		}
	}
	return
}

// Sym returns ½(A + Aᵀ)
func Sym(A Ten) Ten {
	return ScaleF(0.5, Add(A, Transpose(A)))
}

// Skew returns ½(A - Aᵀ)
func Skew(A Ten) Ten {
	return ScaleF(0.5, Sub(A, Transpose(A)))
}

// Dev returns A - ⅓tr(A)I
func Dev(A Ten) Ten {
	return AddI(A, Trace(A).MulF(-1.0/3.0))
}

// DotDot returns the double contraction A:B
func DotDot(A, B Ten) (s ad.Number) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s = s.Add(A[i][j].Mul(B[i][j]))
		}
	}
	return
}

// DotDotMat returns A:M with a plain M
func DotDotMat(A Ten, M Mat) (s ad.Number) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if M[i][j] != 0 {
				s = s.Add(A[i][j].MulF(M[i][j]))
			}
		}
	}
	return
}

// Norm returns the Frobenius norm √(A:A)
//  Note: the norm of a zero tensor has zero derivatives
func Norm(A Ten) ad.Number {
	s := DotDot(A, A)
	if s.V == 0 {
		return ad.Zero(s.N())
	}
	return ad.Sqrt(s)
}

// Commutator returns [A, B] = A⋅B - B⋅A
func Commutator(A, B Ten) Ten {
	return Sub(Dot(A, B), Dot(B, A))
}

// AllFinite returns true if every component of A (value and partials) is finite
func AllFinite(A Ten) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !A[i][j].IsFinite() {
				return false
			}
		}
	}
	return true
}

// Norm returns the Frobenius norm of m
func (m Mat) Norm() float64 {
	var s float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s += m[i][j] * m[i][j]
		}
	}
	return math.Sqrt(s)
}

// T returns mᵀ
func (m Mat) T() (t Mat) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = m[j][i]
		}
	}
	return
}

// Dot returns m⋅n
func (m Mat) Dot(n Mat) (c Mat) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				c[i][j] += m[i][k] * n[k][j]
			}
		}
	}
	return
}

// Sym returns ½(m + mᵀ)
func (m Mat) Sym() (c Mat) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = 0.5 * (m[i][j] + m[j][i])
		}
	}
	return
}

// DotDot returns m:n
func (m Mat) DotDot(n Mat) (s float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s += m[i][j] * n[i][j]
		}
	}
	return
}

// Slice returns m as [][]float64
func (m Mat) Slice() [][]float64 {
	a := make([][]float64, 3)
	for i := 0; i < 3; i++ {
		a[i] = []float64{m[i][0], m[i][1], m[i][2]}
	}
	return a
}

// Dyad returns a⊗b
func Dyad(a, b [3]float64) (m Mat) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = a[i] * b[j]
		}
	}
	return
}

// MatVec returns m⋅v
func MatVec(m Mat, v [3]float64) (u [3]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			u[i] += m[i][j] * v[j]
		}
	}
	return
}
