// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsr

import (
	"math"

	"github.com/cpmech/goplast/ad"
)

// constants for the iterative tensor functions
const (
	maxIt    = 100   // max number of iterations of fixed point schemes
	nExtra   = 2     // extra iterations after the primal converges (derivatives lag behind)
	tolIter  = 1e-14 // relative tolerance of fixed point schemes
	tolTerm  = 1e-20 // series truncation
	logRange = 0.25  // ‖A - I‖ allowed before the Gregory series
)

// Exp returns the exponential of A by scaling and squaring a Taylor series
func Exp(A Ten) Ten {
	nrm := Values(A).Norm()
	s := 0
	for nrm > 0.5 && s < 60 {
		nrm /= 2
		s++
	}
	X := ScaleF(math.Ldexp(1, -s), A)
	E := Identity()
	T := Identity()
	for k := 1; k < 40; k++ {
		T = ScaleF(1/float64(k), Dot(T, X))
		E = Add(E, T)
		if Values(T).Norm() <= tolTerm*Values(E).Norm() {
			break
		}
	}
	for i := 0; i < s; i++ {
		E = Dot(E, E)
	}
	return E
}

// Sqrt returns the principal square root of A by the Denman-Beavers iteration
func Sqrt(A Ten) Ten {
	Y, Z := A, Identity()
	extra := 0
	for it := 0; it < maxIt; it++ {
		Yn := ScaleF(0.5, Add(Y, Inverse(Z)))
		Zn := ScaleF(0.5, Add(Z, Inverse(Y)))
		diff := Values(Sub(Yn, Y)).Norm()
		Y, Z = Yn, Zn
		if diff <= tolIter*Values(Y).Norm() {
			extra++
			if extra > nExtra {
				break
			}
		}
	}
	return Y
}

// Log returns the principal logarithm of A by inverse scaling and squaring
//  Note: A must have no eigenvalues on the closed negative real axis
func Log(A Ten) Ten {
	X := A
	k := 0
	for Values(Sub(X, Identity())).Norm() > logRange && k < 40 {
		X = Sqrt(X)
		k++
	}

	// Gregory series: log(X) = 2 Σ z^(2j+1)/(2j+1) with z = (X - I)(X + I)⁻¹
	I := Identity()
	Z := Dot(Sub(X, I), Inverse(Add(X, I)))
	Z2 := Dot(Z, Z)
	L, T := Z, Z
	for j := 3; j < 200; j += 2 {
		T = Dot(T, Z2)
		term := ScaleF(1/float64(j), T)
		L = Add(L, term)
		if Values(term).Norm() <= tolTerm*Values(L).Norm() {
			break
		}
	}
	return ScaleF(math.Ldexp(2, k), L)
}

// rotation returns the orthogonal factor of F by Higham's scaled Newton iteration
func rotation(F Ten) Ten {
	X := F
	extra := 0
	for it := 0; it < maxIt; it++ {
		Xi := Inverse(X)
		g := 1.0
		if extra == 0 {
			g = math.Sqrt(Values(Xi).Norm() / Values(X).Norm())
		}
		Xn := Add(ScaleF(0.5*g, X), ScaleF(0.5/g, Transpose(Xi)))
		diff := Values(Sub(Xn, X)).Norm()
		X = Xn
		if diff <= tolIter*Values(X).Norm() {
			extra++
			if extra > nExtra {
				break
			}
		}
	}
	return X
}

// PolarLeft computes the left polar decomposition F = V⋅R
func PolarLeft(F Ten) (V, R Ten) {
	R = rotation(F)
	V = Sym(Dot(F, Transpose(R)))
	return
}

// PolarRight computes the right polar decomposition F = R⋅U
func PolarRight(F Ten) (R, U Ten) {
	R = rotation(F)
	U = Sym(Dot(Transpose(R), F))
	return
}

// LogRotation returns the logarithm of a rotation R (a skew tensor)
//  Note: the rotation angle must be below π
func LogRotation(R Ten) Ten {
	W := Skew(R)
	w0, w1, w2 := W[2][1], W[0][2], W[1][0]
	s2 := w0.Sq().Add(w1.Sq()).Add(w2.Sq()) // sin²θ
	var fac ad.Number
	if s2.V < 1e-16 {
		fac = s2.DivF(6).AddF(1) // θ/sinθ ≈ 1 + θ²/6
	} else {
		s := ad.Sqrt(s2)
		c := Trace(R).SubF(1).MulF(0.5)
		fac = ad.Atan2(s, c).Div(s)
	}
	return Scale(fac, W)
}

// BCH returns the Baker-Campbell-Hausdorff approximation of log(exp(X)⋅exp(Y)) up to fourth order
func BCH(X, Y Ten) Ten {
	XY := Commutator(X, Y)
	XXY := Commutator(X, XY)
	YXY := Commutator(Y, XY)
	Z := Add(X, Y)
	Z = Add(Z, ScaleF(0.5, XY))
	Z = Add(Z, ScaleF(1.0/12.0, Sub(XXY, YXY)))
	return Sub(Z, ScaleF(1.0/24.0, Commutator(Y, XXY)))
}
