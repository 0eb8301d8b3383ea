// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_vecOps(tst *testing.T) {

	chk.PrintTitle("vec3 ops")

	a := New(1, 2, 3)
	b := New(4, 5, 6)
	chk.Float64(tst, "a·b", 1e-15, a.Dot(b), 32)

	c := a.Cross(b)
	chk.Vector(tst, "a×b", 1e-15, []float64{c.X, c.Y, c.Z}, []float64{-3, 6, -3})

	u := New(0, 0, 1)
	if !u.IsUnit() {
		tst.Fatal("(0,0,1) should be unit")
	}
}

func Test_fresnelSymmetryAtNormal(tst *testing.T) {

	chk.PrintTitle("fresnel normal incidence")

	// invariant 6: R(n1,n2,θ->0) == ((n1-n2)/(n1+n2))²
	n1, n2 := 1.0, 1.33
	want := (n1 - n2) / (n1 + n2)
	want *= want
	got := Reflectance(1.0, n1, n2)
	chk.Float64(tst, "R(theta=0)", 1e-12, got, want)
}

func Test_fresnelTIR(tst *testing.T) {

	chk.PrintTitle("fresnel total internal reflection")

	n1, n2 := 1.33, 1.0
	crit := CriticalAngle(n1, n2)
	cosI := math.Cos(crit + 0.1)
	R := Reflectance(cosI, n1, n2)
	chk.Float64(tst, "R(TIR)", 1e-15, R, 1.0)
}

func Test_fresnelNoMismatch(tst *testing.T) {

	chk.PrintTitle("fresnel identical index never reflects")

	R := Reflectance(0.5, 1.0, 1.0)
	chk.Float64(tst, "R(n1=n2)", 1e-12, R, 0.0)
}
