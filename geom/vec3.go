// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geom implements the cartesian primitives and Fresnel optics shared
// by every layer of the photon transport engine
package geom

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// unitTol is the tolerance for the dx²+dy²+dz²=1 direction-cosine invariant
const unitTol = 1e-9

// Vec3 is a three-component cartesian position, optionally carrying a
// unit-length direction. Position and direction share the same type because
// the walker frequently needs both together (p, d)
type Vec3 struct {
	X, Y, Z float64
}

// New builds a Vec3 from components
func New(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// slice3 borrows la's vector helpers, which operate on []float64
func (v Vec3) slice3() []float64 { return []float64{v.X, v.Y, v.Z} }

func fromSlice3(s []float64) Vec3 { return Vec3{X: s[0], Y: s[1], Z: s[2]} }

// Add returns v+w
func (v Vec3) Add(w Vec3) Vec3 {
	r := make([]float64, 3)
	la.VecAdd2(r, 1, v.slice3(), 1, w.slice3())
	return fromSlice3(r)
}

// Sub returns v-w
func (v Vec3) Sub(w Vec3) Vec3 {
	r := make([]float64, 3)
	la.VecAdd2(r, 1, v.slice3(), -1, w.slice3())
	return fromSlice3(r)
}

// Scale returns v scaled by s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product v·w
func (v Vec3) Dot(w Vec3) float64 {
	return la.VecDot(v.slice3(), w.slice3())
}

// Cross returns the cross product v×w
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Length returns |v|
func (v Vec3) Length() float64 {
	return la.VecNorm(v.slice3())
}

// Normalize returns v/|v|; panics on a zero vector since that indicates a
// simulator bug (a direction may never collapse to zero)
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		chk.Panic("geom: cannot normalize the zero vector")
	}
	return v.Scale(1 / l)
}

// IsUnit reports whether v is a unit-length direction within unitTol, per the
// Vec3 invariant dx²+dy²+dz²=1±1e-9
func (v Vec3) IsUnit() bool {
	n2 := v.X*v.X + v.Y*v.Y + v.Z*v.Z
	return math.Abs(n2-1) <= unitTol
}
