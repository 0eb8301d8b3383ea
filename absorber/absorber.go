// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package absorber implements the embedded Sphere/Cylinder shapes with local
// optical properties and a linearizable deposited-energy accumulator
package absorber

import (
	"math"
	"sync/atomic"

	"github.com/cpmech/photonmc/geom"
)

// Kind tags which shape a given Absorber carries
type Kind int

const (
	Sphere Kind = iota
	Cylinder
)

// Absorber is the tagged union of embedded shapes. Cylinder axis is always
// parallel to Z, matching the layered (axial) medium
type Absorber struct {
	kind   Kind
	center geom.Vec3
	radius float64 // sphere radius, or cylinder radius
	halfH  float64 // cylinder half-height along z; unused for Sphere

	mua, mus float64 // local optical coefficients

	depositedBits uint64 // atomic bit-pattern of the deposited-energy float64
}

// NewSphere builds a spherical absorber
func NewSphere(center geom.Vec3, radius, mua, mus float64) *Absorber {
	return &Absorber{kind: Sphere, center: center, radius: radius, mua: mua, mus: mus}
}

// NewCylinder builds a Z-axis cylinder absorber of given radius and half-height
func NewCylinder(center geom.Vec3, radius, halfHeight, mua, mus float64) *Absorber {
	return &Absorber{kind: Cylinder, center: center, radius: radius, halfH: halfHeight, mua: mua, mus: mus}
}

// Kind returns the shape tag
func (o *Absorber) Kind() Kind { return o.kind }

// Contains reports whether p lies inside the absorber, boundary closed
func (o *Absorber) Contains(p geom.Vec3) bool {
	switch o.kind {
	case Sphere:
		d := p.Sub(o.center)
		return d.Dot(d) <= o.radius*o.radius
	case Cylinder:
		dz := p.Z - o.center.Z
		if dz < -o.halfH || dz > o.halfH {
			return false
		}
		dx, dy := p.X-o.center.X, p.Y-o.center.Y
		return dx*dx+dy*dy <= o.radius*o.radius
	}
	return false
}

// Coefficients returns the absorber's local (µa, µs)
func (o *Absorber) Coefficients() (mua, mus float64) { return o.mua, o.mus }

// Deposit atomically adds energy to the running total. Implemented as a
// compare-and-swap loop on the float64's bit pattern: load, compute the sum
// locally, CAS, retry on failure
func (o *Absorber) Deposit(energy float64) {
	for {
		oldBits := atomic.LoadUint64(&o.depositedBits)
		oldVal := math.Float64frombits(oldBits)
		newVal := oldVal + energy
		newBits := math.Float64bits(newVal)
		if atomic.CompareAndSwapUint64(&o.depositedBits, oldBits, newBits) {
			return
		}
	}
}

// DepositedEnergy returns the current accumulated total
func (o *Absorber) DepositedEnergy() float64 {
	return math.Float64frombits(atomic.LoadUint64(&o.depositedBits))
}
