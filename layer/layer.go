// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package layer implements the axial slabs that partition the medium's
// z-axis, each with background optical properties and embedded absorbers
package layer

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/photonmc/absorber"
	"github.com/cpmech/photonmc/geom"
)

// Layer is one contiguous axial slab: depthStart ≤ z ≤ depthEnd, with
// background optical properties {µa,µs,g,n} and an unordered set of
// Absorbers. Layers are owned exclusively by a Medium
type Layer struct {
	DepthStart, DepthEnd float64
	Mua, Mus, G, N       float64
	absorbers            []*absorber.Absorber
}

// New builds a Layer; panics if the depth range is degenerate, since a
// non-positive-thickness layer is a configuration error caught at build time
func New(depthStart, depthEnd, mua, mus, g, n float64) *Layer {
	if depthEnd <= depthStart {
		chk.Panic("layer: depthEnd (%v) must be greater than depthStart (%v)", depthEnd, depthStart)
	}
	if n < 1 {
		chk.Panic("layer: refractive index n=%v must be >= 1", n)
	}
	if g < -1 || g > 1 {
		chk.Panic("layer: anisotropy g=%v must be in [-1,1]", g)
	}
	return &Layer{DepthStart: depthStart, DepthEnd: depthEnd, Mua: mua, Mus: mus, G: g, N: n}
}

// AddAbsorber registers an absorber with this layer; callers are responsible
// for the invariant that the absorber's point-set lies inside exactly one
// layer (checked once, by config.BuildMedium, not on every lookup)
func (o *Layer) AddAbsorber(a *absorber.Absorber) {
	o.absorbers = append(o.absorbers, a)
}

// Absorbers returns the layer's absorbers in insertion order
func (o *Layer) Absorbers() []*absorber.Absorber {
	return o.absorbers
}

// ContainsDepth reports whether z falls within [depthStart,depthEnd], closed
// at both ends; at a shared boundary the caller resolving ties (Medium)
// gives priority to the upper layer
func (o *Layer) ContainsDepth(z float64) bool {
	return z >= o.DepthStart && z <= o.DepthEnd
}

// LookupAbsorber returns the first absorber (in insertion order) whose region
// contains p, or nil if none does
func (o *Layer) LookupAbsorber(p geom.Vec3) *absorber.Absorber {
	for _, a := range o.absorbers {
		if a.Contains(p) {
			return a
		}
	}
	return nil
}

// TotalAttenuation returns µa(point)+µs(point): the absorber's coefficients
// if p falls inside one of this layer's absorbers, otherwise the layer's
// background coefficients
func (o *Layer) TotalAttenuation(p geom.Vec3) (mut float64) {
	mua, mus := o.Coefficients(p)
	return mua + mus
}

// Coefficients returns the absorber-aware (µa,µs) at p
func (o *Layer) Coefficients(p geom.Vec3) (mua, mus float64) {
	if a := o.LookupAbsorber(p); a != nil {
		return a.Coefficients()
	}
	return o.Mua, o.Mus
}
