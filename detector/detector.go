// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package detector implements the planar apertures that register a photon
// exit when its final segment crosses them within a circular region
package detector

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/photonmc/geom"
)

// epsilon is the tolerance used for both the segment-parameter bound and the
// radius comparison
const epsilon = 1e-13

// Axis names the plane a Detector lies on
type Axis int

const (
	PlaneXY Axis = iota // normal along Z
	PlaneXZ             // normal along Y
	PlaneYZ             // normal along X
)

// Detector is an immutable, axis-aligned planar aperture: a plane at a fixed
// coordinate along its normal axis, with a circular region of the given
// center and radius measured within the plane
type Detector struct {
	axis   Axis
	coord  float64 // the plane's fixed coordinate along its normal
	center geom.Vec3
	radius float64
}

// New builds a Detector; panics if radius is non-positive, since that is a
// configuration error caught at initialization
func New(axis Axis, coord float64, center geom.Vec3, radius float64) *Detector {
	if radius <= 0 {
		chk.Panic("detector: radius must be > 0, got %v", radius)
	}
	return &Detector{axis: axis, coord: coord, center: center, radius: radius}
}

// normal returns the plane's unit normal for this axis
func (o *Detector) normal() geom.Vec3 {
	switch o.axis {
	case PlaneXY:
		return geom.New(0, 0, 1)
	case PlaneXZ:
		return geom.New(0, 1, 0)
	default:
		return geom.New(1, 0, 0)
	}
}

// pointOnPlane returns an arbitrary point q on the plane
func (o *Detector) pointOnPlane() geom.Vec3 {
	switch o.axis {
	case PlaneXY:
		return geom.New(0, 0, o.coord)
	case PlaneXZ:
		return geom.New(0, o.coord, 0)
	default:
		return geom.New(o.coord, 0, 0)
	}
}

// CrossedBy reports whether the segment crosses the aperture: let n be the
// plane normal, q a point on
// the plane; u = n·(q-pPrev)/n·(pCurr-pPrev); if u ∉ [0,1+ε] the segment
// misses the plane; otherwise the intersection point P registers a hit iff
// (P-center)·(P-center) ≤ radius²+ε
func (o *Detector) CrossedBy(pPrev, pCurr geom.Vec3) bool {
	n := o.normal()
	q := o.pointOnPlane()
	denom := n.Dot(pCurr.Sub(pPrev))
	if denom == 0 {
		return false
	}
	u := n.Dot(q.Sub(pPrev)) / denom
	if u < 0 || u > 1+epsilon {
		return false
	}
	p := pPrev.Add(pCurr.Sub(pPrev).Scale(u))
	return o.Contains(p)
}

// Contains reports whether a point lying on the detector plane falls inside
// the circular aperture
func (o *Detector) Contains(p geom.Vec3) bool {
	d := p.Sub(o.center)
	return d.Dot(d) <= o.radius*o.radius+epsilon
}
