// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package walker

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/photonmc/geom"
	"github.com/cpmech/photonmc/layer"
	"github.com/cpmech/photonmc/logger"
	"github.com/cpmech/photonmc/medium"
	"github.com/cpmech/photonmc/rng"
)

// rouletteChance is the survival probability applied once weight drops below
// rouletteThreshold
const (
	rouletteThreshold = 0.01
	rouletteChance    = 0.1
)

// boundaryEps guards the tie-break and zero-step comparisons in the hop loop
const boundaryEps = 1e-12

// Walker owns one goroutine's random walk: its private RNG, a borrowed
// read-only Medium, a shared Logger and a per-walker shadow of the planar
// fluence bins that is merged into the Medium once per Run, keeping the
// hot loop contention-free
type Walker struct {
	medium *medium.Medium
	rng    *rng.Generator
	logger *logger.Logger
	shadow []float64

	// Launched, Detected and TotalPathLength feed the Driver's summary line
	Launched        int
	Detected        int
	TotalPathLength float64
}

// New builds a Walker bound to the given (read-only) Medium, owning the
// given RNG exclusively
func New(m *medium.Medium, gen *rng.Generator, lg *logger.Logger) *Walker {
	return &Walker{medium: m, rng: gen, logger: lg, shadow: make([]float64, m.MaxBins()+1)}
}

// Run executes K full INITIAL->...->DEAD cycles launched from source, and
// merges the per-walker fluence shadow into the Medium at the end
func (o *Walker) Run(source geom.Vec3, cycles int) {
	ph := &Photon{}
	for k := 0; k < cycles; k++ {
		entry := o.medium.LayerOf(source.Z)
		resetToInitial(ph, source, entry, o.rng.Next(), o.rng.Next())
		o.Launched++
		o.runCycle(ph)
		o.TotalPathLength += ph.PathLength
	}
	o.medium.MergePlanar(o.shadow)
}

// runCycle drives one photon from INITIAL through PROPAGATING to DEAD
func (o *Walker) runCycle(ph *Photon) {
	for ph.Alive {
		o.hop(ph)
	}
}

// hop executes one iteration of the hop/drop/spin/roulette loop. A single
// call may redraw silently (zero-length step on a boundary) without
// otherwise changing state
func (o *Walker) hop(ph *Photon) {

	// 1. set step size
	mua, mus := ph.CurLayer.Coefficients(ph.Pos)
	mut := mua + mus
	if mut <= 0 {
		// clear layer (e.g. an air buffer above the tissue): nothing
		// attenuates or scatters, so the photon flies straight to the
		// nearest boundary and resolves it there
		o.hopClear(ph)
		return
	}
	if ph.StepRemainder == 0 {
		u := o.rng.Next()
		ph.Step = -math.Log(u) / mut
	} else {
		ph.Step = ph.StepRemainder / mut
		ph.StepRemainder = 0
	}
	if ph.Step <= boundaryEps {
		// tie-break: step==0 exactly (p on boundary) is a no-op; redraw
		return
	}

	// 2. boundary check, against the current layer's local z-range and the
	// medium's global x,y extent (see DESIGN.md)
	axis, dist, hit := boundaryDistance(ph.Pos, ph.Dir, ph.Step,
		o.medium.XBound(), o.medium.YBound(), ph.CurLayer.DepthStart, ph.CurLayer.DepthEnd)
	if hit {
		ph.StepRemainder = (ph.Step - dist) * mut
		ph.Step = dist
	}

	// 3. propagate
	pPrev := ph.Pos
	ph.Pos = ph.Pos.Add(ph.Dir.Scale(ph.Step))
	ph.NSteps++
	ph.PathLength += o.stepPathLength(pPrev, ph.Pos, ph.Dir)
	if o.logger.PathsEnabled() {
		o.logger.WritePathPoint(ph.Pos.X, ph.Pos.Y, ph.Pos.Z)
	}

	// 4. absorb (drop)
	o.drop(ph)

	if hit {
		// 5. boundary resolution
		o.resolveBoundary(ph, axis, pPrev)
		return
	}

	// 6. scatter (spin)
	o.spin(ph)

	// 7. roulette
	o.roulette(ph)
}

// hopClear moves a photon through a layer with zero total attenuation: with
// nothing to interact with, the free path is unbounded and the photon goes
// straight to whichever boundary its direction reaches first
func (o *Walker) hopClear(ph *Photon) {
	span := o.medium.XBound() + o.medium.YBound() + o.medium.ZBound()
	axis, dist, hit := boundaryDistance(ph.Pos, ph.Dir, span,
		o.medium.XBound(), o.medium.YBound(), ph.CurLayer.DepthStart, ph.CurLayer.DepthEnd)
	if !hit {
		chk.Panic("walker: clear-layer hop found no boundary -- state invariant violated")
	}
	ph.Step = dist
	ph.StepRemainder = 0
	pPrev := ph.Pos
	ph.Pos = ph.Pos.Add(ph.Dir.Scale(dist))
	ph.NSteps++
	ph.PathLength += o.stepPathLength(pPrev, ph.Pos, ph.Dir)
	if o.logger.PathsEnabled() {
		o.logger.WritePathPoint(ph.Pos.X, ph.Pos.Y, ph.Pos.Z)
	}
	o.resolveBoundary(ph, axis, pPrev)
}

// boundaryDistance projects the full step and, if it would leave
// [0,xBound]x[0,yBound]x[zLo,zHi], returns the axis and distance to the
// nearest crossing (x>y>z tie-break on equal distances)
func boundaryDistance(pos, dir geom.Vec3, step, xBound, yBound, zLo, zHi float64) (axis int, dist float64, hit bool) {
	pNext := pos.Add(dir.Scale(step))

	type cand struct {
		axis int
		dist float64
	}
	var cands []cand

	consider := func(ax int, p0, d, lo, hi, pn float64) {
		if pn >= lo-boundaryEps && pn <= hi+boundaryEps {
			return
		}
		if d == 0 {
			return
		}
		target := lo
		if d > 0 {
			target = hi
		}
		dd := (target - p0) / d
		if dd > 0 {
			cands = append(cands, cand{ax, dd})
		}
	}
	consider(0, pos.X, dir.X, 0, xBound, pNext.X)
	consider(1, pos.Y, dir.Y, 0, yBound, pNext.Y)
	consider(2, pos.Z, dir.Z, zLo, zHi, pNext.Z)

	if len(cands) == 0 {
		return 0, 0, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.dist < best.dist-boundaryEps {
			best = c
		} else if math.Abs(c.dist-best.dist) <= boundaryEps && c.axis < best.axis {
			best = c
		}
	}
	return best.axis, best.dist, true
}

// stepPathLength returns the geometric length of (pPrev,pCur), adjusted by
// the local displacement field's projection onto dir when one is bound
func (o *Walker) stepPathLength(pPrev, pCur, dir geom.Vec3) float64 {
	geomLen := pCur.Sub(pPrev).Length()
	if !o.medium.HasDisplacement() {
		return geomLen
	}
	uPrev := o.medium.DisplacementAt(pPrev)
	uCur := o.medium.DisplacementAt(pCur)
	delta := uCur.Sub(uPrev)
	return geomLen + delta.Dot(dir)
}

// drop deposits the absorbed fraction of the packet weight at the current
// position, absorber-aware
func (o *Walker) drop(ph *Photon) {
	mua, mus := ph.CurLayer.Coefficients(ph.Pos)
	mut := mua + mus
	albedo := mus / mut
	dw := ph.Weight * (1 - albedo)
	ph.Weight -= dw

	if a := ph.CurLayer.LookupAbsorber(ph.Pos); a != nil {
		a.Deposit(dw)
		ph.Tagged = true
		return
	}
	ir := int(math.Abs(ph.Pos.Z) / o.medium.DR())
	if ir > o.medium.MaxBins() {
		ir = o.medium.MaxBins()
	}
	o.shadow[ir] += dw
}

// resolveBoundary decides what happens at a boundary hit. Internal layer
// crossings (a neighbor layer exists on the hit axis) always transmit,
// applying the deterministic specular-loss weight decrement and continuing
// the walk in the neighbor layer; true exits through the outer medium box
// run the probabilistic Fresnel reflect-or-transmit decision and either
// keep walking (reflected) or emit an exit record and die (transmitted).
// See DESIGN.md
func (o *Walker) resolveBoundary(ph *Photon, axis int, pPrev geom.Vec3) {

	var dirComp float64
	switch axis {
	case 0:
		dirComp = ph.Dir.X
	case 1:
		dirComp = ph.Dir.Y
	default:
		dirComp = ph.Dir.Z
	}
	cosThetaI := math.Abs(dirComp)

	n1 := ph.CurLayer.N

	var neighbor *layer.Layer
	if axis == 2 {
		if dirComp > 0 {
			neighbor = o.medium.LayerBelow(ph.CurLayer.DepthEnd)
		} else {
			neighbor = o.medium.LayerAbove(ph.CurLayer)
		}
	}

	if neighbor != nil {
		// internal layer crossing: deterministic specular loss, no death
		n2 := neighbor.N
		loss := geom.SpecularLoss(n1, n2)
		ph.Weight -= ph.Weight * loss
		ph.CurLayer = neighbor
		// per DESIGN.md: redraw the remaining step in the new layer rather
		// than rescale it by the old mut
		ph.StepRemainder = 0
		return
	}

	// true exit candidate: outside world is air, n2=1.0
	n2 := 1.0

	if cosThetaI >= 1-boundaryEps && n1 <= n2 {
		// perpendicular incidence with n1<=n2: no internal reflection,
		// full specular attenuation applied deterministically
		loss := geom.SpecularLoss(n1, n2)
		ph.Weight -= ph.Weight * loss
		o.handleExit(ph, pPrev)
		return
	}

	R := geom.Reflectance(cosThetaI, n1, n2)
	u := o.rng.Next()
	if R > u {
		// internal reflection: invert the hit-axis direction component,
		// remain in the same layer, keep the step remainder
		switch axis {
		case 0:
			ph.Dir.X = -ph.Dir.X
		case 1:
			ph.Dir.Y = -ph.Dir.Y
		default:
			ph.Dir.Z = -ph.Dir.Z
		}
		return
	}
	o.handleExit(ph, pPrev)
}

// handleExit checks every detector against the final segment, logs an exit
// record if one was crossed, and kills the photon
func (o *Walker) handleExit(ph *Photon, pPrev geom.Vec3) {
	if o.medium.DetectorsCrossed(pPrev, ph.Pos) > 0 {
		o.Detected++
		o.logger.WriteExit(logger.ExitRecord{
			Weight:     ph.Weight,
			Dx:         ph.Dir.X,
			Dy:         ph.Dir.Y,
			Dz:         ph.Dir.Z,
			PathLength: ph.PathLength,
			X:          ph.Pos.X,
			Y:          ph.Pos.Y,
			Z:          ph.Pos.Z,
		})
	}
	ph.Alive = false
}

// spin deflects the direction by a Henyey-Greenstein polar angle plus a
// uniform azimuthal rotation
func (o *Walker) spin(ph *Photon) {
	u1 := o.rng.Next()
	g := ph.CurLayer.G

	var cosTheta float64
	if g == 0 {
		cosTheta = 2*u1 - 1
	} else {
		tmp := (1 - g*g) / (1 - g + 2*g*u1)
		cosTheta = (1 + g*g - tmp*tmp) / (2 * g)
	}
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	psi := 2 * math.Pi * o.rng.Next()
	ph.Dir = rotate(ph.Dir, cosTheta, sinTheta, psi)
}

// rotate deflects d by polar angle theta (given as cos/sin) and azimuth psi,
// using the degenerate perpendicular formula when |dz| is within 1e-12 of 1
func rotate(d geom.Vec3, cosTheta, sinTheta, psi float64) geom.Vec3 {
	cosPsi, sinPsi := math.Cos(psi), math.Sin(psi)

	if math.Abs(d.Z) >= 1-boundaryEps {
		sign := 1.0
		if d.Z < 0 {
			sign = -1.0
		}
		return geom.New(sinTheta*cosPsi, sinTheta*sinPsi, cosTheta*sign)
	}

	denom := math.Sqrt(1 - d.Z*d.Z)
	nx := sinTheta*(d.X*d.Z*cosPsi-d.Y*sinPsi)/denom + d.X*cosTheta
	ny := sinTheta*(d.Y*d.Z*cosPsi+d.X*sinPsi)/denom + d.Y*cosTheta
	nz := -sinTheta*cosPsi*denom + d.Z*cosTheta
	return geom.New(nx, ny, nz)
}

// roulette stochastically terminates low-weight packets while preserving
// the ensemble energy
func (o *Walker) roulette(ph *Photon) {
	if ph.Weight >= rouletteThreshold {
		return
	}
	u := o.rng.Next()
	if u <= rouletteChance {
		ph.Weight /= rouletteChance
		return
	}
	ph.Alive = false
}
