// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package walker implements the hop/drop/spin/roulette photon random walk:
// the core algorithm of the simulator
package walker

import (
	"math"

	"github.com/cpmech/photonmc/geom"
	"github.com/cpmech/photonmc/layer"
)

// Photon is one packet's mutable state
type Photon struct {
	Pos    geom.Vec3
	Dir    geom.Vec3
	Weight float64
	Alive  bool
	Tagged bool

	Step          float64 // s
	StepRemainder float64 // r

	CurLayer *layer.Layer
	Source   geom.Vec3

	PathLength float64 // Σs, displacement-adjusted when a field is bound
	NSteps     int
}

// resetToInitial resets ph to a fresh INITIAL-state packet launched from
// source, with a freshly sampled direction, applying the one-time specular
// launch loss is NOT done here — entry loss only applies at the first
// refractive-index mismatch the photon meets (see walker.go): a source-side
// air buffer layer with n=1 carries no specular loss at launch since it
// matches the ambient index
func resetToInitial(ph *Photon, source geom.Vec3, entryLayer *layer.Layer, u1, u2 float64) {
	cosTheta := 2*u1 - 1
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	psi := 2 * math.Pi * u2
	raw := geom.New(sinTheta*math.Cos(psi), sinTheta*math.Sin(psi), 1.0)

	ph.Pos = source
	ph.Dir = raw.Normalize()
	ph.Weight = 1.0
	ph.Alive = true
	ph.Tagged = false
	ph.Step = 0
	ph.StepRemainder = 0
	ph.CurLayer = entryLayer
	ph.Source = source
	ph.PathLength = 0
	ph.NSteps = 0
}
