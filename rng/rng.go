// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rng implements the hybrid-Tausworthe (L'Ecuyer) generator used to
// draw independent, per-walker uniform reals during the photon random walk
package rng

import (
	"github.com/cpmech/gosl/chk"
)

// minimum acceptable seed value; the Tausworthe steps degenerate for small states
const minSeed = 128

// Generator is a self-contained hybrid-Tausworthe generator. It carries no
// synchronization because a Generator is never shared across goroutines: each
// photon walker owns exactly one
type Generator struct {
	z1, z2, z3, z4 uint32
}

// New creates a Generator from four seed words, each of which must be ≥128.
// Seeds come from a coarse entropy source (see driver.drawSeed); a Generator
// never reseeds itself and never shares state with another Generator
func New(seeds [4]uint32) *Generator {
	for i, s := range seeds {
		if s < minSeed {
			chk.Panic("rng: seed[%d]=%d is below the minimum of %d", i, s, minSeed)
		}
	}
	return &Generator{z1: seeds[0], z2: seeds[1], z3: seeds[2], z4: seeds[3]}
}

// tausStep advances one Tausworthe component
func tausStep(z *uint32, s1, s2, s3 uint, m uint32) uint32 {
	b := (((*z << s1) ^ *z) >> s2)
	*z = ((*z & m) << s3) ^ b
	return *z
}

// lcgStep advances the linear-congruential component
func lcgStep(z *uint32, a, c uint32) uint32 {
	*z = a**z + c
	return *z
}

// Next draws the next uniform real, strictly inside (0,1)
func (o *Generator) Next() float64 {
	t1 := tausStep(&o.z1, 13, 19, 12, 4294967294)
	t2 := tausStep(&o.z2, 2, 25, 4, 4294967288)
	t3 := tausStep(&o.z3, 3, 11, 17, 4294967280)
	t4 := lcgStep(&o.z4, 1664525, 1013904223)
	combined := t1 ^ t2 ^ t3 ^ t4
	u := 2.3283064365387e-10 * float64(combined) // 2^-32
	// clamp away from the closed endpoints so callers can safely take
	// log(u) or 1-u without a domain error
	const eps = 1e-15
	if u <= 0 {
		u = eps
	} else if u >= 1 {
		u = 1 - eps
	}
	return u
}

// Seeds returns a snapshot of the current state words, mostly for tests
func (o *Generator) Seeds() [4]uint32 {
	return [4]uint32{o.z1, o.z2, o.z3, o.z4}
}
