// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rng

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_range01(tst *testing.T) {

	chk.PrintTitle("rng range")

	gen := New([4]uint32{200, 201, 202, 203})
	for i := 0; i < 1000000; i++ {
		u := gen.Next()
		if u <= 0 || u >= 1 {
			tst.Fatalf("draw %d out of (0,1): %v", i, u)
		}
	}
}

func Test_determinism(tst *testing.T) {

	chk.PrintTitle("rng determinism")

	seeds := [4]uint32{200, 201, 202, 203}
	a := New(seeds)
	b := New(seeds)
	for i := 0; i < 1000; i++ {
		ua, ub := a.Next(), b.Next()
		if ua != ub {
			tst.Fatalf("draw %d diverged: %v vs %v", i, ua, ub)
		}
	}
}

func Test_lowSeedPanics(tst *testing.T) {

	chk.PrintTitle("rng low seed panics")

	defer func() {
		if r := recover(); r == nil {
			tst.Fatal("expected panic for seed below minimum")
		}
	}()
	New([4]uint32{1, 201, 202, 203})
}
