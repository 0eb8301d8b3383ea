// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package absorber

import (
	"sync"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/photonmc/geom"
)

func Test_sphereContains(tst *testing.T) {

	chk.PrintTitle("sphere contains")

	a := NewSphere(geom.New(1, 1, 1), 0.5, 1.0, 1.0)
	if !a.Contains(geom.New(1, 1, 1.5)) {
		tst.Fatal("boundary point should be contained (closed)")
	}
	if a.Contains(geom.New(1, 1, 1.6)) {
		tst.Fatal("point outside radius should not be contained")
	}
}

func Test_cylinderContains(tst *testing.T) {

	chk.PrintTitle("cylinder contains")

	c := NewCylinder(geom.New(0, 0, 1), 0.3, 0.2, 1.0, 1.0)
	if !c.Contains(geom.New(0.2, 0, 1.1)) {
		tst.Fatal("point inside radius and height should be contained")
	}
	if c.Contains(geom.New(0, 0, 1.3)) {
		tst.Fatal("point beyond half-height should not be contained")
	}
}

func Test_depositIsLinearizable(tst *testing.T) {

	chk.PrintTitle("concurrent deposit sums correctly")

	a := NewSphere(geom.New(0, 0, 0), 1, 1, 1)
	var wg sync.WaitGroup
	n := 1000
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Deposit(0.001)
		}()
	}
	wg.Wait()
	chk.Float64(tst, "deposited", 1e-9, a.DepositedEnergy(), float64(n)*0.001)
}
