// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package detector

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/photonmc/geom"
)

func Test_crossedByWithinAperture(tst *testing.T) {

	chk.PrintTitle("detector crossed within aperture")

	d := New(PlaneXY, 2, geom.New(1, 1, 2), 1)
	hit := d.CrossedBy(geom.New(1, 1, 1.5), geom.New(1, 1, 2.5))
	if !hit {
		tst.Fatal("straight-through segment centered on the aperture should hit")
	}
}

func Test_missesOutsideRadius(tst *testing.T) {

	chk.PrintTitle("detector misses outside radius")

	d := New(PlaneXY, 2, geom.New(1, 1, 2), 0.1)
	hit := d.CrossedBy(geom.New(5, 5, 1.5), geom.New(5, 5, 2.5))
	if hit {
		tst.Fatal("segment far from center should miss")
	}
}

func Test_containsPointInAperture(tst *testing.T) {

	chk.PrintTitle("detector contains point in aperture")

	d := New(PlaneXY, 2, geom.New(1, 1, 2), 1)
	if !d.Contains(geom.New(1.5, 1, 2)) {
		tst.Fatal("point within the radius should be inside the aperture")
	}
	if d.Contains(geom.New(2.5, 1, 2)) {
		tst.Fatal("point beyond the radius should be outside the aperture")
	}
}

func Test_missesWhenNotCrossingPlane(tst *testing.T) {

	chk.PrintTitle("detector misses when segment doesn't reach plane")

	d := New(PlaneXY, 2, geom.New(1, 1, 2), 1)
	hit := d.CrossedBy(geom.New(1, 1, 0), geom.New(1, 1, 1))
	if hit {
		tst.Fatal("segment that never reaches the plane should miss")
	}
}
