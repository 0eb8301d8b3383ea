// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layer

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/photonmc/absorber"
	"github.com/cpmech/photonmc/geom"
	"github.com/stretchr/testify/require"
)

func Test_containsDepthClosedEnds(tst *testing.T) {

	chk.PrintTitle("layer contains depth, closed at both ends")

	l := New(1, 2, 0.1, 7.3, 0.9, 1.33)
	require.True(tst, l.ContainsDepth(1))
	require.True(tst, l.ContainsDepth(2))
	require.True(tst, l.ContainsDepth(1.5))
	require.False(tst, l.ContainsDepth(0.999))
	require.False(tst, l.ContainsDepth(2.001))
}

func Test_coefficientsAreAbsorberAware(tst *testing.T) {

	chk.PrintTitle("layer coefficients switch inside an absorber")

	l := New(0, 2, 0.1, 7.3, 0.9, 1.33)
	l.AddAbsorber(absorber.NewSphere(geom.New(1, 1, 1), 0.3, 5.0, 2.0))

	mua, mus := l.Coefficients(geom.New(0.1, 0.1, 0.1))
	chk.Float64(tst, "background mua", 1e-15, mua, 0.1)
	chk.Float64(tst, "background mus", 1e-15, mus, 7.3)

	mua, mus = l.Coefficients(geom.New(1, 1, 1.2))
	chk.Float64(tst, "absorber mua", 1e-15, mua, 5.0)
	chk.Float64(tst, "absorber mus", 1e-15, mus, 2.0)

	chk.Float64(tst, "mut inside absorber", 1e-15, l.TotalAttenuation(geom.New(1, 1, 1)), 7.0)
	chk.Float64(tst, "mut outside absorber", 1e-15, l.TotalAttenuation(geom.New(0, 0, 0)), 7.4)
}

func Test_lookupAbsorberInsertionOrder(tst *testing.T) {

	chk.PrintTitle("layer absorber lookup ties resolve by insertion order")

	l := New(0, 2, 0.1, 7.3, 0.9, 1.33)
	first := absorber.NewSphere(geom.New(1, 1, 1), 0.5, 1.0, 0.0)
	second := absorber.NewSphere(geom.New(1, 1, 1), 0.5, 2.0, 0.0)
	l.AddAbsorber(first)
	l.AddAbsorber(second)

	got := l.LookupAbsorber(geom.New(1, 1, 1))
	require.Same(tst, first, got)

	require.Nil(tst, l.LookupAbsorber(geom.New(0, 0, 0)))
}

func Test_degenerateLayerPanics(tst *testing.T) {

	chk.PrintTitle("layer degenerate depth range panics")

	require.Panics(tst, func() { New(1, 1, 0.1, 7.3, 0.9, 1.33) })
	require.Panics(tst, func() { New(0, 1, 0.1, 7.3, 0.9, 0.5) })  // n < 1
	require.Panics(tst, func() { New(0, 1, 0.1, 7.3, 1.5, 1.33) }) // g out of [-1,1]
}
