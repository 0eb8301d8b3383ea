// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package field implements the read-only 3-D pressure and displacement grids
// sampled by the photon walker between acoustic time-index loads
package field

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Grid is the shape common to every fixed-size regular 3-D field, with
// physical extent equal to the medium box
type Grid struct {
	Nx, Ny, Nz       int
	Xext, Yext, Zext float64 // physical extent along each axis [cm]
}

func (g Grid) spacing() (dx, dy, dz float64) {
	dx = g.Xext / float64(g.Nx)
	dy = g.Yext / float64(g.Ny)
	dz = g.Zext / float64(g.Nz)
	return
}

// cellIndex maps a cartesian point to a clamped (ix,iy,iz) triple:
// index = floor(x/Δ); out-of-range queries clamp to the nearest cell
func (g Grid) cellIndex(x, y, z float64) (ix, iy, iz int) {
	dx, dy, dz := g.spacing()
	ix = clampIdx(int(x/dx), g.Nx)
	iy = clampIdx(int(y/dy), g.Ny)
	iz = clampIdx(int(z/dz), g.Nz)
	return
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (g Grid) flatIndex(ix, iy, iz int) int {
	// x-fastest, then y, then z
	return ix + g.Nx*(iy+g.Ny*iz)
}

func (g Grid) size() int { return g.Nx * g.Ny * g.Nz }

// PressureMap is a read-only scalar field sampled concurrently by many
// walkers between load calls; a load replaces the whole backing slice under
// a mutex so readers never observe a half-written frame
type PressureMap struct {
	Grid
	mu   sync.RWMutex
	data []float64
}

// NewPressureMap allocates an empty grid of the given physical extent
func NewPressureMap(nx, ny, nz int, xext, yext, zext float64) *PressureMap {
	g := Grid{Nx: nx, Ny: ny, Nz: nz, Xext: xext, Yext: yext, Zext: zext}
	return &PressureMap{Grid: g, data: make([]float64, g.size())}
}

// LoadFrame replaces the grid contents with the frame stored at
// <pathPrefix><timeIndex>.txt: Nx·Ny·Nz whitespace-separated doubles in
// x-fastest, then y, then z order
func (o *PressureMap) LoadFrame(pathPrefix string, timeIndex int) error {
	path := fmt.Sprintf("%s%d.txt", pathPrefix, timeIndex)
	vals, err := readFlatDoubles(path, o.size())
	if err != nil {
		return chk.Err("field: cannot load pressure frame %q: %v", path, err)
	}
	o.mu.Lock()
	o.data = vals
	o.mu.Unlock()
	return nil
}

// SampleCart returns the scalar value at the cell containing (x,y,z),
// clamping out-of-range queries to the nearest cell
func (o *PressureMap) SampleCart(x, y, z float64) float64 {
	ix, iy, iz := o.cellIndex(x, y, z)
	o.mu.RLock()
	v := o.data[o.flatIndex(ix, iy, iz)]
	o.mu.RUnlock()
	return v
}

// DisplacementMap is a read-only vector field, one (ux,uy,uz) triple per cell
type DisplacementMap struct {
	Grid
	mu sync.RWMutex
	ux []float64
	uy []float64
	uz []float64
}

// NewDisplacementMap allocates an empty vector grid of the given extent
func NewDisplacementMap(nx, ny, nz int, xext, yext, zext float64) *DisplacementMap {
	g := Grid{Nx: nx, Ny: ny, Nz: nz, Xext: xext, Yext: yext, Zext: zext}
	n := g.size()
	return &DisplacementMap{Grid: g, ux: make([]float64, n), uy: make([]float64, n), uz: make([]float64, n)}
}

// LoadFrame replaces the grid contents from three column files
// "<pathPrefix>ux<timeIndex>.txt", "...uy...", "...uz..."
func (o *DisplacementMap) LoadFrame(pathPrefix string, timeIndex int) error {
	n := o.size()
	ux, err := readFlatDoubles(fmt.Sprintf("%sux%d.txt", pathPrefix, timeIndex), n)
	if err != nil {
		return chk.Err("field: cannot load displacement-x frame: %v", err)
	}
	uy, err := readFlatDoubles(fmt.Sprintf("%suy%d.txt", pathPrefix, timeIndex), n)
	if err != nil {
		return chk.Err("field: cannot load displacement-y frame: %v", err)
	}
	uz, err := readFlatDoubles(fmt.Sprintf("%suz%d.txt", pathPrefix, timeIndex), n)
	if err != nil {
		return chk.Err("field: cannot load displacement-z frame: %v", err)
	}
	o.mu.Lock()
	o.ux, o.uy, o.uz = ux, uy, uz
	o.mu.Unlock()
	return nil
}

// SampleCart returns the (ux,uy,uz) displacement at the cell containing
// (x,y,z) as three scalars, to keep this package independent of geom
func (o *DisplacementMap) SampleCart(x, y, z float64) (ux, uy, uz float64) {
	ix, iy, iz := o.cellIndex(x, y, z)
	i := o.flatIndex(ix, iy, iz)
	o.mu.RLock()
	ux, uy, uz = o.ux[i], o.uy[i], o.uz[i]
	o.mu.RUnlock()
	return
}

// readFlatDoubles reads exactly want whitespace-separated doubles from path;
// a short or malformed file fails the load
func readFlatDoubles(path string, want int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	vals := make([]float64, 0, want)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		v := io.Atof(sc.Text())
		vals = append(vals, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(vals) != want {
		return nil, fmt.Errorf("expected %d values, found %d", want, len(vals))
	}
	return vals, nil
}
