// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package medium implements the ordered stack of Layers, the optional
// pressure/displacement fields, the Detectors, and the shared planar fluence
// accumulator — the aggregate root every photon walker reads from
package medium

import (
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/photonmc/detector"
	"github.com/cpmech/photonmc/field"
	"github.com/cpmech/photonmc/geom"
	"github.com/cpmech/photonmc/layer"
)

// Medium owns its Layers, Maps and Detectors exclusively. Walkers hold only
// a read-only reference to it
type Medium struct {
	X, Y, Z float64 // box extents [cm]

	layers    []*layer.Layer // sorted by DepthStart, contiguous
	detectors []*detector.Detector

	pressure     *field.PressureMap     // optional
	displacement *field.DisplacementMap // optional

	maxBins int
	dr      float64 // radial_size/MAX_BINS

	mu      sync.Mutex // guards Cplanar
	Cplanar []float64  // length maxBins+1; last bin saturates r>=radial_size
}

// New builds a Medium. layers must already be sorted by DepthStart and
// partition [0,z] contiguously; this is checked once here (a fatal
// configuration error otherwise)
func New(x, y, z float64, layers []*layer.Layer, radialSize float64, maxBins int) *Medium {
	if x <= 0 || y <= 0 || z <= 0 {
		chk.Panic("medium: box extents must be positive, got (%v,%v,%v)", x, y, z)
	}
	if radialSize <= 0 {
		chk.Panic("medium: radial_size must be > 0, got %v", radialSize)
	}
	if maxBins <= 0 {
		chk.Panic("medium: maxBins must be > 0, got %v", maxBins)
	}
	checkContiguous(layers, z)
	return &Medium{
		X: x, Y: y, Z: z,
		layers:  layers,
		maxBins: maxBins,
		dr:      radialSize / float64(maxBins),
		Cplanar: make([]float64, maxBins+1),
	}
}

func checkContiguous(layers []*layer.Layer, z float64) {
	if len(layers) == 0 {
		chk.Panic("medium: at least one layer is required")
	}
	if layers[0].DepthStart != 0 {
		chk.Panic("medium: first layer must start at depth 0, got %v", layers[0].DepthStart)
	}
	for i := 1; i < len(layers); i++ {
		if layers[i].DepthStart != layers[i-1].DepthEnd {
			chk.Panic("medium: layers are not contiguous between index %d (%v) and %d (%v)",
				i-1, layers[i-1].DepthEnd, i, layers[i].DepthStart)
		}
	}
	if layers[len(layers)-1].DepthEnd != z {
		chk.Panic("medium: last layer must end at z=%v, got %v", z, layers[len(layers)-1].DepthEnd)
	}
}

// SetFields binds optional pressure/displacement maps, built empty and
// populated later by Bind
func (o *Medium) SetFields(p *field.PressureMap, d *field.DisplacementMap) {
	o.pressure, o.displacement = p, d
}

// AddDetector registers a detector with the medium
func (o *Medium) AddDetector(d *detector.Detector) {
	o.detectors = append(o.detectors, d)
}

// Bind reloads the pressure/displacement frames for acoustic time index t.
// This is the only mutation the Driver performs on the Medium between
// walker joins; it must not be called while any walker is running
func (o *Medium) Bind(pathPrefix string, t int) error {
	if o.pressure != nil {
		if err := o.pressure.LoadFrame(pathPrefix+"pressure", t); err != nil {
			return err
		}
	}
	if o.displacement != nil {
		if err := o.displacement.LoadFrame(pathPrefix+"displacement", t); err != nil {
			return err
		}
	}
	return nil
}

// LayerOf returns the layer containing z; ties at a shared boundary resolve
// to the upper (shallower, lower-indexed) layer: layers
// are sorted by DepthStart ascending, so returning on the first match gives
// the shallower layer priority. Panics if no layer contains z: that is a
// state-invariant violation, not a configuration error, because z is
// expected to already lie in [0,Z]
func (o *Medium) LayerOf(z float64) *layer.Layer {
	for _, l := range o.layers {
		if l.ContainsDepth(z) {
			return l
		}
	}
	chk.Panic("medium: no layer found for z=%v -- state invariant violated", z)
	return nil
}

// indexOf returns the slice index of a layer reference, or -1
func (o *Medium) indexOf(cur *layer.Layer) int {
	for i, l := range o.layers {
		if l == cur {
			return i
		}
	}
	return -1
}

// LayerAbove returns the layer above current, or nil at the top
func (o *Medium) LayerAbove(current *layer.Layer) *layer.Layer {
	i := o.indexOf(current)
	if i <= 0 {
		return nil
	}
	return o.layers[i-1]
}

// LayerBelow returns the layer strictly below (deeper than) the one
// containing z, or nil at the bottom of the medium. Because LayerOf resolves
// a shared-boundary z to the shallower layer, calling LayerBelow(z) with z
// exactly at a boundary correctly returns the deeper neighbor
func (o *Medium) LayerBelow(z float64) *layer.Layer {
	cur := o.LayerOf(z)
	i := o.indexOf(cur)
	if i < 0 || i >= len(o.layers)-1 {
		return nil
	}
	return o.layers[i+1]
}

// XBound, YBound, ZBound return the medium's box extents
func (o *Medium) XBound() float64 { return o.X }
func (o *Medium) YBound() float64 { return o.Y }
func (o *Medium) ZBound() float64 { return o.Z }

// PressureAt samples the bound pressure field, or 0 if none is bound
func (o *Medium) PressureAt(p geom.Vec3) float64 {
	if o.pressure == nil {
		return 0
	}
	return o.pressure.SampleCart(p.X, p.Y, p.Z)
}

// DisplacementAt samples the bound displacement field, or the zero vector if
// none is bound
func (o *Medium) DisplacementAt(p geom.Vec3) geom.Vec3 {
	if o.displacement == nil {
		return geom.Vec3{}
	}
	ux, uy, uz := o.displacement.SampleCart(p.X, p.Y, p.Z)
	return geom.New(ux, uy, uz)
}

// HasDisplacement reports whether a displacement field is bound, which gates
// the path-length displacement correction in the walker
func (o *Medium) HasDisplacement() bool { return o.displacement != nil }

// DR returns the planar-bin width
func (o *Medium) DR() float64 { return o.dr }

// MaxBins returns MAX_BINS (len(Cplanar) == MaxBins()+1)
func (o *Medium) MaxBins() int { return o.maxBins }

// PlanarAccumulate adds energy into bin ir, thread-safely. ir must already be
// clamped to [0,maxBins] by the caller, matching the saturation-bin rule (the
// walker applies the same clamp to its shadow array, merged by MergePlanar)
func (o *Medium) PlanarAccumulate(ir int, energy float64) {
	o.mu.Lock()
	o.Cplanar[ir] += energy
	o.mu.Unlock()
}

// ResetPlanar zeroes the planar bins; the Driver calls this at the start of
// each acoustic time index so every fluence dump covers only its own photons
func (o *Medium) ResetPlanar() {
	o.mu.Lock()
	for i := range o.Cplanar {
		o.Cplanar[i] = 0
	}
	o.mu.Unlock()
}

// MergePlanar adds a per-walker shadow array into Cplanar under a single
// lock acquisition, keeping the walkers' hot loop contention-free
func (o *Medium) MergePlanar(shadow []float64) {
	o.mu.Lock()
	for i, v := range shadow {
		o.Cplanar[i] += v
	}
	o.mu.Unlock()
}

// DetectorsCrossed returns the number of detectors whose aperture the
// segment (pPrev,pCurr) crosses
func (o *Medium) DetectorsCrossed(pPrev, pCurr geom.Vec3) int {
	n := 0
	for _, d := range o.detectors {
		if d.CrossedBy(pPrev, pCurr) {
			n++
		}
	}
	return n
}

// Detectors returns the registered detectors, read-only
func (o *Medium) Detectors() []*detector.Detector { return o.detectors }

// Layers returns the sorted layer stack, read-only
func (o *Medium) Layers() []*layer.Layer { return o.layers }

// TopLayer returns the layer at z=0, whose µa normalizes the fluence dump
func (o *Medium) TopLayer() *layer.Layer { return o.layers[0] }
