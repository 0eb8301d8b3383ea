// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package config implements the run data read from a (.json) configuration
// file: medium geometry, per-layer optical properties, absorbers, detectors,
// acoustic field binding and the launch/thread/seed parameters
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/photonmc/absorber"
	"github.com/cpmech/photonmc/detector"
	"github.com/cpmech/photonmc/field"
	"github.com/cpmech/photonmc/geom"
	"github.com/cpmech/photonmc/layer"
	"github.com/cpmech/photonmc/medium"
)

// LayerData is one entry of the Layers list
type LayerData struct {
	DepthStart float64 `json:"depthStart"`
	DepthEnd   float64 `json:"depthEnd"`
	Mua        float64 `json:"mua"`
	Mus        float64 `json:"mus"`
	G          float64 `json:"g"`
	N          float64 `json:"n"`
}

// AbsorberData is one entry of the Absorbers list
type AbsorberData struct {
	Layer  int       `json:"layer"` // index into Layers
	Kind   string    `json:"kind"`  // "sphere" or "cylinder"
	Center []float64 `json:"center"`
	Radius float64   `json:"radius"`
	HalfH  float64   `json:"halfH"` // cylinder half-height, ignored for sphere
	Mua    float64   `json:"mua"`
	Mus    float64   `json:"mus"`
}

// DetectorData is one entry of the Detectors list
type DetectorData struct {
	Axis   string    `json:"axis"` // "xy", "xz" or "yz"
	Coord  float64   `json:"coord"`
	Center []float64 `json:"center"`
	Radius float64   `json:"radius"`
}

// Data holds the global run configuration: one JSON-tagged struct, loaded
// once, validated once
type Data struct {

	// global information
	Desc   string `json:"desc"`   // description of the run
	DirOut string `json:"dirout"` // directory for exit-aperture and fluence output

	// medium geometry
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	RadialSize float64 `json:"radialSize"`
	MaxBins    int     `json:"maxBins"`

	Layers    []LayerData    `json:"layers"`
	Absorbers []AbsorberData `json:"absorbers"`
	Detectors []DetectorData `json:"detectors"`

	// acoustic field
	FieldPathPrefix string `json:"fieldPathPrefix"` // "" disables field binding
	HasDisplacement bool   `json:"hasDisplacement"`
	TimeIndexStart  int    `json:"timeIndexStart"`
	TimeIndexEnd    int    `json:"timeIndexEnd"`
	FieldGridNx     int    `json:"fieldGridNx"`
	FieldGridNy     int    `json:"fieldGridNy"`
	FieldGridNz     int    `json:"fieldGridNz"`

	// launch
	Source     []float64 `json:"source"` // x,y,z
	MaxPhotons int       `json:"maxPhotons"`
	NumThreads int       `json:"numThreads"`
	Seed       int       `json:"seed"` // 0 seeds the entropy source from the wall clock

	// debug logging, "" disables a sink; these paths are used as given
	// (not joined with DirOut), with "-<t>" inserted before the extension
	PhotonPathsOut string `json:"photonPathsOut"`
	AbsorbersOut   string `json:"absorbersOut"`
	SummaryOut     string `json:"summaryOut"`
}

// SetDefault fills the fields a run can safely omit
func (o *Data) SetDefault() {
	if o.NumThreads <= 0 {
		o.NumThreads = 1
	}
	if o.MaxBins <= 0 {
		o.MaxBins = 100
	}
}

// Read loads and validates a run configuration from a JSON file
func Read(path string) (*Data, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("config: cannot read %q: %v", path, err)
	}
	var o Data
	o.SetDefault()
	if err := json.Unmarshal(b, &o); err != nil {
		return nil, chk.Err("config: cannot parse %q: %v", path, err)
	}
	if o.DirOut == "" {
		o.DirOut = "."
	}
	if err := os.MkdirAll(o.DirOut, 0777); err != nil {
		return nil, chk.Err("config: cannot create output directory %q: %v", o.DirOut, err)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (o *Data) validate() error {
	if len(o.Layers) == 0 {
		return chk.Err("config: at least one layer is required")
	}
	if o.RadialSize <= 0 {
		return chk.Err("config: radialSize must be > 0, got %v", o.RadialSize)
	}
	if o.MaxPhotons <= 0 {
		return chk.Err("config: maxPhotons must be > 0, got %v", o.MaxPhotons)
	}
	if len(o.Source) != 3 {
		return chk.Err("config: source must have 3 components, got %d", len(o.Source))
	}
	return nil
}

// BuildMedium realizes the geometric and optical configuration into a live
// Medium, ready for a Driver to Bind an acoustic frame to and hand out to
// Walkers
func (o *Data) BuildMedium() (*medium.Medium, error) {

	layers := make([]*layer.Layer, len(o.Layers))
	for i, ld := range o.Layers {
		layers[i] = layer.New(ld.DepthStart, ld.DepthEnd, ld.Mua, ld.Mus, ld.G, ld.N)
	}

	for _, ad := range o.Absorbers {
		if ad.Layer < 0 || ad.Layer >= len(layers) {
			return nil, chk.Err("config: absorber references out-of-range layer index %d", ad.Layer)
		}
		if len(ad.Center) != 3 {
			return nil, chk.Err("config: absorber center must have 3 components, got %d", len(ad.Center))
		}
		center := geom.New(ad.Center[0], ad.Center[1], ad.Center[2])
		var a *absorber.Absorber
		switch ad.Kind {
		case "sphere":
			a = absorber.NewSphere(center, ad.Radius, ad.Mua, ad.Mus)
		case "cylinder":
			a = absorber.NewCylinder(center, ad.Radius, ad.HalfH, ad.Mua, ad.Mus)
		default:
			return nil, chk.Err("config: unknown absorber kind %q", ad.Kind)
		}
		lyr := layers[ad.Layer]
		halfZ := ad.Radius
		if ad.Kind == "cylinder" {
			halfZ = ad.HalfH
		}
		if ad.Center[2]-halfZ < lyr.DepthStart || ad.Center[2]+halfZ > lyr.DepthEnd {
			return nil, chk.Err("config: absorber z-extent [%v,%v] does not lie inside layer %d [%v,%v]",
				ad.Center[2]-halfZ, ad.Center[2]+halfZ, ad.Layer, lyr.DepthStart, lyr.DepthEnd)
		}
		lyr.AddAbsorber(a)
	}

	m := medium.New(o.X, o.Y, o.Z, layers, o.RadialSize, o.MaxBins)

	if o.FieldPathPrefix != "" {
		pm := field.NewPressureMap(o.FieldGridNx, o.FieldGridNy, o.FieldGridNz, o.X, o.Y, o.Z)
		var dm *field.DisplacementMap
		if o.HasDisplacement {
			dm = field.NewDisplacementMap(o.FieldGridNx, o.FieldGridNy, o.FieldGridNz, o.X, o.Y, o.Z)
		}
		m.SetFields(pm, dm)
	}

	for _, dd := range o.Detectors {
		if len(dd.Center) != 3 {
			return nil, chk.Err("config: detector center must have 3 components, got %d", len(dd.Center))
		}
		var axis detector.Axis
		switch dd.Axis {
		case "xy":
			axis = detector.PlaneXY
		case "xz":
			axis = detector.PlaneXZ
		case "yz":
			axis = detector.PlaneYZ
		default:
			return nil, chk.Err("config: unknown detector axis %q", dd.Axis)
		}
		center := geom.New(dd.Center[0], dd.Center[1], dd.Center[2])
		m.AddDetector(detector.New(axis, dd.Coord, center, dd.Radius))
	}

	return m, nil
}

// SourcePoint returns the configured launch point as a Vec3
func (o *Data) SourcePoint() geom.Vec3 {
	return geom.New(o.Source[0], o.Source[1], o.Source[2])
}

// OutPath joins DirOut with a relative file name
func (o *Data) OutPath(name string) string {
	return filepath.Join(o.DirOut, name)
}
