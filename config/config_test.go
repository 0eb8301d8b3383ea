// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

const sampleJSON = `{
	"desc": "two layer test run",
	"x": 10, "y": 10, "z": 10,
	"radialSize": 5,
	"maxBins": 50,
	"layers": [
		{"depthStart": 0, "depthEnd": 1, "mua": 0.1, "mus": 10, "g": 0.9, "n": 1.0},
		{"depthStart": 1, "depthEnd": 10, "mua": 0.2, "mus": 90, "g": 0.9, "n": 1.4}
	],
	"absorbers": [
		{"layer": 1, "kind": "sphere", "center": [5,5,5], "radius": 0.5, "mua": 1.0, "mus": 0.0}
	],
	"detectors": [
		{"axis": "xy", "coord": 0, "center": [5,5,0], "radius": 2}
	],
	"source": [5, 5, 0],
	"maxPhotons": 1000,
	"numThreads": 4
}`

func Test_readAndBuildMedium(tst *testing.T) {

	chk.PrintTitle("config read and build medium")

	dir := tst.TempDir()
	path := filepath.Join(dir, "run.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0644); err != nil {
		tst.Fatal(err)
	}

	d, err := Read(path)
	if err != nil {
		tst.Fatal(err)
	}
	if d.NumThreads != 4 {
		tst.Fatalf("expected numThreads=4, got %d", d.NumThreads)
	}

	m, err := d.BuildMedium()
	if err != nil {
		tst.Fatal(err)
	}
	if len(m.Layers()) != 2 {
		tst.Fatalf("expected 2 layers, got %d", len(m.Layers()))
	}
	if len(m.Layers()[1].Absorbers()) != 1 {
		tst.Fatal("expected absorber wired into layer index 1")
	}
	if len(m.Detectors()) != 1 {
		tst.Fatal("expected one detector wired")
	}
}

func Test_readMissingMaxPhotonsFails(tst *testing.T) {

	chk.PrintTitle("config missing maxPhotons fails validation")

	dir := tst.TempDir()
	path := filepath.Join(dir, "run.json")
	bad := `{"x":1,"y":1,"z":1,"radialSize":1,"layers":[{"depthStart":0,"depthEnd":1,"mua":0.1,"mus":1,"g":0,"n":1}],"source":[0,0,0]}`
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		tst.Fatal(err)
	}
	if _, err := Read(path); err == nil {
		tst.Fatal("expected validation error for missing maxPhotons")
	}
}
