// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/photonmc/config"
)

const tinyRunJSON = `{
	"x": 4, "y": 4, "z": 4,
	"radialSize": 2,
	"maxBins": 10,
	"layers": [
		{"depthStart": 0, "depthEnd": 4, "mua": 0.5, "mus": 50, "g": 0.9, "n": 1.0}
	],
	"source": [2, 2, 0],
	"maxPhotons": 40,
	"numThreads": 2,
	"timeIndexStart": 0,
	"timeIndexEnd": 0
}`

func Test_driverRunProducesFluenceFile(tst *testing.T) {

	chk.PrintTitle("driver run produces fluence and exit-aperture files")

	dir := tst.TempDir()
	cfgPath := filepath.Join(dir, "run.json")
	if err := os.WriteFile(cfgPath, []byte(tinyRunJSON), 0644); err != nil {
		tst.Fatal(err)
	}

	cfg, err := config.Read(cfgPath)
	if err != nil {
		tst.Fatal(err)
	}
	cfg.DirOut = dir

	d, err := New(cfg)
	if err != nil {
		tst.Fatal(err)
	}
	if err := d.Run(context.Background()); err != nil {
		tst.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, "fluences-0.txt")); err != nil {
		tst.Fatalf("expected fluences-0.txt to be written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "exit-aperture-0.txt")); err != nil {
		tst.Fatalf("expected exit-aperture-0.txt to be written: %v", err)
	}
}

func Test_driverRunRespectsCancelledContext(tst *testing.T) {

	chk.PrintTitle("driver run exits promptly on a cancelled context")

	dir := tst.TempDir()
	cfgPath := filepath.Join(dir, "run.json")
	if err := os.WriteFile(cfgPath, []byte(tinyRunJSON), 0644); err != nil {
		tst.Fatal(err)
	}
	cfg, err := config.Read(cfgPath)
	if err != nil {
		tst.Fatal(err)
	}
	cfg.DirOut = dir
	cfg.TimeIndexEnd = 5

	d, err := New(cfg)
	if err != nil {
		tst.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Run(ctx); err == nil {
		tst.Fatal("expected a cancelled context to stop the run before any time index runs")
	}
}
