// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package driver implements the top-level run loop: for each acoustic time
// index, bind the field frame, launch NumThreads walkers concurrently, join
// them, then dump the accumulated planar fluence
package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"
	"github.com/cpmech/photonmc/config"
	"github.com/cpmech/photonmc/logger"
	"github.com/cpmech/photonmc/medium"
	"github.com/cpmech/photonmc/rng"
	"github.com/cpmech/photonmc/walker"
)

// minSeed is the Hybrid-Tausworthe generator's minimum admissible seed
// component; seeds are drawn from the coarse gosl/rnd entropy source (seeded
// in New from cfg.Seed or the wall clock) and biased up into the valid range
const minSeed = 128

// Driver owns the Medium and steps it across every acoustic time index in
// the configured run
type Driver struct {
	cfg *config.Data
	med *medium.Medium
}

// New builds a Driver from a loaded configuration, constructing the Medium
// once up front; Bind is called per time index inside Run. The coarse
// entropy source feeding per-walker seeds is initialized here: a non-zero
// cfg.Seed makes the whole run reproducible (with NumThreads=1), zero
// seeds it from the wall clock
func New(cfg *config.Data) (*Driver, error) {
	m, err := cfg.BuildMedium()
	if err != nil {
		return nil, err
	}
	rnd.Init(cfg.Seed)
	return &Driver{cfg: cfg, med: m}, nil
}

// Run steps the simulation across [TimeIndexStart, TimeIndexEnd], inclusive.
// ctx is checked between time indices only; a running time index always
// completes once its walkers are launched, so cancellation never truncates
// an in-flight set of walkers
func (o *Driver) Run(ctx context.Context) error {
	t0, t1 := o.cfg.TimeIndexStart, o.cfg.TimeIndexEnd
	if t1 < t0 {
		t1 = t0
	}
	for t := t0; t <= t1; t++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := o.runTimeIndex(t); err != nil {
			return err
		}
	}
	return nil
}

func (o *Driver) runTimeIndex(t int) error {

	io.Pf("photonmc: time index %d -- binding field frame\n", t)

	if o.cfg.FieldPathPrefix != "" {
		if err := o.med.Bind(o.cfg.FieldPathPrefix, t); err != nil {
			return err
		}
	}

	lg, err := logger.Open(
		o.cfg.OutPath(fmt.Sprintf("exit-aperture-%d.txt", t)),
		debugPath(o.cfg.PhotonPathsOut, t),
		debugPath(o.cfg.AbsorbersOut, t),
		debugPath(o.cfg.SummaryOut, t),
	)
	if err != nil {
		return err
	}

	o.med.ResetPlanar()

	workers := make([]*walker.Walker, o.cfg.NumThreads)
	photonsPerThread := o.cfg.MaxPhotons / o.cfg.NumThreads
	leftover := o.cfg.MaxPhotons % o.cfg.NumThreads
	source := o.cfg.SourcePoint()

	var wg sync.WaitGroup
	for i := 0; i < o.cfg.NumThreads; i++ {
		cycles := photonsPerThread
		if i < leftover {
			cycles++
		}
		w := walker.New(o.med, rng.New(drawSeed()), lg)
		workers[i] = w
		wg.Add(1)
		go func(w *walker.Walker, cycles int) {
			defer wg.Done()
			w.Run(source, cycles)
		}(w, cycles)
	}
	wg.Wait()

	launched, detected := 0, 0
	totalPath := 0.0
	for _, w := range workers {
		launched += w.Launched
		detected += w.Detected
		totalPath += w.TotalPathLength
	}
	mean := 0.0
	if launched > 0 {
		mean = totalPath / float64(launched)
	}
	lg.WriteSummaryLine(t, launched, detected, mean)

	for i, l := range o.med.Layers() {
		for j, a := range l.Absorbers() {
			lg.WriteAbsorberDump(io.Sf("layer%d-absorber%d", i, j), a.DepositedEnergy())
		}
	}

	if err := lg.Close(); err != nil {
		return err
	}

	return o.dumpFluences(t)
}

// debugPath returns "" (disabling the sink) when base is empty, otherwise a
// per-time-index file name under base's directory
func debugPath(base string, t int) string {
	if base == "" {
		return ""
	}
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]
	return fmt.Sprintf("%s-%d%s", stem, t, ext)
}

// drawSeed pulls four words from the coarse entropy source initialized in
// New, biased above the generator's minSeed floor; successive calls give
// every walker across every time index a distinct seed
func drawSeed() [4]uint32 {
	var s [4]uint32
	for i := range s {
		s[i] = uint32(rnd.Int(0, 1<<30)) + minSeed
	}
	return s
}

// dumpFluences writes fluences-<t>.txt: one line per radial bin,
// normalized by N_photons·dr·µa_of_top_layer
func (o *Driver) dumpFluences(t int) error {
	path := o.cfg.OutPath(fmt.Sprintf("fluences-%d.txt", t))
	return writeFluences(path, o.med.Cplanar, o.med.DR(), o.cfg.MaxPhotons, o.med.TopLayer().Mua)
}
