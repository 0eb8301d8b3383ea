// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package logger implements the append-only, concurrency-safe sinks written
// to by photon walkers: exit records, debug photon-path traces, debug
// absorber dumps, and a per-time-index run summary
package logger

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"github.com/cpmech/gosl/chk"
)

// sink pairs a mutex with the single writer it guards. Sinks never share a
// mutex
type sink struct {
	mu sync.Mutex
	f  *os.File
	w  *bufio.Writer
}

func newSink(path string) (*sink, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, chk.Err("logger: cannot create %q: %v", path, err)
	}
	return &sink{f: f, w: bufio.NewWriter(f)}, nil
}

func (o *sink) writeLine(line string) {
	if o == nil {
		return
	}
	o.mu.Lock()
	o.w.WriteString(line)
	o.w.WriteByte('\n')
	o.mu.Unlock()
}

func (o *sink) close() error {
	if o == nil {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.w.Flush(); err != nil {
		return err
	}
	return o.f.Close()
}

// ExitRecord is one photon exit event, logged as
// "weight dx dy dz path_length x y z" with fixed 9-decimal precision
type ExitRecord struct {
	Weight     float64
	Dx, Dy, Dz float64
	PathLength float64
	X, Y, Z    float64
}

// Logger is the logging resource shared by every walker of one acoustic time
// index; each sink owns its own mutex and writer and is safe for concurrent
// use by many walker goroutines
type Logger struct {
	exitAperture *sink
	photonPaths  *sink // debug
	absorbers    *sink // debug
	summary      *sink // additive: per-time-index run summary
}

// Open creates a Logger for one acoustic time index. Any of the paths may be
// empty to disable that sink; writes to a disabled sink are dropped. The
// Driver always supplies exitAperturePath
func Open(exitAperturePath, photonPathsPath, absorbersPath, summaryPath string) (*Logger, error) {
	ea, err := newSink(exitAperturePath)
	if err != nil {
		return nil, err
	}
	pp, err := newSink(photonPathsPath)
	if err != nil {
		return nil, err
	}
	ab, err := newSink(absorbersPath)
	if err != nil {
		return nil, err
	}
	sm, err := newSink(summaryPath)
	if err != nil {
		return nil, err
	}
	return &Logger{exitAperture: ea, photonPaths: pp, absorbers: ab, summary: sm}, nil
}

// WriteExit appends one exit record, whitespace-separated, 9 decimal digits
func (o *Logger) WriteExit(r ExitRecord) {
	o.exitAperture.writeLine(fmt.Sprintf("%.9f %.9f %.9f %.9f %.9f %.9f %.9f %.9f",
		r.Weight, r.Dx, r.Dy, r.Dz, r.PathLength, r.X, r.Y, r.Z))
}

// PathsEnabled reports whether the photon-path debug sink is open, so
// walkers can skip formatting trace lines that would be dropped anyway
func (o *Logger) PathsEnabled() bool { return o.photonPaths != nil }

// WritePathPoint appends one (x y z) triple of a photon trajectory trace
func (o *Logger) WritePathPoint(x, y, z float64) {
	o.photonPaths.writeLine(fmt.Sprintf("%.9f %.9f %.9f", x, y, z))
}

// WriteAbsorberDump appends one debug line describing an absorber's state
func (o *Logger) WriteAbsorberDump(label string, depositedEnergy float64) {
	o.absorbers.writeLine(fmt.Sprintf("%s %.9f", label, depositedEnergy))
}

// WriteSummaryLine appends one per-time-index run summary line
func (o *Logger) WriteSummaryLine(timeIndex int, launched, detected int, meanPathLength float64) {
	o.summary.writeLine(fmt.Sprintf("%d %d %d %.9f", timeIndex, launched, detected, meanPathLength))
}

// Close flushes and closes every open sink
func (o *Logger) Close() error {
	for _, s := range []*sink{o.exitAperture, o.photonPaths, o.absorbers, o.summary} {
		if err := s.close(); err != nil {
			return err
		}
	}
	return nil
}
