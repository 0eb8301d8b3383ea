// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logger

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_concurrentExitWrites(tst *testing.T) {

	chk.PrintTitle("logger concurrent exit writes")

	dir := tst.TempDir()
	path := filepath.Join(dir, "exit-aperture-0.txt")
	lg, err := Open(path, "", "", "")
	if err != nil {
		tst.Fatal(err)
	}

	n := 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lg.WriteExit(ExitRecord{Weight: 0.5})
		}()
	}
	wg.Wait()
	if err := lg.Close(); err != nil {
		tst.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		tst.Fatal(err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	count := 0
	for sc.Scan() {
		count++
	}
	if count != n {
		tst.Fatalf("expected %d lines, got %d", n, count)
	}
}

func Test_debugSinksOptional(tst *testing.T) {

	chk.PrintTitle("logger debug sinks optional")

	dir := tst.TempDir()
	lg, err := Open(filepath.Join(dir, "exit-aperture-0.txt"), "", "", "")
	if err != nil {
		tst.Fatal(err)
	}
	// writes to unopened debug sinks must be safe no-ops
	lg.WritePathPoint(1, 2, 3)
	lg.WriteAbsorberDump("a0", 0.1)
	if err := lg.Close(); err != nil {
		tst.Fatal(err)
	}
}
