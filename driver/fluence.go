// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// writeFluences writes one line per radial bin: "r_center[cm] planar_fluence[1/cm^2]",
// cplanar has length maxBins+1; the last bin is the r>=radialSize
// saturation bin and is reported at its left edge rather than a bin center,
// since it has no finite width
func writeFluences(path string, cplanar []float64, dr float64, nPhotons int, muaTop float64) error {
	if nPhotons <= 0 || muaTop <= 0 {
		return chk.Err("driver: cannot normalize fluences with nPhotons=%d muaTop=%v", nPhotons, muaTop)
	}

	f, err := os.Create(path)
	if err != nil {
		return chk.Err("driver: cannot create %q: %v", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	nRegular := len(cplanar) - 1
	edges := utl.LinSpace(0, float64(nRegular)*dr, nRegular+1)
	norm := float64(nPhotons) * dr * muaTop

	for i := 0; i < nRegular; i++ {
		rCenter := 0.5 * (edges[i] + edges[i+1])
		fluence := cplanar[i] / norm
		fmt.Fprintf(w, "%.5f %.3e\n", rCenter, fluence)
	}
	// overflow bin: report at its left edge (the configured radial_size)
	fmt.Fprintf(w, "%.5f %.3e\n", edges[nRegular], cplanar[nRegular]/norm)

	return w.Flush()
}
