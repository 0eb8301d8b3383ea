// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "math"

// CriticalAngle returns asin(n2/n1), the angle beyond which a ray travelling
// from a denser (n1) into a rarer (n2) medium undergoes total internal
// reflection. Callers must only use this when n2 < n1
func CriticalAngle(n1, n2 float64) float64 {
	return math.Asin(n2 / n1)
}

// Reflectance computes the Fresnel reflectance R for a ray hitting a dielectric
// interface at incidence angle cosThetaI (cosine of the angle from the
// interface normal), going from a medium of index n1 into one of index n2:
//
//	θi = acos(|axis_dir|), θt = asin(n1/n2·sinθi)
//	n2<n1 and θi>asin(n2/n1)  => R=1 (total internal reflection)
//	else R = ½·[sin²(θi-θt)/sin²(θi+θt) + tan²(θi-θt)/tan²(θi+θt)]
func Reflectance(cosThetaI, n1, n2 float64) float64 {
	if cosThetaI > 1 {
		cosThetaI = 1
	} else if cosThetaI < -1 {
		cosThetaI = -1
	}
	thetaI := math.Acos(math.Abs(cosThetaI))

	// perpendicular incidence: no angular dependence, reduces to the
	// normal-incidence specular formula
	if thetaI == 0 {
		r := (n1 - n2) / (n1 + n2)
		return r * r
	}

	// total internal reflection, including the exact-critical-angle
	// degeneracy
	if n2 < n1 {
		crit := CriticalAngle(n1, n2)
		if thetaI >= crit {
			return 1
		}
	}

	sinThetaT := n1 / n2 * math.Sin(thetaI)
	if sinThetaT > 1 {
		return 1
	}
	thetaT := math.Asin(sinThetaT)

	sinSum := math.Sin(thetaI + thetaT)
	sinDiff := math.Sin(thetaI - thetaT)
	tanSum := math.Tan(thetaI + thetaT)
	tanDiff := math.Tan(thetaI - thetaT)

	rs := (sinDiff * sinDiff) / (sinSum * sinSum)
	rp := (tanDiff * tanDiff) / (tanSum * tanSum)
	return 0.5 * (rs + rp)
}

// SpecularLoss returns the weight fraction lost to specular reflectance at a
// normal-incidence dielectric boundary between n1 and n2:
// w := w - ((n1-n2)/(n1+n2))²·w
func SpecularLoss(n1, n2 float64) float64 {
	r := (n1 - n2) / (n1 + n2)
	return r * r
}
