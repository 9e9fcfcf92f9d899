package skyproj

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// AngularToPlanar converts (azimuth, zenith) in radians to grid coordinates
// (gx, gy) in meters, given a cloud plane height h and the output grid's half
// extent. This fixes azimuth-0 (geodesic north) to the +gy direction and
// azimuth +90 degrees (east) to the +gx direction -- a wire-compatibility
// contract (spec §4.2) that must not be "simplified".
func AngularToPlanar(azimuth, zenith []float64, h, half float64) (gx, gy []float64) {
	n := len(azimuth)
	gx = make([]float64, n)
	gy = make([]float64, n)

	for i := 0; i < n; i++ {
		r := h * math.Tan(zenith[i])
		x := r * math.Cos(azimuth[i])
		y := r * math.Sin(azimuth[i])
		gx[i] = y + half
		gy[i] = half - x
	}
	return gx, gy
}

// PlanarToAngular is the inverse of AngularToPlanar: given grid coordinates
// (gx, gy) in meters, recovers (azimuth, zenith) in radians.
func PlanarToAngular(gx, gy []float64, h, half float64) (azimuth, zenith []float64) {
	n := len(gx)
	azimuth = make([]float64, n)
	zenith = make([]float64, n)

	for i := 0; i < n; i++ {
		xc := half - gy[i]
		yc := gx[i] - half
		r := math.Hypot(xc, yc)
		azimuth[i] = math.Atan2(yc, xc)
		zenith[i] = math.Atan(r / h)
	}
	return azimuth, zenith
}

// PlanarToPixels divides planar (meter) coordinates by step to produce
// fractional pixel coordinates.
func PlanarToPixels(gx, gy []float64, step float64) (px, py []float64) {
	n := len(gx)
	px = make([]float64, n)
	py = make([]float64, n)
	for i := 0; i < n; i++ {
		px[i] = gx[i] / step
		py[i] = gy[i] / step
	}
	return px, py
}

// PixelsToPlanar multiplies fractional pixel coordinates by step to recover
// planar (meter) coordinates; the inverse of PlanarToPixels.
func PixelsToPlanar(px, py []float64, step float64) (gx, gy []float64) {
	n := len(px)
	gx = make([]float64, n)
	gy = make([]float64, n)
	for i := 0; i < n; i++ {
		gx[i] = px[i] * step
		gy[i] = py[i] * step
	}
	return gx, gy
}

// legacyAzimuthAlign applies the frozen calibration-map azimuth alignment
// (spec §4.5 step 1): az <- ((az - 3*pi/2) mod 2*pi) - pi. This maps the
// mathematical atan2 orientation used when building the output-cell angular
// grid onto the orientation baked into existing calibration artifacts.
// This specific modular-arithmetic branch cut is a wire-compatibility
// contract and must not be algebraically simplified (spec §9).
func legacyAzimuthAlign(az float64) float64 {
	const twoPi = 2 * math.Pi
	shifted := math.Mod(az-3*math.Pi/2, twoPi)
	if shifted < 0 {
		shifted += twoPi
	}
	return shifted - math.Pi
}

// angularExtent reports the [min, max] angle present in a batch (azimuths or
// zeniths), or (NaN, NaN) for an empty batch, used by
// callers validating that a calibration's masked sample set is non-degenerate
// before triangulation is attempted (spec §4.3's "fewer than three
// non-collinear points" failure mode starts with this kind of extent check).
func angularExtent(values []float64) (min, max float64) {
	if len(values) == 0 {
		return math.NaN(), math.NaN()
	}
	return floats.Min(values), floats.Max(values)
}
