package skyproj

import (
	"math"
	"testing"
)

func TestAngularToPlanar_PlanarToAngular_RoundTrip(t *testing.T) {
	azimuth := []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
	zenith := []float64{0.1, 0.2, 0.3, 0.4}
	h, half := 10000.0, 37500.0

	gx, gy := AngularToPlanar(azimuth, zenith, h, half)
	gotAz, gotZen := PlanarToAngular(gx, gy, h, half)

	for i := range azimuth {
		if math.Abs(gotZen[i]-zenith[i]) > 1e-9 {
			t.Errorf("index %d: zenith round-trip = %v, want %v", i, gotZen[i], zenith[i])
		}
		if math.Abs(normalizeAngle(gotAz[i]-azimuth[i])) > 1e-9 {
			t.Errorf("index %d: azimuth round-trip = %v, want %v", i, gotAz[i], azimuth[i])
		}
	}
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func TestAngularToPlanar_ZeroZenithIsCenter(t *testing.T) {
	gx, gy := AngularToPlanar([]float64{0}, []float64{0}, 10000, 37500)
	if gx[0] != 37500 || gy[0] != 37500 {
		t.Errorf("zero-zenith point = (%v, %v), want (37500, 37500)", gx[0], gy[0])
	}
}

func TestPlanarToPixels_PixelsToPlanar_RoundTrip(t *testing.T) {
	gx := []float64{0, 1000, 2000.5}
	gy := []float64{0, 500, 1500.25}
	step := 73.26

	px, py := PlanarToPixels(gx, gy, step)
	gotGx, gotGy := PixelsToPlanar(px, py, step)

	for i := range gx {
		if math.Abs(gotGx[i]-gx[i]) > 1e-9 {
			t.Errorf("index %d: gx round-trip = %v, want %v", i, gotGx[i], gx[i])
		}
		if math.Abs(gotGy[i]-gy[i]) > 1e-9 {
			t.Errorf("index %d: gy round-trip = %v, want %v", i, gotGy[i], gy[i])
		}
	}
}

func TestLegacyAzimuthAlign_NotSimplified(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, -math.Pi / 2},
		{math.Pi / 2, 0},
		{math.Pi, math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi},
	}

	for _, c := range cases {
		got := legacyAzimuthAlign(c.in)
		if math.Abs(normalizeAngle(got-c.want)) > 1e-9 {
			t.Errorf("legacyAzimuthAlign(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAngularExtent(t *testing.T) {
	min, max := angularExtent([]float64{0.3, 0.1, 0.5, 0.2})
	if min != 0.1 || max != 0.5 {
		t.Errorf("angularExtent = (%v, %v), want (0.1, 0.5)", min, max)
	}
}

func TestAngularExtent_Empty(t *testing.T) {
	min, max := angularExtent(nil)
	if !math.IsNaN(min) || !math.IsNaN(max) {
		t.Errorf("angularExtent(nil) = (%v, %v), want (NaN, NaN)", min, max)
	}
}
