package skyproj

import "math"

// AircraftProjector is the analytical counterpart to ProjectionService: it
// projects lon/lat/alt coordinates to and from a fixed-resolution output
// grid centered on a single observer (camera) position, using the geodesic
// primitives (C1) and angular/planar/pixel transforms (C2) directly, with
// no calibration map or interpolant involved (spec §4.6).
type AircraftProjector struct {
	observerLat, observerLon, observerAlt float64
	settings                              *AircraftProjectionSettings

	half float64
	step float64

	pool *Pool
}

// NewAircraftProjector constructs a projector centered on the given observer
// position, using settings (or DefaultAircraftProjectionSettings() if nil).
func NewAircraftProjector(observerLat, observerLon, observerAlt float64, settings *AircraftProjectionSettings) *AircraftProjector {
	if settings == nil {
		settings = DefaultAircraftProjectionSettings()
	}

	half := settings.SquareSize / 2
	step := settings.SquareSize / float64(settings.Resolution-1)

	return &AircraftProjector{
		observerLat: observerLat,
		observerLon: observerLon,
		observerAlt: observerAlt,
		settings:    settings,
		half:        half,
		step:        step,
		pool:        NewPool(),
	}
}

// Close releases the projector's worker pool.
func (p *AircraftProjector) Close() {
	p.pool.Close()
}

// LonLatToPixels projects a batch of target lon/lat/alt coordinates to
// fractional pixel coordinates (px, py) on the projector's output grid
// (spec §4.6's forward path: geodesic inverse -> angular -> planar ->
// pixels). lon, lat and alt must have equal length; ShapeError otherwise.
func (p *AircraftProjector) LonLatToPixels(lon, lat, alt []float64) (px, py []float64, err error) {
	n := len(lon)
	if len(lat) != n || len(alt) != n {
		return nil, nil, &ShapeError{
			Op:     "LonLatToPixels",
			Shapes: []int{len(lon), len(lat), len(alt)},
			Reason: "lon, lat and alt must have equal length",
		}
	}

	azimuthDeg := make([]float64, n)
	zenithDeg := make([]float64, n)

	chunked := n > 0
	if chunked {
		p.pool.RunChunks(n, func(start, end int) {
			for i := start; i < end; i++ {
				azimuthDeg[i], zenithDeg[i] = CalculateAzimuthZenith(
					lat[i], lon[i], alt[i],
					p.observerLat, p.observerLon, p.observerAlt,
				)
			}
		})
	}

	azimuthRad := make([]float64, n)
	zenithRad := make([]float64, n)
	for i := 0; i < n; i++ {
		azimuthRad[i] = degToRad(azimuthDeg[i])
		zenithRad[i] = degToRad(zenithDeg[i])
	}

	gx, gy := AngularToPlanar(azimuthRad, zenithRad, p.settings.CloudHeight, p.half)
	px, py = PlanarToPixels(gx, gy, p.step)
	return px, py, nil
}

// PixelsToLonLat is the inverse of LonLatToPixels: given fractional pixel
// coordinates and target altitude, recovers lon/lat (spec §4.6's inverse
// path: pixels -> planar -> angular -> geodesic direct). px, py and alt must
// have equal length; ShapeError otherwise.
func (p *AircraftProjector) PixelsToLonLat(px, py, alt []float64) (lon, lat []float64, err error) {
	n := len(px)
	if len(py) != n || len(alt) != n {
		return nil, nil, &ShapeError{
			Op:     "PixelsToLonLat",
			Shapes: []int{len(px), len(py), len(alt)},
			Reason: "px, py and alt must have equal length",
		}
	}

	gx, gy := PixelsToPlanar(px, py, p.step)
	azimuthRad, zenithRad := PlanarToAngular(gx, gy, p.settings.CloudHeight, p.half)

	lon = make([]float64, n)
	lat = make([]float64, n)

	if n > 0 {
		azimuthDeg := make([]float64, n)
		zenithDeg := make([]float64, n)
		for i := 0; i < n; i++ {
			azimuthDeg[i] = radToDeg(azimuthRad[i])
			zenithDeg[i] = radToDeg(zenithRad[i])
		}

		p.pool.RunChunks(n, func(start, end int) {
			for i := start; i < end; i++ {
				lat[i], lon[i] = CalculateLatitudeLongitude(
					azimuthDeg[i], zenithDeg[i], alt[i],
					p.observerLat, p.observerLon, p.observerAlt,
				)
			}
		})
	}

	return lon, lat, nil
}

func degToRad(d float64) float64 { return d * math.Pi / 180.0 }
func radToDeg(r float64) float64 { return r * 180.0 / math.Pi }
