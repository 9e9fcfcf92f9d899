package skyproj

import "math"

// CalibrationData holds the per-raw-pixel azimuth/zenith calibration maps
// for a physical fisheye camera. Both maps are in radians; missing entries
// are encoded as NaN. CalibrationData is immutable once constructed.
type CalibrationData struct {
	AzimuthMap [][]float64
	ZenithMap  [][]float64
	ImageSize  [2]int // height, width
}

// NewCalibrationData validates and constructs a CalibrationData record.
// Both maps must share the same shape, and that shape must equal image_size.
func NewCalibrationData(azimuthMap, zenithMap [][]float64) (*CalibrationData, error) {
	height := len(azimuthMap)
	if height == 0 || len(zenithMap) != height {
		return nil, &CalibrationError{Reason: "azimuth_map and zenith_map must share the same non-zero shape"}
	}

	width := len(azimuthMap[0])
	for row := 0; row < height; row++ {
		if len(azimuthMap[row]) != width || len(zenithMap[row]) != width {
			return nil, &CalibrationError{Reason: "azimuth_map and zenith_map rows must all have equal width"}
		}
	}

	return &CalibrationData{
		AzimuthMap: azimuthMap,
		ZenithMap:  zenithMap,
		ImageSize:  [2]int{height, width},
	}, nil
}

// ProjectionSettings controls the image projection (ProjectionService): the
// output grid resolution, the physical extent it covers, the assumed cloud
// altitude, and the zenith cutoff beyond which calibration entries are ignored.
type ProjectionSettings struct {
	Resolution     int     // output grid is Resolution x Resolution
	SquareSize     float64 // meters, physical extent of the output grid
	CloudHeight    float64 // meters, altitude of the projection plane above the observer
	MaxZenithAngle float64 // degrees in (0, 90]
}

// NewProjectionSettings validates field ranges per the documented contract:
// resolution >= 2, square_size > 0, cloud_height > 0, 0 < max_zenith_angle <= 90.
func NewProjectionSettings(resolution int, squareSize, cloudHeight, maxZenithAngle float64) (*ProjectionSettings, error) {
	if resolution < 2 {
		return nil, &ConfigurationError{Field: "resolution", Value: resolution, Reason: "must be >= 2"}
	}
	if squareSize <= 0 {
		return nil, &ConfigurationError{Field: "square_size", Value: squareSize, Reason: "must be > 0"}
	}
	if cloudHeight <= 0 {
		return nil, &ConfigurationError{Field: "cloud_height", Value: cloudHeight, Reason: "must be > 0"}
	}
	if maxZenithAngle <= 0 || maxZenithAngle > 90 {
		return nil, &ConfigurationError{Field: "max_zenith_angle", Value: maxZenithAngle, Reason: "must be in (0, 90]"}
	}

	return &ProjectionSettings{
		Resolution:     resolution,
		SquareSize:     squareSize,
		CloudHeight:    cloudHeight,
		MaxZenithAngle: maxZenithAngle,
	}, nil
}

// MaxZenithRadians is a convenience conversion used when masking calibration
// samples (spec §4.3 works in radians).
func (s *ProjectionSettings) MaxZenithRadians() float64 {
	return s.MaxZenithAngle * math.Pi / 180.0
}

// AircraftProjectionSettings controls the analytical projector (AircraftProjector).
type AircraftProjectionSettings struct {
	Resolution  int     // [64, 8192]
	SquareSize  float64 // meters, >= 1000
	CloudHeight float64 // meters, >= 100
}

// DefaultAircraftProjectionSettings mirrors the defaults used throughout the
// worked examples in spec.md §8 (resolution=1024, square_size=75000, cloud_height=10000).
func DefaultAircraftProjectionSettings() *AircraftProjectionSettings {
	s, _ := NewAircraftProjectionSettings(1024, 75000, 10000)
	return s
}

// NewAircraftProjectionSettings validates: 64 <= resolution <= 8192,
// square_size >= 1000, cloud_height >= 100.
func NewAircraftProjectionSettings(resolution int, squareSize, cloudHeight float64) (*AircraftProjectionSettings, error) {
	if resolution < 64 || resolution > 8192 {
		return nil, &ConfigurationError{Field: "resolution", Value: resolution, Reason: "must be in [64, 8192]"}
	}
	if squareSize < 1000 {
		return nil, &ConfigurationError{Field: "square_size", Value: squareSize, Reason: "must be >= 1000"}
	}
	if cloudHeight < 100 {
		return nil, &ConfigurationError{Field: "cloud_height", Value: cloudHeight, Reason: "must be >= 100"}
	}

	return &AircraftProjectionSettings{
		Resolution:  resolution,
		SquareSize:  squareSize,
		CloudHeight: cloudHeight,
	}, nil
}
