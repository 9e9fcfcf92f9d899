package skyproj

import (
	"math"
	"sync"

	"github.com/samber/lo"
)

// ProjectionService remaps raw fisheye frames onto a regular output grid
// using calibration azimuth/zenith maps (spec §4.5). The interpolant and the
// output-cell angular grid are expensive derived state, built lazily and
// exactly once (spec §5, §9) behind a sync.Once guard so construction is
// safe under concurrent first use.
type ProjectionService struct {
	calibration *CalibrationData
	settings    *ProjectionSettings

	once        sync.Once
	buildErr    error
	interpolant *Interpolant
	cellAzimuth [][]float64
	cellZenith  [][]float64

	pool *Pool
}

// NewProjectionService constructs a service for the given calibration and
// settings. Derived state (interpolant, angular grid) is not built until the
// first call to Project or EnsureBuilt, per spec §5.
func NewProjectionService(calibration *CalibrationData, settings *ProjectionSettings) *ProjectionService {
	return &ProjectionService{
		calibration: calibration,
		settings:    settings,
		pool:        NewPool(),
	}
}

// Close releases the service's worker pool.
func (s *ProjectionService) Close() {
	s.pool.Close()
}

// EnsureBuilt forces the lazy build step to run if it has not already. It is
// idempotent and safe to call from multiple goroutines concurrently.
func (s *ProjectionService) EnsureBuilt() error {
	s.once.Do(s.build)
	return s.buildErr
}

func (s *ProjectionService) build() {
	resolution := s.settings.Resolution
	half := s.settings.SquareSize / 2
	step := s.settings.SquareSize / float64(resolution-1)
	cloudHeight := s.settings.CloudHeight

	azGrid := make([][]float64, resolution)
	zenGrid := make([][]float64, resolution)
	for i := 0; i < resolution; i++ {
		azGrid[i] = make([]float64, resolution)
		zenGrid[i] = make([]float64, resolution)
		y := -half + float64(i)*step
		for j := 0; j < resolution; j++ {
			x := -half + float64(j)*step
			r := math.Hypot(x, y)
			zenGrid[i][j] = math.Atan(r / cloudHeight)
			az := math.Atan2(y, x)
			azGrid[i][j] = legacyAzimuthAlign(az)
		}
	}
	s.cellAzimuth = azGrid
	s.cellZenith = zenGrid

	interpolant, err := buildCalibrationInterpolant(s.calibration, s.settings.MaxZenithRadians())
	if err != nil {
		s.buildErr = err
		return
	}
	s.interpolant = interpolant
}

// calibrationSample pairs a raw-pixel location with its calibrated angular
// coordinate, before masking.
type calibrationSample struct {
	az, zen  float64
	row, col int
}

// buildCalibrationInterpolant flattens the calibration maps (discarding
// entries whose zenith exceeds maxZenithRad or whose azimuth/zenith is NaN)
// and builds the irregular-to-regular interpolant over the surviving samples
// (spec §4.3's inputs). Masking follows the teacher's lo.Filter-based
// sample-rejection style in qa.go/nulls.go.
func buildCalibrationInterpolant(cal *CalibrationData, maxZenithRad float64) (*Interpolant, error) {
	height, width := cal.ImageSize[0], cal.ImageSize[1]

	all := make([]calibrationSample, 0, height*width)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			all = append(all, calibrationSample{
				az:  cal.AzimuthMap[row][col],
				zen: cal.ZenithMap[row][col],
				row: row,
				col: col,
			})
		}
	}

	masked := lo.Filter(all, func(s calibrationSample, _ int) bool {
		return !math.IsNaN(s.az) && !math.IsNaN(s.zen) && s.zen <= maxZenithRad
	})

	points := lo.Map(masked, func(s calibrationSample, _ int) Point2 {
		return Point2{X: s.az, Y: s.zen}
	})
	values := lo.Map(masked, func(s calibrationSample, _ int) [2]float64 {
		return [2]float64{float64(s.row), float64(s.col)}
	})

	azimuths := lo.Map(points, func(p Point2, _ int) float64 { return p.X })
	zeniths := lo.Map(points, func(p Point2, _ int) float64 { return p.Y })
	azMin, azMax := angularExtent(azimuths)
	zenMin, zenMax := angularExtent(zeniths)
	if azMin == azMax && zenMin == zenMax {
		return nil, &CalibrationError{Reason: "masked calibration samples span a single point; cannot triangulate"}
	}

	return NewInterpolant(points, values)
}

// Project remaps a raw fisheye image to the output grid. image must have
// shape matching calibration.image_size with a trailing channel dimension
// (C = 1 or 3). Returns a (resolution, resolution, C) grid of uint8 by
// default, or float64 if asUint8 is false.
//
// Out-of-hull or out-of-frame samples become zero, not an error (spec §7).
// Two calls on the same service and image yield bit-identical output.
func (s *ProjectionService) Project(image [][][]uint8, asUint8 bool) (uint8Grid [][][]uint8, float64Grid [][][]float64, err error) {
	if err := s.EnsureBuilt(); err != nil {
		return nil, nil, &ProjectionError{Op: "Project", Detail: err.Error()}
	}

	height := len(image)
	width := 0
	if height > 0 {
		width = len(image[0])
	}
	if height != s.calibration.ImageSize[0] || width != s.calibration.ImageSize[1] {
		return nil, nil, &ProjectionError{
			Op:     "Project",
			Detail: "input image shape does not match calibration.image_size",
		}
	}

	resolution := s.settings.Resolution
	channels := 0
	if height > 0 && width > 0 {
		channels = len(image[0][0])
	}

	floatOut := make([][][]float64, resolution)
	for i := range floatOut {
		floatOut[i] = make([][]float64, resolution)
	}

	s.pool.RunChunks(resolution, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < resolution; j++ {
				row, col := s.interpolant.Eval(s.cellAzimuth[i][j], s.cellZenith[i][j])
				sample := BilinearSample(image, row, col)
				if len(sample) == 0 {
					sample = make([]float64, channels)
				}
				floatOut[i][j] = sample
			}
		}
	})

	if !asUint8 {
		return nil, floatOut, nil
	}

	uint8Out := make([][][]uint8, resolution)
	for i := 0; i < resolution; i++ {
		uint8Out[i] = make([][]uint8, resolution)
		for j := 0; j < resolution; j++ {
			row := make([]uint8, channels)
			for ch := 0; ch < channels; ch++ {
				row[ch] = ClampToUint8(floatOut[i][j][ch])
			}
			uint8Out[i][j] = row
		}
	}

	return uint8Out, nil, nil
}
