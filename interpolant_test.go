package skyproj

import (
	"math"
	"testing"
)

func gridInterpolant(t *testing.T) *Interpolant {
	t.Helper()

	var points []Point2
	var values [][2]float64
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			az := float64(col) * 0.1
			zen := float64(row) * 0.1
			points = append(points, Point2{X: az, Y: zen})
			values = append(values, [2]float64{float64(row), float64(col)})
		}
	}

	interp, err := NewInterpolant(points, values)
	if err != nil {
		t.Fatalf("NewInterpolant returned error: %v", err)
	}
	return interp
}

func TestInterpolant_EvalAtSample(t *testing.T) {
	interp := gridInterpolant(t)

	row, col := interp.Eval(0.2, 0.2)
	if math.Abs(row-2) > 1e-6 || math.Abs(col-2) > 1e-6 {
		t.Errorf("Eval at known sample = (%v, %v), want (2, 2)", row, col)
	}
}

func TestInterpolant_EvalOutsideHull(t *testing.T) {
	interp := gridInterpolant(t)

	row, col := interp.Eval(100, 100)
	if !math.IsNaN(row) || !math.IsNaN(col) {
		t.Errorf("Eval outside hull = (%v, %v), want (NaN, NaN)", row, col)
	}
}

func TestInterpolant_EvalNaNQuery(t *testing.T) {
	interp := gridInterpolant(t)

	row, col := interp.Eval(math.NaN(), 0.2)
	if !math.IsNaN(row) || !math.IsNaN(col) {
		t.Errorf("Eval with NaN input = (%v, %v), want (NaN, NaN)", row, col)
	}
}

func TestInterpolant_EvalBatch(t *testing.T) {
	interp := gridInterpolant(t)

	rows, cols := interp.EvalBatch([]float64{0.1, 0.3}, []float64{0.1, 0.3})
	if math.Abs(rows[0]-1) > 1e-6 || math.Abs(cols[0]-1) > 1e-6 {
		t.Errorf("EvalBatch[0] = (%v, %v), want (1, 1)", rows[0], cols[0])
	}
	if math.Abs(rows[1]-3) > 1e-6 || math.Abs(cols[1]-3) > 1e-6 {
		t.Errorf("EvalBatch[1] = (%v, %v), want (3, 3)", rows[1], cols[1])
	}
}

func TestNewInterpolant_MismatchedLengths(t *testing.T) {
	_, err := NewInterpolant([]Point2{{X: 0, Y: 0}}, [][2]float64{{0, 0}, {1, 1}})
	if err == nil {
		t.Fatal("expected error for mismatched point/value counts, got nil")
	}
}
