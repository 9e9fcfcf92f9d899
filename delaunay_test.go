package skyproj

import "testing"

func TestBuildTriangulation_Square(t *testing.T) {
	points := []Point2{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
		{X: 0.5, Y: 0.5},
	}

	triangles, err := BuildTriangulation(points)
	if err != nil {
		t.Fatalf("BuildTriangulation returned error: %v", err)
	}
	if len(triangles) == 0 {
		t.Fatal("BuildTriangulation returned no triangles")
	}

	for i, tri := range triangles {
		for _, idx := range []int{tri.A, tri.B, tri.C} {
			if idx < 0 || idx >= len(points) {
				t.Errorf("triangle %d references out-of-range vertex %d", i, idx)
			}
		}
	}
}

func TestBuildTriangulation_TooFewPoints(t *testing.T) {
	_, err := BuildTriangulation([]Point2{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err == nil {
		t.Fatal("expected error for fewer than three points, got nil")
	}
	if _, ok := err.(*CalibrationError); !ok {
		t.Errorf("error type = %T, want *CalibrationError", err)
	}
}

func TestBuildTriangulation_Collinear(t *testing.T) {
	points := []Point2{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 2, Y: 0},
		{X: 3, Y: 0},
	}

	_, err := BuildTriangulation(points)
	if err == nil {
		t.Fatal("expected error for collinear points, got nil")
	}
	if _, ok := err.(*CalibrationError); !ok {
		t.Errorf("error type = %T, want *CalibrationError", err)
	}
}

func TestInCircumcircle_PointInside(t *testing.T) {
	a := Point2{X: 0, Y: 0}
	b := Point2{X: 1, Y: 0}
	c := Point2{X: 0, Y: 1}

	inside := Point2{X: 0.3, Y: 0.3}
	outside := Point2{X: 10, Y: 10}

	if !inCircumcircle(a, b, c, inside) {
		t.Errorf("expected %v to be inside circumcircle of (%v, %v, %v)", inside, a, b, c)
	}
	if inCircumcircle(a, b, c, outside) {
		t.Errorf("expected %v to be outside circumcircle of (%v, %v, %v)", outside, a, b, c)
	}
}
