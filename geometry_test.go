package skyproj

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTransformGeometry_EmptyPassthrough(t *testing.T) {
	empty := Geometry{Kind: GeometryMultiPoint}

	got, err := TransformGeometry(empty, func(c1, c2, c3 []float64) ([]float64, []float64, error) {
		t.Fatal("transform function should not be called on an empty geometry")
		return nil, nil, nil
	})
	if err != nil {
		t.Fatalf("TransformGeometry returned error: %v", err)
	}
	if diff := cmp.Diff(empty, got); diff != "" {
		t.Errorf("empty geometry was not passed through unchanged (-want +got):\n%s", diff)
	}
}

func TestTransformGeometry_MissingAltitude(t *testing.T) {
	g := Geometry{Kind: GeometryPoint, Point: Vertex{C1: 2.3, C2: 48.5, C3: math.NaN()}}

	_, err := TransformGeometry(g, func(c1, c2, c3 []float64) ([]float64, []float64, error) {
		return c1, c2, nil
	})
	if err == nil {
		t.Fatal("expected error for missing altitude, got nil")
	}
	if _, ok := err.(*ShapeError); !ok {
		t.Errorf("error type = %T, want *ShapeError", err)
	}
}

func TestTransformGeometry_LineStringIdentity(t *testing.T) {
	g := Geometry{
		Kind: GeometryLineString,
		Line: Ring{
			{C1: 2.30, C2: 48.50, C3: 10000},
			{C1: 2.35, C2: 48.55, C3: 10000},
			{C1: 2.40, C2: 48.60, C3: 10000},
		},
	}

	identity := func(c1, c2, c3 []float64) ([]float64, []float64, error) {
		return c1, c2, nil
	}

	got, err := TransformGeometry(g, identity)
	if err != nil {
		t.Fatalf("TransformGeometry returned error: %v", err)
	}
	if diff := cmp.Diff(g, got); diff != "" {
		t.Errorf("identity transform changed the geometry (-want +got):\n%s", diff)
	}
}

func TestTransformGeometry_PolygonWithHoles(t *testing.T) {
	shell := Ring{
		{C1: 0, C2: 0, C3: 0}, {C1: 10, C2: 0, C3: 0}, {C1: 10, C2: 10, C3: 0}, {C1: 0, C2: 10, C3: 0},
	}
	hole := Ring{
		{C1: 3, C2: 3, C3: 0}, {C1: 6, C2: 3, C3: 0}, {C1: 6, C2: 6, C3: 0},
	}
	g := Geometry{Kind: GeometryPolygon, Rings: []Ring{shell, hole}}

	scaleByTwo := func(c1, c2, c3 []float64) ([]float64, []float64, error) {
		out1 := make([]float64, len(c1))
		out2 := make([]float64, len(c2))
		for i := range c1 {
			out1[i] = c1[i] * 2
			out2[i] = c2[i] * 2
		}
		return out1, out2, nil
	}

	got, err := TransformGeometry(g, scaleByTwo)
	if err != nil {
		t.Fatalf("TransformGeometry returned error: %v", err)
	}
	if got.Kind != GeometryPolygon || len(got.Rings) != 2 {
		t.Fatalf("unexpected result shape: %+v", got)
	}
	if got.Rings[1][0].C1 != 6 || got.Rings[1][0].C2 != 6 {
		t.Errorf("hole vertex not transformed: got %+v, want (6, 6, 0)", got.Rings[1][0])
	}
	if got.Rings[0][0].C3 != 0 {
		t.Errorf("altitude was not passed through unchanged: got %v, want 0", got.Rings[0][0].C3)
	}
}

func TestProjectGeometry_ProjectGeometryBack_RoundTrip(t *testing.T) {
	p := NewAircraftProjector(48.5, 2.3, 0, nil)
	defer p.Close()

	g := Geometry{
		Kind: GeometryLineString,
		Line: Ring{
			{C1: 2.30, C2: 48.50, C3: 10000},
			{C1: 2.35, C2: 48.55, C3: 10000},
			{C1: 2.40, C2: 48.60, C3: 10000},
		},
	}

	projected, err := ProjectGeometry(p, g)
	if err != nil {
		t.Fatalf("ProjectGeometry returned error: %v", err)
	}

	back, err := ProjectGeometryBack(p, projected)
	if err != nil {
		t.Fatalf("ProjectGeometryBack returned error: %v", err)
	}

	for i := range g.Line {
		want := g.Line[i]
		got := back.Line[i]
		if math.Abs(got.C1-want.C1) > 1e-5 {
			t.Errorf("vertex %d: c1 = %v, want %v", i, got.C1, want.C1)
		}
		if math.Abs(got.C2-want.C2) > 1e-5 {
			t.Errorf("vertex %d: c2 = %v, want %v", i, got.C2, want.C2)
		}
		if got.C3 != want.C3 {
			t.Errorf("vertex %d: altitude = %v, want bit-identical %v", i, got.C3, want.C3)
		}
	}
}
