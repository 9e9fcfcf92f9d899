package skyproj

import "math"

// GeometryKind tags the variant held by a Geometry value.
type GeometryKind int

const (
	GeometryPoint GeometryKind = iota
	GeometryMultiPoint
	GeometryLineString
	GeometryMultiLineString
	GeometryPolygon
	GeometryMultiPolygon
	GeometryCollection
)

// Vertex is a single (c1, c2, c3) coordinate triple. c3 (altitude, meters) is
// metadata carried through a transform unchanged (spec §4.7 step 3); c1/c2
// are lon/lat or px/py depending on direction. A 2D vertex (no altitude) sets
// C3 to NaN; TransformGeometry rejects any geometry containing one.
type Vertex struct {
	C1, C2, C3 float64
}

// Ring is an ordered vertex list: the vertices of a LineString or
// MultiPoint, or one ring of a Polygon (the first ring is the shell, any
// further rings are holes). Closure of polygon rings is not checked.
type Ring []Vertex

// Geometry is a tagged-variant 3D geometry (spec §4.7). Exactly one of the
// variant fields is populated, per Kind:
//
//	Point              -> Point (single vertex)
//	MultiPoint         -> Points
//	LineString         -> Line (one ring, no hole semantics)
//	MultiLineString    -> Lines
//	Polygon            -> Rings[0] is the shell, Rings[1:] are holes
//	MultiPolygon       -> Polygons, each element shaped like Polygon's Rings
//	GeometryCollection -> Collection
type Geometry struct {
	Kind GeometryKind

	Point    Vertex
	Points   []Vertex
	Line     Ring
	Lines    []Ring
	Rings    []Ring
	Polygons [][]Ring

	Collection []Geometry
}

// IsEmpty reports whether g's top-level vertex, part or ring list is empty
// (spec §4.7 step 1). A Point is never empty; a multi-part geometry whose
// parts are themselves empty is not reported as empty.
func (g Geometry) IsEmpty() bool {
	switch g.Kind {
	case GeometryPoint:
		return false
	case GeometryMultiPoint:
		return len(g.Points) == 0
	case GeometryLineString:
		return len(g.Line) == 0
	case GeometryMultiLineString:
		return len(g.Lines) == 0
	case GeometryPolygon:
		return len(g.Rings) == 0
	case GeometryMultiPolygon:
		return len(g.Polygons) == 0
	case GeometryCollection:
		return len(g.Collection) == 0
	}
	return true
}

// CoordinateTransform maps parallel (c1, c2, c3) arrays to transformed
// (c1', c2') arrays of the same length, c3 passed through by the caller.
// AircraftProjector.LonLatToPixels and PixelsToLonLat are adapted to it by
// ProjectGeometry and ProjectGeometryBack.
type CoordinateTransform func(c1, c2, c3 []float64) (c1p, c2p []float64, err error)

// TransformGeometry walks every vertex of g (including polygon holes),
// applies f to the collected (c1, c2, c3) arrays, and reassembles a geometry
// of identical topology with vertices (c1', c2', c3) -- c3 passed through
// unchanged (spec §4.7).
//
// An empty geometry is returned unchanged. A geometry with any vertex whose
// C3 is NaN (a 2D vertex, see Vertex) lacks a third coordinate and is
// rejected with a ShapeError before f is called.
func TransformGeometry(g Geometry, f CoordinateTransform) (Geometry, error) {
	if g.IsEmpty() {
		return g, nil
	}

	c1, c2, c3 := collectVertices(g)
	for _, alt := range c3 {
		if math.IsNaN(alt) {
			return Geometry{}, &ShapeError{
				Op:     "TransformGeometry",
				Shapes: []int{len(c3)},
				Reason: "geometry lacks a third (altitude) coordinate",
			}
		}
	}

	c1p, c2p, err := f(c1, c2, c3)
	if err != nil {
		return Geometry{}, err
	}

	out, _ := rebuildVertices(g, c1p, c2p, c3)
	return out, nil
}

func collectVertices(g Geometry) (c1, c2, c3 []float64) {
	switch g.Kind {
	case GeometryPoint:
		return []float64{g.Point.C1}, []float64{g.Point.C2}, []float64{g.Point.C3}
	case GeometryMultiPoint:
		return ringCoords(Ring(g.Points))
	case GeometryLineString:
		return ringCoords(g.Line)
	case GeometryMultiLineString:
		for _, line := range g.Lines {
			a, b, c := ringCoords(line)
			c1, c2, c3 = append(c1, a...), append(c2, b...), append(c3, c...)
		}
		return c1, c2, c3
	case GeometryPolygon:
		for _, ring := range g.Rings {
			a, b, c := ringCoords(ring)
			c1, c2, c3 = append(c1, a...), append(c2, b...), append(c3, c...)
		}
		return c1, c2, c3
	case GeometryMultiPolygon:
		for _, poly := range g.Polygons {
			for _, ring := range poly {
				a, b, c := ringCoords(ring)
				c1, c2, c3 = append(c1, a...), append(c2, b...), append(c3, c...)
			}
		}
		return c1, c2, c3
	case GeometryCollection:
		for _, child := range g.Collection {
			a, b, c := collectVertices(child)
			c1, c2, c3 = append(c1, a...), append(c2, b...), append(c3, c...)
		}
		return c1, c2, c3
	}
	return nil, nil, nil
}

func ringCoords(r Ring) (c1, c2, c3 []float64) {
	c1 = make([]float64, len(r))
	c2 = make([]float64, len(r))
	c3 = make([]float64, len(r))
	for i, v := range r {
		c1[i], c2[i], c3[i] = v.C1, v.C2, v.C3
	}
	return c1, c2, c3
}

// rebuildVertices re-assembles a geometry of g's topology from flat
// transformed coordinate arrays, consuming them in the same traversal order
// collectVertices produced them in.
func rebuildVertices(g Geometry, c1, c2, c3 []float64) (Geometry, int) {
	cursor := 0
	next := func(n int) (Ring, int) {
		ring := make(Ring, n)
		for i := 0; i < n; i++ {
			ring[i] = Vertex{C1: c1[cursor+i], C2: c2[cursor+i], C3: c3[cursor+i]}
		}
		return ring, cursor + n
	}

	switch g.Kind {
	case GeometryPoint:
		return Geometry{Kind: GeometryPoint, Point: Vertex{C1: c1[0], C2: c2[0], C3: c3[0]}}, 1
	case GeometryMultiPoint:
		ring, end := next(len(g.Points))
		cursor = end
		return Geometry{Kind: GeometryMultiPoint, Points: []Vertex(ring)}, cursor
	case GeometryLineString:
		ring, end := next(len(g.Line))
		cursor = end
		return Geometry{Kind: GeometryLineString, Line: ring}, cursor
	case GeometryMultiLineString:
		lines := make([]Ring, len(g.Lines))
		for i, line := range g.Lines {
			var ring Ring
			ring, cursor = next(len(line))
			lines[i] = ring
		}
		return Geometry{Kind: GeometryMultiLineString, Lines: lines}, cursor
	case GeometryPolygon:
		rings := make([]Ring, len(g.Rings))
		for i, r := range g.Rings {
			var ring Ring
			ring, cursor = next(len(r))
			rings[i] = ring
		}
		return Geometry{Kind: GeometryPolygon, Rings: rings}, cursor
	case GeometryMultiPolygon:
		polys := make([][]Ring, len(g.Polygons))
		for pi, poly := range g.Polygons {
			rings := make([]Ring, len(poly))
			for ri, r := range poly {
				var ring Ring
				ring, cursor = next(len(r))
				rings[ri] = ring
			}
			polys[pi] = rings
		}
		return Geometry{Kind: GeometryMultiPolygon, Polygons: polys}, cursor
	case GeometryCollection:
		children := make([]Geometry, len(g.Collection))
		for i, child := range g.Collection {
			n := countVertices(child)
			rebuilt, _ := rebuildVertices(child, c1[cursor:cursor+n], c2[cursor:cursor+n], c3[cursor:cursor+n])
			children[i] = rebuilt
			cursor += n
		}
		return Geometry{Kind: GeometryCollection, Collection: children}, cursor
	}
	return g, cursor
}

func countVertices(g Geometry) int {
	a, _, _ := collectVertices(g)
	return len(a)
}

// ProjectGeometry applies p.LonLatToPixels as the coordinate transform f in
// TransformGeometry (spec §4.7's "project_geometry").
func ProjectGeometry(p *AircraftProjector, g Geometry) (Geometry, error) {
	return TransformGeometry(g, func(lon, lat, alt []float64) ([]float64, []float64, error) {
		return p.LonLatToPixels(lon, lat, alt)
	})
}

// ProjectGeometryBack applies p.PixelsToLonLat as the coordinate transform f
// in TransformGeometry (spec §4.7's "project_geometry_back").
func ProjectGeometryBack(p *AircraftProjector, g Geometry) (Geometry, error) {
	return TransformGeometry(g, func(px, py, alt []float64) ([]float64, []float64, error) {
		return p.PixelsToLonLat(px, py, alt)
	})
}
