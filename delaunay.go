package skyproj

import "math"

// Point2 is a 2D point in angular space (azimuth, zenith), both radians.
type Point2 struct {
	X, Y float64
}

// Triangle references three vertices by index into the point slice passed to
// BuildTriangulation.
type Triangle struct {
	A, B, C int
}

// BuildTriangulation computes a Delaunay triangulation of points using the
// Bowyer-Watson incremental algorithm (spec §4.3's "canonical construction").
// Degenerate/duplicate points are tolerated with arbitrary tie-breaking, as
// permitted by spec §4.3. Construction fails with a CalibrationError if fewer
// than three non-collinear points are present.
//
// This runs once per ProjectionService build, not per query, so its O(n *
// len(triangles)) incremental-insertion cost is paid once for a calibration's
// lifetime; spec §5 explicitly tolerates a heavy, memory-hungry build step.
func BuildTriangulation(points []Point2) ([]Triangle, error) {
	if len(points) < 3 {
		return nil, &CalibrationError{Reason: "fewer than three calibration samples survived masking"}
	}
	if allCollinear(points) {
		return nil, &CalibrationError{Reason: "all surviving calibration samples are collinear"}
	}

	n := len(points)
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	dx := maxX - minX
	dy := maxY - minY
	deltaMax := math.Max(dx, dy)
	if deltaMax == 0 {
		deltaMax = 1
	}
	midX := (minX + maxX) / 2
	midY := (minY + maxY) / 2

	pts := make([]Point2, n, n+3)
	copy(pts, points)
	pts = append(pts,
		Point2{midX - 20*deltaMax, midY - deltaMax},
		Point2{midX, midY + 20*deltaMax},
		Point2{midX + 20*deltaMax, midY - deltaMax},
	)
	superA, superB, superC := n, n+1, n+2

	triangles := []Triangle{{superA, superB, superC}}

	type edge struct{ u, v int }
	normEdge := func(u, v int) edge {
		if u > v {
			u, v = v, u
		}
		return edge{u, v}
	}

	for i := 0; i < n; i++ {
		p := pts[i]

		var badIdx []int
		for ti, t := range triangles {
			if inCircumcircle(pts[t.A], pts[t.B], pts[t.C], p) {
				badIdx = append(badIdx, ti)
			}
		}

		edgeCount := make(map[edge]int, len(badIdx)*3)
		for _, ti := range badIdx {
			t := triangles[ti]
			edgeCount[normEdge(t.A, t.B)]++
			edgeCount[normEdge(t.B, t.C)]++
			edgeCount[normEdge(t.C, t.A)]++
		}

		var boundary [][2]int
		for _, ti := range badIdx {
			t := triangles[ti]
			for _, e := range [][2]int{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}} {
				if edgeCount[normEdge(e[0], e[1])] == 1 {
					boundary = append(boundary, e)
				}
			}
		}

		bad := make(map[int]bool, len(badIdx))
		for _, ti := range badIdx {
			bad[ti] = true
		}
		kept := make([]Triangle, 0, len(triangles))
		for ti, t := range triangles {
			if !bad[ti] {
				kept = append(kept, t)
			}
		}
		for _, e := range boundary {
			kept = append(kept, Triangle{e[0], e[1], i})
		}
		triangles = kept
	}

	result := make([]Triangle, 0, len(triangles))
	for _, t := range triangles {
		if t.A >= n || t.B >= n || t.C >= n {
			continue
		}
		result = append(result, t)
	}

	if len(result) == 0 {
		return nil, &CalibrationError{Reason: "triangulation produced no interior triangles"}
	}

	return result, nil
}

// orient2d returns twice the signed area of triangle (a, b, c); positive when
// a, b, c are in counter-clockwise order.
func orient2d(a, b, c Point2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// inCircumcircle reports whether p lies strictly inside the circumcircle of
// triangle (a, b, c), via the standard incircle determinant predicate.
func inCircumcircle(a, b, c, p Point2) bool {
	if orient2d(a, b, c) < 0 {
		b, c = c, b
	}

	ax, ay := a.X-p.X, a.Y-p.Y
	bx, by := b.X-p.X, b.Y-p.Y
	cx, cy := c.X-p.X, c.Y-p.Y

	det := (ax*ax+ay*ay)*(bx*cy-cx*by) -
		(bx*bx+by*by)*(ax*cy-cx*ay) +
		(cx*cx+cy*cy)*(ax*by-bx*ay)

	return det > 0
}

// allCollinear reports whether every point in pts lies on a single line.
func allCollinear(pts []Point2) bool {
	if len(pts) < 3 {
		return true
	}
	a, b := pts[0], pts[1]
	for _, c := range pts[2:] {
		if math.Abs(orient2d(a, b, c)) > 1e-15 {
			return false
		}
	}
	return true
}
