package skyproj

import (
	"math"

	"github.com/kyroy/kdtree"
	"gonum.org/v1/gonum/mat"
)

// centroidPoint implements kdtree.Point over a triangle's centroid, carrying
// the triangle's index so a kdtree hit can be mapped back to its triangle.
// Modeled directly on the kdtree.Point implementation in
// ZanzyTHEbar-circlejerk/internal/pointcloud.go.
type centroidPoint struct {
	X, Y float64
	Tri  int
}

func (c centroidPoint) Dimensions() int { return 2 }

func (c centroidPoint) Dimension(i int) float64 {
	if i == 0 {
		return c.X
	}
	return c.Y
}

func (c centroidPoint) Distance(q kdtree.Point) float64 {
	o := q.(centroidPoint)
	dx := c.X - o.X
	dy := c.Y - o.Y
	return dx*dx + dy*dy
}

// Interpolant is a piecewise-linear interpolant over a Delaunay triangulation
// of an irregular (azimuth, zenith) sample set (spec §4.3). Evaluation at a
// query outside the triangulation's convex hull returns NaN.
type Interpolant struct {
	points    []Point2
	values    [][2]float64 // raw-pixel (row, col), one per point
	triangles []Triangle
	index     *kdtree.KDTree
	knn       int
}

// NewInterpolant triangulates points and builds the spatial index used to
// accelerate containing-triangle lookups. len(points) must equal len(values).
func NewInterpolant(points []Point2, values [][2]float64) (*Interpolant, error) {
	if len(points) != len(values) {
		return nil, &CalibrationError{Reason: "point and value counts differ"}
	}

	triangles, err := BuildTriangulation(points)
	if err != nil {
		return nil, err
	}

	centroids := make([]kdtree.Point, len(triangles))
	for i, t := range triangles {
		cx := (points[t.A].X + points[t.B].X + points[t.C].X) / 3
		cy := (points[t.A].Y + points[t.B].Y + points[t.C].Y) / 3
		centroids[i] = centroidPoint{X: cx, Y: cy, Tri: i}
	}

	knn := 8
	if knn > len(triangles) {
		knn = len(triangles)
	}

	return &Interpolant{
		points:    points,
		values:    values,
		triangles: triangles,
		index:     kdtree.New(centroids),
		knn:       knn,
	}, nil
}

// Eval evaluates the interpolant at a single query point, returning the
// barycentric-weighted blend of the containing triangle's vertex values, or
// NaN for both components if the query lies outside the hull.
func (f *Interpolant) Eval(az, zen float64) (row, col float64) {
	if math.IsNaN(az) || math.IsNaN(zen) {
		return math.NaN(), math.NaN()
	}

	query := centroidPoint{X: az, Y: zen}

	// Progressively widen the candidate ring; the kdtree ranks candidates by
	// centroid distance so most queries resolve on the first ring.
	for k := f.knn; ; k *= 4 {
		if k > len(f.triangles) {
			k = len(f.triangles)
		}

		for _, c := range f.index.KNN(query, k) {
			tri := f.triangles[c.(centroidPoint).Tri]
			if w0, w1, w2, ok := barycentric(f.points[tri.A], f.points[tri.B], f.points[tri.C], Point2{X: az, Y: zen}); ok {
				v0, v1, v2 := f.values[tri.A], f.values[tri.B], f.values[tri.C]
				return w0*v0[0] + w1*v1[0] + w2*v2[0], w0*v0[1] + w1*v1[1] + w2*v2[1]
			}
		}

		if k == len(f.triangles) {
			break
		}
	}

	return math.NaN(), math.NaN()
}

// EvalBatch evaluates the interpolant for a batch of queries.
func (f *Interpolant) EvalBatch(az, zen []float64) (row, col []float64) {
	n := len(az)
	row = make([]float64, n)
	col = make([]float64, n)
	for i := 0; i < n; i++ {
		row[i], col[i] = f.Eval(az[i], zen[i])
	}
	return row, col
}

// barycentric solves for the barycentric weights of p within triangle (a, b, c)
// by solving the 2x2 linear system for the weights of a and b, with c's weight
// taken as the remainder. Returns ok=false if p lies outside the triangle.
func barycentric(a, b, c, p Point2) (wa, wb, wc float64, ok bool) {
	m := mat.NewDense(2, 2, []float64{
		a.X - c.X, b.X - c.X,
		a.Y - c.Y, b.Y - c.Y,
	})
	rhs := mat.NewVecDense(2, []float64{p.X - c.X, p.Y - c.Y})

	var sol mat.VecDense
	if err := sol.SolveVec(m, rhs); err != nil {
		return 0, 0, 0, false
	}

	wa = sol.AtVec(0)
	wb = sol.AtVec(1)
	wc = 1 - wa - wb

	const eps = 1e-9
	if wa < -eps || wb < -eps || wc < -eps {
		return 0, 0, 0, false
	}
	return wa, wb, wc, true
}
