// Package geometry provides the pitch-plane math used when deriving
// tracking-frame columns: polygon area for camera visible areas,
// point-in-polygon tests and player distances.
package geometry

import "math"

// Point is a position on the pitch plane.
type Point struct {
	X float64
	Y float64
}

// PolygonFromFlat converts a flat [x1, y1, x2, y2, ...] coordinate list into
// points. A trailing unpaired value is dropped.
func PolygonFromFlat(coords []float64) []Point {
	points := make([]Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		points = append(points, Point{X: coords[i], Y: coords[i+1]})
	}
	return points
}

// PolygonArea returns the area of the polygon via the shoelace formula.
// Polygons with fewer than three vertices have no meaningful area and
// return nil.
func PolygonArea(polygon []Point) *float64 {
	if len(polygon) < 3 {
		return nil
	}

	sum := 0.0
	for i := range polygon {
		j := (i + 1) % len(polygon)
		sum += polygon[i].X*polygon[j].Y - polygon[j].X*polygon[i].Y
	}

	area := math.Abs(sum) / 2
	return &area
}

// PointInPolygon reports whether p lies inside the polygon using the ray
// casting rule. Points on an edge may land on either side; the source data
// never places players exactly on the camera boundary.
func PointInPolygon(p Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1
	for i := range polygon {
		pi, pj := polygon[i], polygon[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			intersectX := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < intersectX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
