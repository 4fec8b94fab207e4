package geometry2D

import (
	"fmt"

	"github.com/pradeep-pyro/triangle"
)

// TriangulatePoints computes the Delaunay triangulation of a planar point
// set, returning triangle index triples into pts.
func TriangulatePoints(pts [][2]float64) (faces [][3]int, err error) {
	if len(pts) < 3 {
		return nil, fmt.Errorf("need at least 3 points to triangulate, have %d", len(pts))
	}
	tris := triangle.Delaunay(pts)
	faces = make([][3]int, len(tris))
	for i, tri := range tris {
		faces[i] = [3]int{int(tri[0]), int(tri[1]), int(tri[2])}
	}
	return
}

/*
SheetTriangles triangulates a planar point set and lifts it to the z plane as
a triangle soup, the building block for flat charged-sheet sources. The soup
feeds trimesh.FromTriangles; note a flat sheet is an open mesh and the usual
closedness warning applies to field evaluations against it.
*/
func SheetTriangles(pts [][2]float64, z float64) (soup [][3][3]float64, err error) {
	faces, err := TriangulatePoints(pts)
	if err != nil {
		return
	}
	soup = make([][3][3]float64, len(faces))
	for i, f := range faces {
		for c := 0; c < 3; c++ {
			soup[i][c] = [3]float64{pts[f[c]][0], pts[f[c]][1], z}
		}
	}
	return
}
