package types

import (
	"fmt"
	"math"
)

/*
EdgeKey is an always positive number that stores an undirected mesh edge's two
vertices as indices in a way that can be compared. An edge between vertices [4]
and [0] will always be stored as [0,4], in the ascending order of the index
values, so the two directed traversals of the same edge map to the same key.
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	// This packs two index coordinates into two 32 bit unsigned integers to act as a hash and an indirect access method
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(i1 + i2<<32)
	return
}

func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	var (
		ekTmp EdgeKey
	)
	ekTmp = ek >> 32
	verts[1] = int(ekTmp)
	verts[0] = int(ek - ekTmp*(1<<32))
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

/*
DirEdge stores an edge's vertices in the order they are traversed within one
triangle's winding, so the traversal direction can be recovered. Two triangles
of a consistently wound closed mesh traverse their shared edge in opposite
directions, which packs to DirEdge values of opposite sign.
*/
type DirEdge int64

func NewDirEdge(verts [2]int) (packed DirEdge) {
	// Packs two index coordinates into two 31 bit unsigned integers, using the sign bit to record direction
	var (
		limit = math.MaxUint32 >> 1 // leaves room for the sign bit of an int64
		sign  bool
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into an int64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		sign = true
		i1, i2 = verts[1], verts[0]
	}
	packed = DirEdge(i1 + i2<<32)
	if sign {
		packed = -packed
	}
	return
}

func (e DirEdge) GetVertices() (verts [2]int) {
	var (
		eTmp DirEdge
		sign bool
	)
	if e < 0 {
		sign = true
		e = -e
	}
	eTmp = e >> 32
	verts[1] = int(eTmp)
	verts[0] = int(e - eTmp*(1<<32))
	if sign {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

func (e DirEdge) GetKey() (ek EdgeKey) {
	ek = NewEdgeKey(e.GetVertices())
	return
}

// Reversed reports whether the packed traversal runs against the ascending
// vertex index order of the undirected edge.
func (e DirEdge) Reversed() bool {
	return e < 0
}
