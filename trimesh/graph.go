package trimesh

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/gomag/types"
)

// edgeUse records one appearance of an undirected edge inside a face's
// winding, keeping the traversal direction.
type edgeUse struct {
	face int
	dir  types.DirEdge
}

/*
MeshGraph is the directed-edge incidence structure of a face index array.
Undirected edges are packed index-pair keys mapping to their (face,direction)
occurrences; the face-adjacency relation (faces are nodes, shared edges are
links) is held as a sparse matrix for adjacency queries and BFS traversal.
*/
type MeshGraph struct {
	nFaces int
	edges  map[types.EdgeKey][]edgeUse
	adj    *sparse.CSR
}

// faceEdges lists a face's directed edges in winding order: a->b, b->c, c->a.
func faceEdges(f [3]int) [3]types.DirEdge {
	return [3]types.DirEdge{
		types.NewDirEdge([2]int{f[0], f[1]}),
		types.NewDirEdge([2]int{f[1], f[2]}),
		types.NewDirEdge([2]int{f[2], f[0]}),
	}
}

func NewMeshGraph(faces [][3]int) (g *MeshGraph) {
	g = &MeshGraph{
		nFaces: len(faces),
		edges:  make(map[types.EdgeKey][]edgeUse, 3*len(faces)/2),
	}
	for i, f := range faces {
		for _, de := range faceEdges(f) {
			ek := de.GetKey()
			g.edges[ek] = append(g.edges[ek], edgeUse{face: i, dir: de})
		}
	}
	adj := sparse.NewDOK(g.nFaces, g.nFaces)
	for _, uses := range g.edges {
		for i := 0; i < len(uses); i++ {
			for j := i + 1; j < len(uses); j++ {
				adj.Set(uses[i].face, uses[j].face, 1)
				adj.Set(uses[j].face, uses[i].face, 1)
			}
		}
	}
	g.adj = adj.ToCSR()
	return
}

// NumEdges returns the count of distinct undirected edges.
func (g *MeshGraph) NumEdges() int { return len(g.edges) }

// FaceNeighbors returns the faces sharing at least one edge with face i.
func (g *MeshGraph) FaceNeighbors(i int) (nbrs []int) {
	g.adj.DoRowNonZero(i, func(_, j int, _ float64) {
		nbrs = append(nbrs, j)
	})
	return
}

/*
IsClosed reports whether every undirected edge is shared by exactly two faces.
A single occurrence is a boundary edge, more than two is a non-manifold edge;
both make the mesh open. Two occurrences traversed in the same direction are a
repairable winding flaw, not an open mesh: on a correctly wound closed mesh the
two faces traverse the shared edge in opposite directions, and ReorientFaces
restores that property.
*/
func (g *MeshGraph) IsClosed() bool {
	for _, uses := range g.edges {
		if len(uses) != 2 {
			return false
		}
	}
	return true
}

// Components partitions the faces into connected components by breadth-first
// traversal over the face-adjacency relation. Components are ordered by their
// lowest face index, faces within a component in visit order.
func (g *MeshGraph) Components() (comps [][]int) {
	seen := make([]bool, g.nFaces)
	for i0 := 0; i0 < g.nFaces; i0++ {
		if seen[i0] {
			continue
		}
		queue := []int{i0}
		seen[i0] = true
		var comp []int
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			comp = append(comp, u)
			g.adj.DoRowNonZero(u, func(_, v int, _ float64) {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			})
		}
		comps = append(comps, comp)
	}
	return
}
