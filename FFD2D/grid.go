package FFD2D

import (
	"fmt"
	"math"
)

/*
ControlGrid is the geometry of an nx x ny lattice of control vertices.

Vertices are addressed 1-based as (ix, iy), ix in [1,nx], iy in [1,ny].
Vertex (1,1) sits at Origin, vertex (ix,iy) at Origin + ((ix-1)*Spacing[0], (iy-1)*Spacing[1]).
Flat vertex numbering runs x fastest: idx(ix,iy) = ix + (iy-1)*nx.
The parameter vector stores (dx, dy) for each vertex in flat order.
*/
type ControlGrid struct {
	Size    [2]int
	Spacing [2]float64
	Origin  [2]float64
}

func NewControlGrid(size [2]int, spacing, origin [2]float64) (g ControlGrid, err error) {
	for n := 0; n < 2; n++ {
		switch {
		case size[n] < 1:
			err = fmt.Errorf("%w: size = %v", ErrInvalidGrid, size)
			return
		case !(spacing[n] > 0) || math.IsInf(spacing[n], 0):
			err = fmt.Errorf("%w: spacing = %v", ErrInvalidGrid, spacing)
			return
		case math.IsNaN(origin[n]) || math.IsInf(origin[n], 0):
			err = fmt.Errorf("%w: origin = %v", ErrInvalidGrid, origin)
			return
		}
	}
	g = ControlGrid{
		Size:    size,
		Spacing: spacing,
		Origin:  origin,
	}
	return
}

// DefaultControlGrid is a single vertex at the origin with unit spacing
func DefaultControlGrid() ControlGrid {
	return ControlGrid{
		Size:    [2]int{1, 1},
		Spacing: [2]float64{1, 1},
	}
}

/*
NewControlGridCovering sizes a grid so that every point of the box [min,max]
sees a full 4x4 neighborhood of vertices: one ring of vertices below the box
and two above it along each axis.
*/
func NewControlGridCovering(min, max, spacing [2]float64) (g ControlGrid, err error) {
	var (
		size   [2]int
		origin [2]float64
	)
	for n := 0; n < 2; n++ {
		if !(max[n] >= min[n]) {
			err = fmt.Errorf("%w: empty bounds min = %v, max = %v", ErrInvalidGrid, min, max)
			return
		}
		if !(spacing[n] > 0) {
			err = fmt.Errorf("%w: spacing = %v", ErrInvalidGrid, spacing)
			return
		}
		cells := int(math.Floor((max[n] - min[n]) / spacing[n]))
		// floor(g) ranges over [2, cells+2], so neighbors span [1, cells+4]
		size[n] = cells + 4
		origin[n] = min[n] - spacing[n]
	}
	return NewControlGrid(size, spacing, origin)
}

func (g ControlGrid) NumVertices() int { return g.Size[0] * g.Size[1] }

func (g ControlGrid) NumParameters() int { return 2 * g.NumVertices() }

func (g ControlGrid) Contains(ix, iy int) bool {
	return ix >= 1 && ix <= g.Size[0] && iy >= 1 && iy <= g.Size[1]
}

func (g ControlGrid) checkVertex(ix, iy int) {
	if !g.Contains(ix, iy) {
		panic(fmt.Errorf("vertex index out of range: (ix,iy) = (%d,%d), size = %v", ix, iy, g.Size))
	}
}

// VertexIndex is the 1-based flat index of vertex (ix,iy)
func (g ControlGrid) VertexIndex(ix, iy int) (idx int) {
	g.checkVertex(ix, iy)
	idx = g.vertexIndex(ix, iy)
	return
}

func (g ControlGrid) vertexIndex(ix, iy int) int { return ix + (iy-1)*g.Size[0] }

// ParameterOffsets are the zero based positions of the (dx,dy) pair of vertex (ix,iy)
func (g ControlGrid) ParameterOffsets(ix, iy int) (xOff, yOff int) {
	g.checkVertex(ix, iy)
	xOff = g.parameterOffset(ix, iy)
	yOff = xOff + 1
	return
}

// Unchecked, used inside the evaluation loops once the neighbor range is clipped
func (g ControlGrid) parameterOffset(ix, iy int) int { return 2*g.vertexIndex(ix, iy) - 2 }

func (g ControlGrid) VertexPosition(ix, iy int) (p [2]float64) {
	g.checkVertex(ix, iy)
	p[0] = g.Origin[0] + float64(ix-1)*g.Spacing[0]
	p[1] = g.Origin[1] + float64(iy-1)*g.Spacing[1]
	return
}

// GridCoordinate is the continuous 1-based lattice coordinate of a world point
func (g ControlGrid) GridCoordinate(x, y float64) (gx, gy float64) {
	gx = (x-g.Origin[0])/g.Spacing[0] + 1
	gy = (y-g.Origin[1])/g.Spacing[1] + 1
	return
}

/*
stencil holds the 4x4 neighborhood of a point: the lattice tile floor(g), the
fractional offset u within it, and the range of basis pieces whose vertex
lies inside the grid. Piece k along an axis addresses vertex floor(g)+k-1;
pieces whose vertex falls off the grid are skipped, with no renormalisation.
*/
type stencil struct {
	i0, j0       int
	ux, uy       float64
	kxMin, kxMax int // inclusive piece range along x
	kyMin, kyMax int
}

func (g ControlGrid) newStencil(x, y float64) (s stencil) {
	gx, gy := g.GridCoordinate(x, y)
	fx, fy := math.Floor(gx), math.Floor(gy)
	s.i0, s.j0 = int(fx), int(fy)
	s.ux, s.uy = gx-fx, gy-fy
	s.kxMin, s.kxMax = pieceRange(s.i0, g.Size[0])
	s.kyMin, s.kyMax = pieceRange(s.j0, g.Size[1])
	return
}

// pieceRange clips pieces k in [0,3] so that vertex i0+k-1 lies in [1,n]. Empty when kMin > kMax.
func pieceRange(i0, n int) (kMin, kMax int) {
	kMin, kMax = 2-i0, n+1-i0
	if kMin < 0 {
		kMin = 0
	}
	if kMax > 3 {
		kMax = 3
	}
	return
}

// empty is true when no vertex of the grid influences the point
func (s stencil) empty() bool { return s.kxMin > s.kxMax || s.kyMin > s.kyMax }
