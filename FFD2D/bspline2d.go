package FFD2D

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goffd/utils"
)

/*
BSpline2D is a cubic B-spline free-form deformation over a ControlGrid:

	T(p) = p + Sum_{kx,ky} Bkx(ux) * Bky(uy) * d(vertex(kx,ky))

where d is the (dx,dy) displacement stored for each vertex.

The grid is fixed at construction; the displacement vector is the only mutable
state. Setters take the write lock and every batch evaluation holds the read
lock for its whole duration, so a batch never sees a partially written vector.
*/
type BSpline2D struct {
	grid           ControlGrid
	params         []float64
	ParallelDegree int // Zero means one goroutine per CPU
	mu             sync.RWMutex
}

func NewBSpline2D(size [2]int, spacing, origin [2]float64) (bs *BSpline2D, err error) {
	var (
		g ControlGrid
	)
	if g, err = NewControlGrid(size, spacing, origin); err != nil {
		return
	}
	bs = NewBSpline2DFromGrid(g)
	return
}

// NewDefaultBSpline2D is a single vertex grid at the origin with unit spacing
func NewDefaultBSpline2D() *BSpline2D {
	return NewBSpline2DFromGrid(DefaultControlGrid())
}

func NewBSpline2DFromGrid(g ControlGrid) (bs *BSpline2D) {
	bs = &BSpline2D{
		grid:   g,
		params: make([]float64, g.NumParameters()),
	}
	return
}

func (bs *BSpline2D) Grid() ControlGrid { return bs.grid }

func (bs *BSpline2D) Dimension() int { return 2 }

func (bs *BSpline2D) NumberOfParameters() int { return len(bs.params) }

func (bs *BSpline2D) SetParallelDegree(NP int) { bs.ParallelDegree = NP }

// Parameters returns a copy of the displacement vector
func (bs *BSpline2D) Parameters() (p []float64) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	p = make([]float64, len(bs.params))
	copy(p, bs.params)
	return
}

func (bs *BSpline2D) SetParameters(p []float64) (err error) {
	if len(p) != bs.grid.NumParameters() {
		err = fmt.Errorf("%w: got %d, grid %v needs %d",
			ErrParameterLength, len(p), bs.grid.Size, bs.grid.NumParameters())
		return
	}
	bs.mu.Lock()
	copy(bs.params, p)
	bs.mu.Unlock()
	return
}

func (bs *BSpline2D) GetDx(ix, iy int) float64 {
	xOff, _ := bs.grid.ParameterOffsets(ix, iy)
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.params[xOff]
}

func (bs *BSpline2D) GetDy(ix, iy int) float64 {
	_, yOff := bs.grid.ParameterOffsets(ix, iy)
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.params[yOff]
}

func (bs *BSpline2D) SetDx(ix, iy int, val float64) {
	xOff, _ := bs.grid.ParameterOffsets(ix, iy)
	bs.mu.Lock()
	bs.params[xOff] = val
	bs.mu.Unlock()
}

func (bs *BSpline2D) SetDy(ix, iy int, val float64) {
	_, yOff := bs.grid.ParameterOffsets(ix, iy)
	bs.mu.Lock()
	bs.params[yOff] = val
	bs.mu.Unlock()
}

// SetDisplacement sets both components of vertex (ix,iy) under one lock
func (bs *BSpline2D) SetDisplacement(ix, iy int, dx, dy float64) {
	xOff, yOff := bs.grid.ParameterOffsets(ix, iy)
	bs.mu.Lock()
	bs.params[xOff], bs.params[yOff] = dx, dy
	bs.mu.Unlock()
}

func checkPoints(points mat.Matrix) (N int, err error) {
	if utils.IsNilMatrix(points) {
		err = fmt.Errorf("%w: points are nil", ErrPointDimension)
		return
	}
	if utils.IsEmpty(points) {
		return
	}
	var nc int
	if N, nc = points.Dims(); nc != 2 {
		err = fmt.Errorf("%w: got %d columns", ErrPointDimension, nc)
		N = 0
	}
	return
}

func (bs *BSpline2D) newPartitions(N int) *utils.PartitionMap {
	return utils.NewPartitionMap(utils.LimitParallelDegree(bs.ParallelDegree, N), N)
}

/*
batch runs kernel over every partition of the point batch while holding the
read lock. kernel receives point indices [kMin,kMax) and must only write
results belonging to those points.
*/
func (bs *BSpline2D) batch(pm *utils.PartitionMap, kernel func(np, kMin, kMax int)) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	pm.Run(kernel)
}
