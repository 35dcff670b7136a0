package FFD2D

import (
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goffd/bspline"
)

// TransformPoints maps each row (x,y) of points to its deformed location
func (bs *BSpline2D) TransformPoints(points mat.Matrix) (R *mat.Dense, err error) {
	var (
		N int
	)
	if N, err = checkPoints(points); err != nil {
		return
	}
	if N == 0 {
		return &mat.Dense{}, nil
	}
	R = mat.NewDense(N, 2, nil)
	bs.batch(bs.newPartitions(N), func(np, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			xd, yd := bs.transformPoint(points.At(k, 0), points.At(k, 1))
			R.Set(k, 0, xd)
			R.Set(k, 1, yd)
		}
	})
	return
}

func (bs *BSpline2D) TransformPoint(x, y float64) (xd, yd float64) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.transformPoint(x, y)
}

func (bs *BSpline2D) transformPoint(x, y float64) (xd, yd float64) {
	var (
		s      = bs.grid.newStencil(x, y)
		wx, wy = bspline.Weights(s.ux), bspline.Weights(s.uy)
		P      = bs.params
	)
	xd, yd = x, y
	for ky := s.kyMin; ky <= s.kyMax; ky++ {
		iy := s.j0 + ky - 1
		for kx := s.kxMin; kx <= s.kxMax; kx++ {
			ix := s.i0 + kx - 1
			w := wx[kx] * wy[ky]
			off := bs.grid.parameterOffset(ix, iy)
			xd += w * P[off]
			yd += w * P[off+1]
		}
	}
	return
}

// weightSum is the total tensor weight reaching a point, one in the interior
func (bs *BSpline2D) weightSum(x, y float64) (sum float64) {
	var (
		s      = bs.grid.newStencil(x, y)
		wx, wy = bspline.Weights(s.ux), bspline.Weights(s.uy)
	)
	for ky := s.kyMin; ky <= s.kyMax; ky++ {
		for kx := s.kxMin; kx <= s.kxMax; kx++ {
			sum += wx[kx] * wy[ky]
		}
	}
	return
}
