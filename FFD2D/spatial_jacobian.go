package FFD2D

import (
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goffd/bspline"
)

/*
JacobianMatrix returns the 2x2 matrix dT/dp at each point:

	J = I + Sum d(vertex) (x) grad(Bkx(ux)*Bky(uy))

with the lattice derivative scaled by 1/Spacing to get world units.
*/
func (bs *BSpline2D) JacobianMatrix(points mat.Matrix) (J []*mat.Dense, err error) {
	var (
		N int
	)
	if N, err = checkPoints(points); err != nil {
		return
	}
	J = make([]*mat.Dense, N)
	bs.batch(bs.newPartitions(N), func(np, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			j := bs.jacobian(points.At(k, 0), points.At(k, 1))
			J[k] = mat.NewDense(2, 2, j[:])
		}
	})
	return
}

// JacobianDeterminant is det(dT/dp) at each point, non-positive where the deformation folds
func (bs *BSpline2D) JacobianDeterminant(points mat.Matrix) (D *mat.VecDense, err error) {
	var (
		N int
	)
	if N, err = checkPoints(points); err != nil {
		return
	}
	if N == 0 {
		return &mat.VecDense{}, nil
	}
	D = mat.NewVecDense(N, nil)
	bs.batch(bs.newPartitions(N), func(np, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			j := bs.jacobian(points.At(k, 0), points.At(k, 1))
			D.SetVec(k, j[0]*j[3]-j[1]*j[2])
		}
	})
	return
}

// jacobian returns row major [J00, J01, J10, J11]
func (bs *BSpline2D) jacobian(x, y float64) (j [4]float64) {
	var (
		s        = bs.grid.newStencil(x, y)
		bx, by   = bspline.Weights(s.ux), bspline.Weights(s.uy)
		bxd, byd = bspline.DerivWeights(s.ux), bspline.DerivWeights(s.uy)
		rsx      = 1 / bs.grid.Spacing[0]
		rsy      = 1 / bs.grid.Spacing[1]
		P        = bs.params
	)
	j = [4]float64{1, 0, 0, 1}
	for ky := s.kyMin; ky <= s.kyMax; ky++ {
		iy := s.j0 + ky - 1
		for kx := s.kxMin; kx <= s.kxMax; kx++ {
			ix := s.i0 + kx - 1
			off := bs.grid.parameterOffset(ix, iy)
			dxv, dyv := P[off], P[off+1]
			wdx := bxd[kx] * by[ky] * rsx
			wdy := bx[kx] * byd[ky] * rsy
			j[0] += wdx * dxv
			j[1] += wdy * dxv
			j[2] += wdx * dyv
			j[3] += wdy * dyv
		}
	}
	return
}
