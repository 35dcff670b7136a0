package FFD2D

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goffd/bspline"
)

/*
ParametricJacobian holds d(T(p_n))/d(param) for a batch of N points as a
(2N) x P sparse matrix: row 2n is the x output of point n, row 2n+1 its y
output. A point touches at most 16 vertices, so each row has at most 16
nonzeros. The x output depends only on dx parameters and the y output only
on dy parameters, both with the same tensor weight.
*/
type ParametricJacobian struct {
	NumPoints, NumParams int
	ia, ja               []int // CSR row pointers and column indices
	data                 []float64
	m                    *sparse.CSR
}

func (bs *BSpline2D) ParametricJacobian(points mat.Matrix) (pj *ParametricJacobian, err error) {
	var (
		N int
		P = bs.grid.NumParameters()
	)
	if N, err = checkPoints(points); err != nil {
		return
	}
	var (
		pm = bs.newPartitions(N)
		// Per partition column/weight lists, 16 slots per point
		cols    = make([][]int, pm.ParallelDegree)
		weights = make([][]float64, pm.ParallelDegree)
		counts  = make([]int, N)
	)
	bs.batch(pm, func(np, kMin, kMax int) {
		nk := pm.GetBucketDimension(np)
		c := make([]int, 0, 16*nk)
		w := make([]float64, 0, 16*nk)
		for k := kMin; k < kMax; k++ {
			nBefore := len(c)
			c, w = bs.appendParametricRow(points.At(k, 0), points.At(k, 1), c, w)
			counts[k] = len(c) - nBefore
		}
		cols[np], weights[np] = c, w
	})
	pj = &ParametricJacobian{
		NumPoints: N,
		NumParams: P,
		ia:        make([]int, 2*N+1),
	}
	var nnz int
	for k := 0; k < N; k++ {
		nnz += 2 * counts[k]
	}
	pj.ja = make([]int, 0, nnz)
	pj.data = make([]float64, 0, nnz)
	var (
		row int
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		var (
			kMin, kMax = pm.GetBucketRange(np)
			start      int
		)
		for k := kMin; k < kMax; k++ {
			c := cols[np][start : start+counts[k]]
			w := weights[np][start : start+counts[k]]
			start += counts[k]
			// x output row, dx columns
			pj.ja = append(pj.ja, c...)
			pj.data = append(pj.data, w...)
			row++
			pj.ia[row] = len(pj.ja)
			// y output row, dy columns
			for _, col := range c {
				pj.ja = append(pj.ja, col+1)
			}
			pj.data = append(pj.data, w...)
			row++
			pj.ia[row] = len(pj.ja)
		}
	}
	if N != 0 && P != 0 {
		pj.m = sparse.NewCSR(2*N, P, pj.ia, pj.ja, pj.data)
	}
	return
}

// appendParametricRow appends the dx column and weight of each vertex influencing (x,y), in increasing column order
func (bs *BSpline2D) appendParametricRow(x, y float64, cols []int, w []float64) ([]int, []float64) {
	var (
		s      = bs.grid.newStencil(x, y)
		wx, wy = bspline.Weights(s.ux), bspline.Weights(s.uy)
	)
	for ky := s.kyMin; ky <= s.kyMax; ky++ {
		iy := s.j0 + ky - 1
		for kx := s.kxMin; kx <= s.kxMax; kx++ {
			ix := s.i0 + kx - 1
			cols = append(cols, bs.grid.parameterOffset(ix, iy))
			w = append(w, wx[kx]*wy[ky])
		}
	}
	return cols, w
}

// Dims of the tensor view: output dimension x parameters x points
func (pj *ParametricJacobian) Dims() (dims, params, points int) {
	return 2, pj.NumParams, pj.NumPoints
}

// At returns d(output dim of point)/d(param), dim in {0,1}
func (pj *ParametricJacobian) At(dim, param, point int) (val float64) {
	if dim < 0 || dim > 1 || param < 0 || param >= pj.NumParams || point < 0 || point >= pj.NumPoints {
		panic(fmt.Errorf("parametric jacobian index out of range: (%d,%d,%d), dims = (2,%d,%d)",
			dim, param, point, pj.NumParams, pj.NumPoints))
	}
	row := 2*point + dim
	for ii := pj.ia[row]; ii < pj.ia[row+1]; ii++ {
		if pj.ja[ii] == param {
			return pj.data[ii]
		}
	}
	return
}

func (pj *ParametricJacobian) NNZ() int { return len(pj.data) }

// Matrix is the (2N) x P sparse form, nil for an empty batch
func (pj *ParametricJacobian) Matrix() *sparse.CSR { return pj.m }

// MulTransposeVec forms J^T r for a residual r ordered (x0, y0, x1, y1, ...)
func (pj *ParametricJacobian) MulTransposeVec(r []float64) (g []float64) {
	if len(r) != 2*pj.NumPoints {
		panic(fmt.Errorf("residual length mismatch: len(r) = %d, need %d", len(r), 2*pj.NumPoints))
	}
	g = make([]float64, pj.NumParams)
	for row := 0; row < 2*pj.NumPoints; row++ {
		rv := r[row]
		if rv == 0 {
			continue
		}
		for ii := pj.ia[row]; ii < pj.ia[row+1]; ii++ {
			g[pj.ja[ii]] += pj.data[ii] * rv
		}
	}
	return
}
