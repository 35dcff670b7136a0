package FFD2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goffd/utils"
)

func TestParametricJacobianMatchesFiniteDifference(t *testing.T) {
	bs := newRandomModel(t, [2]int{5, 6}, [2]float64{1.25, 0.8}, [2]float64{-1, 2}, 7)
	// Interior, boundary and outside points
	P := utils.NewPoints2D([][2]float64{
		{1.3, 3.9}, {-1, 2}, {-2.1, 1.7}, {3.9, 6}, {20, 20}, {0.05, 5.5},
	})
	N, _ := P.Dims()
	PJ, err := bs.ParametricJacobian(P)
	require.NoError(t, err)
	dims, params, points := PJ.Dims()
	assert.Equal(t, [3]int{2, bs.NumberOfParameters(), N}, [3]int{dims, params, points})

	T0, err := bs.TransformPoints(P)
	require.NoError(t, err)
	p0 := bs.Parameters()
	// The deformation is linear in the parameters, so a unit step gives the exact column
	for ip := range p0 {
		p := make([]float64, len(p0))
		copy(p, p0)
		p[ip] += 1
		require.NoError(t, bs.SetParameters(p))
		T1, err := bs.TransformPoints(P)
		require.NoError(t, err)
		for k := 0; k < N; k++ {
			for d := 0; d < 2; d++ {
				fd := T1.At(k, d) - T0.At(k, d)
				assert.InDeltaf(t, fd, PJ.At(d, ip, k), 1.e-12, "param %d, point %d, dim %d", ip, k, d)
				assert.Equal(t, PJ.At(d, ip, k), PJ.Matrix().At(2*k+d, ip))
			}
		}
	}
	require.NoError(t, bs.SetParameters(p0))
	assert.Panics(t, func() { PJ.At(2, 0, 0) })
	assert.Panics(t, func() { PJ.At(0, params, 0) })
	assert.Panics(t, func() { PJ.At(0, 0, N) })
}

func TestParametricJacobianSparsity(t *testing.T) {
	bs := newRandomModel(t, [2]int{7, 7}, [2]float64{1, 1}, [2]float64{0, 0}, 3)
	P := interiorPoints(bs.Grid(), 25, 8, 0.01)
	PJ, err := bs.ParametricJacobian(P)
	require.NoError(t, err)
	// 16 vertices per interior point, one x and one y entry each
	assert.Equal(t, 25*32, PJ.NNZ())
	for k := 0; k < 25; k++ {
		for ip := 0; ip < bs.NumberOfParameters(); ip++ {
			// x output only depends on dx (even) parameters, y output on dy (odd)
			if ip%2 == 0 {
				assert.Equal(t, 0., PJ.At(1, ip, k))
				assert.Equal(t, PJ.At(0, ip, k), PJ.At(1, ip+1, k))
			} else {
				assert.Equal(t, 0., PJ.At(0, ip, k))
			}
		}
		var colSum float64
		for ip := 0; ip < bs.NumberOfParameters(); ip += 2 {
			colSum += PJ.At(0, ip, k)
		}
		assert.InDelta(t, 1., colSum, 1.e-14)
	}
	// Boundary point: vertex (1,1) in a 7x7 grid sees a 3x3 neighborhood
	PB, err := bs.ParametricJacobian(utils.NewPoints2D([][2]float64{{0, 0}}))
	require.NoError(t, err)
	assert.Equal(t, 18, PB.NNZ())
}

func TestParametricJacobianMulTransposeVec(t *testing.T) {
	bs := newRandomModel(t, [2]int{6, 5}, [2]float64{1, 2}, [2]float64{0, 0}, 13)
	P := interiorPoints(bs.Grid(), 30, 2, 0)
	PJ, err := bs.ParametricJacobian(P)
	require.NoError(t, err)
	r := make([]float64, 60)
	for i := range r {
		r[i] = float64(i%7) - 3
	}
	g := PJ.MulTransposeVec(r)
	var (
		dense = mat.DenseCopyOf(PJ.Matrix())
		want  mat.VecDense
	)
	want.MulVec(dense.T(), mat.NewVecDense(60, r))
	assert.True(t, floats.EqualApprox(want.RawVector().Data, g, 1.e-12))
	assert.Panics(t, func() { PJ.MulTransposeVec(r[:10]) })
}
