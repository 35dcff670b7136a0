package FFD2D

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func newRandomModel(t *testing.T, size [2]int, spacing, origin [2]float64, seed int64) (bs *BSpline2D) {
	var err error
	bs, err = NewBSpline2D(size, spacing, origin)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(seed))
	p := make([]float64, bs.NumberOfParameters())
	for i := range p {
		p[i] = 0.3 * (2*rng.Float64() - 1) * spacing[i%2]
	}
	require.NoError(t, bs.SetParameters(p))
	return
}

// interiorPoints samples points whose whole 4x4 neighborhood lies inside the grid,
// kept away from knot lines by margin in lattice units
func interiorPoints(g ControlGrid, N int, seed int64, margin float64) (P *mat.Dense) {
	rng := rand.New(rand.NewSource(seed))
	P = mat.NewDense(N, 2, nil)
	for k := 0; k < N; k++ {
		for n := 0; n < 2; n++ {
			// floor(g) in [2, size-2]
			cells := g.Size[n] - 3
			tile := 2 + rng.Intn(cells)
			u := margin + (1-2*margin)*rng.Float64()
			P.Set(k, n, g.Origin[n]+(float64(tile)+u-1)*g.Spacing[n])
		}
	}
	return
}
