package transform

import (
	"gonum.org/v1/gonum/mat"
)

/*
Transforms map a batch of points, stored one per row of an N x Dimension()
matrix, to their transformed locations. Parametric transforms additionally
expose the flat vector of free parameters an optimizer adjusts.
*/
type Transform interface {
	TransformPoints(points mat.Matrix) (*mat.Dense, error)
	// JacobianMatrix returns d(transformed)/d(position) at each point
	JacobianMatrix(points mat.Matrix) ([]*mat.Dense, error)
	Dimension() int
}

type ParametricTransform interface {
	Transform
	Parameters() []float64
	SetParameters(p []float64) error
	NumberOfParameters() int
}
