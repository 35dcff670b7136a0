package transform

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goffd/utils"
)

var (
	ErrParameterLength = errors.New("transform: parameter vector length mismatch")
	ErrPointDimension  = errors.New("transform: points must have one row per point and 2 columns")
)

// Translation2D shifts every point by (Tx, Ty), the two parameters of the transform
type Translation2D struct {
	Tx, Ty float64
}

func NewTranslation2D(tx, ty float64) (tr *Translation2D) {
	return &Translation2D{Tx: tx, Ty: ty}
}

func (tr *Translation2D) Dimension() int { return 2 }

func (tr *Translation2D) NumberOfParameters() int { return 2 }

func (tr *Translation2D) Parameters() []float64 { return []float64{tr.Tx, tr.Ty} }

func (tr *Translation2D) SetParameters(p []float64) (err error) {
	if len(p) != 2 {
		err = fmt.Errorf("%w: got %d, need 2", ErrParameterLength, len(p))
		return
	}
	tr.Tx, tr.Ty = p[0], p[1]
	return
}

func (tr *Translation2D) TransformPoints(points mat.Matrix) (R *mat.Dense, err error) {
	if utils.IsNilMatrix(points) {
		err = fmt.Errorf("%w: points are nil", ErrPointDimension)
		return
	}
	if utils.IsEmpty(points) {
		return &mat.Dense{}, nil
	}
	nr, nc := points.Dims()
	if nc != 2 {
		err = fmt.Errorf("%w: got %d columns", ErrPointDimension, nc)
		return
	}
	R = mat.NewDense(nr, 2, nil)
	for i := 0; i < nr; i++ {
		R.Set(i, 0, points.At(i, 0)+tr.Tx)
		R.Set(i, 1, points.At(i, 1)+tr.Ty)
	}
	return
}

func (tr *Translation2D) JacobianMatrix(points mat.Matrix) (J []*mat.Dense, err error) {
	if utils.IsNilMatrix(points) {
		err = fmt.Errorf("%w: points are nil", ErrPointDimension)
		return
	}
	if utils.IsEmpty(points) {
		return
	}
	nr, nc := points.Dims()
	if nc != 2 {
		err = fmt.Errorf("%w: got %d columns", ErrPointDimension, nc)
		return
	}
	J = make([]*mat.Dense, nr)
	for i := range J {
		J[i] = mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	}
	return
}
