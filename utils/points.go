package utils

import (
	"gonum.org/v1/gonum/mat"
)

// NewPoints2D packs coordinate pairs into an N x 2 matrix, one point per row
func NewPoints2D(pairs [][2]float64) (P *mat.Dense) {
	if len(pairs) == 0 {
		return &mat.Dense{}
	}
	data := make([]float64, 2*len(pairs))
	for i, p := range pairs {
		data[2*i], data[2*i+1] = p[0], p[1]
	}
	P = mat.NewDense(len(pairs), 2, data)
	return
}

// PairsFromPoints2D is the inverse of NewPoints2D
func PairsFromPoints2D(P mat.Matrix) (pairs [][2]float64) {
	if IsEmpty(P) {
		return
	}
	nr, _ := P.Dims()
	pairs = make([][2]float64, nr)
	for i := range pairs {
		pairs[i] = [2]float64{P.At(i, 0), P.At(i, 1)}
	}
	return
}

// IsNilMatrix catches both a nil interface and a nil gonum pointer inside one
func IsNilMatrix(M mat.Matrix) bool {
	switch m := M.(type) {
	case nil:
		return true
	case *mat.Dense:
		return m == nil
	case *mat.VecDense:
		return m == nil
	}
	return false
}

// IsEmpty reports a zero sized matrix, including the zero value of mat.Dense and nil
func IsEmpty(M mat.Matrix) bool {
	if IsNilMatrix(M) {
		return true
	}
	if d, ok := M.(*mat.Dense); ok {
		return d.IsEmpty()
	}
	nr, nc := M.Dims()
	return nr == 0 || nc == 0
}
