package bspline

import "fmt"

/*
	Uniform cubic B-spline pieces on the unit knot interval.

	A point with fractional offset u inside knot interval [i, i+1) is influenced by
	the four control values at i-1, i, i+1, i+2. Offset -1 uses piece 0, offset 2
	uses piece 3:
		B0(u) = (1-u)^3 / 6
		B1(u) = (3u^3 - 6u^2 + 4) / 6
		B2(u) = (-3u^3 + 3u^2 + 3u + 1) / 6
		B3(u) = u^3 / 6
	The four pieces sum to one for every u (partition of unity).
*/

const (
	NumPieces = 4
	// MinOffset and MaxOffset bound the control offsets relative to floor(g)
	MinOffset = -1
	MaxOffset = 2
)

// OffsetToIndex maps a neighbor offset in [MinOffset, MaxOffset] to its basis piece.
func OffsetToIndex(offset int) (k int) {
	k = offset - MinOffset
	checkIndex(k)
	return
}

func checkIndex(k int) {
	if k < 0 || k >= NumPieces {
		panic(fmt.Errorf("cubic B-spline piece index out of range: k = %d, valid = [0,%d]", k, NumPieces-1))
	}
}

func Basis(k int, u float64) (b float64) {
	switch k {
	case 0:
		um := 1 - u
		b = um * um * um / 6
	case 1:
		b = (3*u*u*u - 6*u*u + 4) / 6
	case 2:
		b = (-3*u*u*u + 3*u*u + 3*u + 1) / 6
	case 3:
		b = u * u * u / 6
	default:
		checkIndex(k)
	}
	return
}

func BasisDeriv(k int, u float64) (bd float64) {
	switch k {
	case 0:
		um := 1 - u
		bd = -um * um / 2
	case 1:
		bd = (3*u*u - 4*u) / 2
	case 2:
		bd = (-3*u*u + 2*u + 1) / 2
	case 3:
		bd = u * u / 2
	default:
		checkIndex(k)
	}
	return
}

func BasisSecondDeriv(k int, u float64) (bs float64) {
	switch k {
	case 0:
		bs = 1 - u
	case 1:
		bs = 3*u - 2
	case 2:
		bs = 1 - 3*u
	case 3:
		bs = u
	default:
		checkIndex(k)
	}
	return
}

// Weights evaluates all four pieces at u, indexed by piece
func Weights(u float64) (w [NumPieces]float64) {
	for k := range w {
		w[k] = Basis(k, u)
	}
	return
}

func DerivWeights(u float64) (w [NumPieces]float64) {
	for k := range w {
		w[k] = BasisDeriv(k, u)
	}
	return
}

func SecondDerivWeights(u float64) (w [NumPieces]float64) {
	for k := range w {
		w[k] = BasisSecondDeriv(k, u)
	}
	return
}
