package FFD2D

import "errors"

var (
	ErrInvalidGrid     = errors.New("FFD2D: grid size must be >= 1 and spacing > 0 along each axis")
	ErrParameterLength = errors.New("FFD2D: parameter vector length must equal 2*nx*ny")
	ErrInvalidAxes     = errors.New("FFD2D: derivative axes must each be 1 or 2")
	ErrPointDimension  = errors.New("FFD2D: points must have one row per point and 2 columns")
	ErrRecordType      = errors.New("FFD2D: record type is not " + RecordType)
)
