package FFD2D

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
)

const RecordType = "BSpline2D"

// Record is the plain exchange form of a BSpline2D, stored as YAML (or JSON)
type Record struct {
	Type        string     `json:"type"`
	GridSize    [2]int     `json:"gridSize"`
	GridSpacing [2]float64 `json:"gridSpacing"`
	GridOrigin  [2]float64 `json:"gridOrigin"`
	Parameters  []float64  `json:"parameters"`
}

func (bs *BSpline2D) Record() (r Record) {
	r = Record{
		Type:        RecordType,
		GridSize:    bs.grid.Size,
		GridSpacing: bs.grid.Spacing,
		GridOrigin:  bs.grid.Origin,
		Parameters:  bs.Parameters(),
	}
	return
}

// NewBSpline2DFromRecord validates the type tag, grid and parameter length before building the model
func NewBSpline2DFromRecord(r Record) (bs *BSpline2D, err error) {
	if r.Type != RecordType {
		err = fmt.Errorf("%w: got %q", ErrRecordType, r.Type)
		return
	}
	if bs, err = NewBSpline2D(r.GridSize, r.GridSpacing, r.GridOrigin); err != nil {
		bs = nil
		return
	}
	if err = bs.SetParameters(r.Parameters); err != nil {
		bs = nil
		return
	}
	return
}

func (bs *BSpline2D) Marshal() (data []byte, err error) {
	return yaml.Marshal(bs.Record())
}

func Unmarshal(data []byte) (bs *BSpline2D, err error) {
	var (
		r Record
	)
	if err = yaml.Unmarshal(data, &r); err != nil {
		err = fmt.Errorf("unable to parse %s record: %w", RecordType, err)
		return
	}
	return NewBSpline2DFromRecord(r)
}

func (bs *BSpline2D) WriteFile(fileName string) (err error) {
	var (
		data []byte
	)
	if data, err = bs.Marshal(); err != nil {
		return
	}
	return os.WriteFile(fileName, data, 0644)
}

func ReadFile(fileName string) (bs *BSpline2D, err error) {
	var (
		data []byte
	)
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	return Unmarshal(data)
}
