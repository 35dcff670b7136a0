package InputParameters

import (
	"fmt"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/goffd/utils"
)

type QueryType string

const (
	QueryTransform   QueryType = "transform"
	QueryJacobian    QueryType = "jacobian"
	QueryParametric  QueryType = "parametric"
	QuerySecond      QueryType = "second"
	QueryCurvature   QueryType = "curvature"
	QueryBending     QueryType = "bending"
	QueryDeterminant QueryType = "determinant"
)

var QueryTypes = []QueryType{QueryTransform, QueryJacobian, QueryParametric,
	QuerySecond, QueryCurvature, QueryBending, QueryDeterminant}

func NewQueryType(label string) (qt QueryType, err error) {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, q := range QueryTypes {
		if string(q) == label {
			qt = q
			return
		}
	}
	err = fmt.Errorf("unknown query type %q, valid types are %v", label, QueryTypes)
	return
}

// Parameters obtained from the YAML input file of an evaluation run
type InputParameters2D struct {
	Title          string       `json:"Title"`
	ModelFile      string       `json:"ModelFile"`
	Query          string       `json:"Query"`
	Axes           [2]int       `json:"Axes"` // Only used by the "second" query
	Points         [][2]float64 `json:"Points"`
	ParallelDegree int          `json:"ParallelDegree"`
}

func (ip *InputParameters2D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters2D) Validate() (err error) {
	var qt QueryType
	if len(ip.ModelFile) == 0 {
		return fmt.Errorf("ModelFile is required")
	}
	if qt, err = NewQueryType(ip.Query); err != nil {
		return
	}
	if qt == QuerySecond {
		for _, ax := range ip.Axes {
			if ax != 1 && ax != 2 {
				return fmt.Errorf("Axes must each be 1 or 2 for a second derivative query, got %v", ip.Axes)
			}
		}
	}
	if !utils.IsFinite(ip.Points) {
		return fmt.Errorf("Points contain NaN or Inf values")
	}
	return
}

func (ip *InputParameters2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Model File\n", ip.ModelFile)
	fmt.Printf("[%s]\t\t= Query\n", ip.Query)
	if qt, _ := NewQueryType(ip.Query); qt == QuerySecond {
		fmt.Printf("%v\t\t\t= Axes\n", ip.Axes)
	}
	fmt.Printf("[%d]\t\t\t= Number of Points\n", len(ip.Points))
	fmt.Printf("[%d]\t\t\t= Parallel Degree\n", ip.ParallelDegree)
}
