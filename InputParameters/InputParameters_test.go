package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputParameters2D(t *testing.T) {
	fileInput := []byte(`
Title: Test Case
ModelFile: model.yaml
Query: Second
Axes: [1, 2]
ParallelDegree: 4
Points:
  - [0.5, 1.5]
  - [2, -3.25]
`)
	var ip InputParameters2D
	require.NoError(t, ip.Parse(fileInput))
	assert.Equal(t, "Test Case", ip.Title)
	assert.Equal(t, "model.yaml", ip.ModelFile)
	assert.Equal(t, [2]int{1, 2}, ip.Axes)
	assert.Equal(t, 4, ip.ParallelDegree)
	assert.Equal(t, [][2]float64{{0.5, 1.5}, {2, -3.25}}, ip.Points)
	require.NoError(t, ip.Validate())
	ip.Print()

	ip.Axes = [2]int{0, 1}
	assert.Error(t, ip.Validate())
	ip.Query = "curvature"
	assert.NoError(t, ip.Validate())
	ip.Query = "resample"
	assert.Error(t, ip.Validate())
	ip.Query = "transform"
	ip.ModelFile = ""
	assert.Error(t, ip.Validate())
}

func TestNewQueryType(t *testing.T) {
	for _, q := range QueryTypes {
		qt, err := NewQueryType(" " + string(q) + " ")
		require.NoError(t, err)
		assert.Equal(t, q, qt)
	}
	_, err := NewQueryType("bogus")
	assert.Error(t, err)
}
