package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goffd/FFD2D"
)

func writeEvalCase(t *testing.T, query string, axes string) (me *ModelEval) {
	dir := t.TempDir()
	modelFile := filepath.Join(dir, "model.yaml")
	bs, err := FFD2D.NewBSpline2D([2]int{3, 3}, [2]float64{1, 1}, [2]float64{0, 0})
	require.NoError(t, err)
	bs.SetDisplacement(2, 2, 1.5, -0.5)
	require.NoError(t, bs.WriteFile(modelFile))
	input := `
Title: Eval Test
ModelFile: ` + modelFile + `
Query: ` + query + `
Axes: ` + axes + `
Points:
  - [1, 1]
  - [0, 1]
`
	me = &ModelEval{
		ICFile:         filepath.Join(dir, "run.yaml"),
		ParallelDegree: 2,
	}
	require.NoError(t, os.WriteFile(me.ICFile, []byte(input), 0644))
	return
}

func TestRunEvalTransform(t *testing.T) {
	me := writeEvalCase(t, "transform", "[1, 1]")
	var out bytes.Buffer
	require.NoError(t, RunEval(me, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	// Vertex (2,2) weighs 4/9 at its own location, 1/9 at the axis neighbor (1,2)
	assert.Equal(t, "0 1.66666666666667 0.777777777777778", lines[0])
	assert.Equal(t, "1 0.166666666666667 0.944444444444444", lines[1])
}

func TestRunEvalQueries(t *testing.T) {
	for _, q := range []string{"jacobian", "parametric", "second", "curvature", "bending", "determinant"} {
		me := writeEvalCase(t, q, "[1, 2]")
		var out bytes.Buffer
		require.NoErrorf(t, RunEval(me, &out), "query %s", q)
		assert.NotEmpty(t, out.String(), "query %s", q)
		if q == "parametric" {
			// Two points, one line per output dimension
			assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), 4)
		}
	}
}

func TestRunEvalErrors(t *testing.T) {
	me := writeEvalCase(t, "second", "[3, 1]")
	assert.Error(t, RunEval(me, &bytes.Buffer{}))
	me = writeEvalCase(t, "transform", "[1, 1]")
	me.ModelFile = filepath.Join(t.TempDir(), "missing.yaml")
	assert.Error(t, RunEval(me, &bytes.Buffer{}))
	me.ICFile = filepath.Join(t.TempDir(), "missing.yaml")
	assert.Error(t, RunEval(me, &bytes.Buffer{}))
}

func TestRunGrid(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "grid.yaml")
	var out bytes.Buffer
	require.NoError(t, RunGrid(&GridSpec{
		Size:       []int{3, 4},
		Spacing:    []float64{1, 2},
		Origin:     []float64{-1, 0},
		OutputFile: fileName,
	}, &out))
	assert.Contains(t, out.String(), "24 parameters")
	bs, err := FFD2D.ReadFile(fileName)
	require.NoError(t, err)
	assert.Equal(t, [2]int{3, 4}, bs.Grid().Size)
	assert.Equal(t, make([]float64, 24), bs.Parameters())

	out.Reset()
	require.NoError(t, RunGrid(&GridSpec{
		Spacing: []float64{2, 1},
		Cover:   []float64{0, -2, 10, 3},
	}, &out))
	bs, err = FFD2D.Unmarshal(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, [2]int{9, 9}, bs.Grid().Size)

	bad := []*GridSpec{
		{Size: []int{0, 1}, Spacing: []float64{1, 1}, Origin: []float64{0, 0}},
		{Spacing: []float64{1, 1}, Cover: []float64{0, 1}},
		{Size: []int{3}, Spacing: []float64{1, 1}, Origin: []float64{0, 0}},
		{Size: []int{3, 3}, Spacing: []float64{1}, Origin: []float64{0, 0}},
		{Size: []int{3, 3}, Spacing: []float64{1, 1}, Origin: []float64{0, 0, 0}},
	}
	for i, gs := range bad {
		assert.Errorf(t, RunGrid(gs, &out), "case %d", i)
	}
}

func TestGridCmdFlags(t *testing.T) {
	flags := GridCmd.Flags()
	require.NoError(t, flags.Parse([]string{"-n", "3,5", "-s", "0.5,2", "-c", "0,-1,4,2.5"}))
	size, err := flags.GetIntSlice("size")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5}, size)
	spacing, err := flags.GetFloat64Slice("spacing")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 2}, spacing)
	origin, err := flags.GetFloat64Slice("origin")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, origin)
	cover, err := flags.GetFloat64Slice("cover")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, -1, 4, 2.5}, cover)
	assert.Error(t, flags.Parse([]string{"-n", "3,x"}))
}

func TestRootFlagsBound(t *testing.T) {
	require.NoError(t, rootCmd.PersistentFlags().Set("parallelDegree", "3"))
	assert.Equal(t, 3, viper.GetInt("parallelDegree"))
	require.NoError(t, rootCmd.PersistentFlags().Set("verbose", "true"))
	assert.True(t, viper.GetBool("verbose"))
	require.NoError(t, rootCmd.PersistentFlags().Set("parallelDegree", "0"))
	require.NoError(t, rootCmd.PersistentFlags().Set("verbose", "false"))
}
