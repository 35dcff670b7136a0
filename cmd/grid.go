/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/goffd/FFD2D"
)

type GridSpec struct {
	Size            []int
	Spacing, Origin []float64
	Cover           []float64 // xmin, ymin, xmax, ymax; overrides Size and Origin when set
	OutputFile      string
}

// GridCmd represents the grid command
var GridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Create a zero displacement B-spline model and write its record",
	Long: `
Writes a BSpline2D record with all displacements zero, either from an explicit
grid size and origin or sized to cover a bounding box.

goffd grid -n 3,3 -s 1,1 -o 0,0 -O model.yaml
goffd grid -c 0,0,10,5 -s 2,1 -O model.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			gs  = &GridSpec{}
		)
		gs.Size, _ = cmd.Flags().GetIntSlice("size")
		gs.Spacing, _ = cmd.Flags().GetFloat64Slice("spacing")
		gs.Origin, _ = cmd.Flags().GetFloat64Slice("origin")
		gs.Cover, _ = cmd.Flags().GetFloat64Slice("cover")
		gs.OutputFile, _ = cmd.Flags().GetString("outputFile")
		if err = RunGrid(gs, os.Stdout); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(GridCmd)
	GridCmd.Flags().IntSliceP("size", "n", []int{4, 4}, "number of control vertices along x,y")
	GridCmd.Flags().Float64SliceP("spacing", "s", []float64{1, 1}, "vertex spacing along x,y")
	GridCmd.Flags().Float64SliceP("origin", "o", []float64{0, 0}, "world coordinate of vertex (1,1)")
	GridCmd.Flags().Float64SliceP("cover", "c", nil, "bounding box xmin,ymin,xmax,ymax the grid must fully support")
	GridCmd.Flags().StringP("outputFile", "O", "", "file to write the model record to, stdout if empty")
}

func RunGrid(gs *GridSpec, out io.Writer) (err error) {
	var (
		g    FFD2D.ControlGrid
		data []byte
	)
	switch {
	case len(gs.Spacing) != 2:
		return fmt.Errorf("spacing needs 2 values, got %v", gs.Spacing)
	case len(gs.Cover) != 0 && len(gs.Cover) != 4:
		return fmt.Errorf("cover box needs 4 values, got %v", gs.Cover)
	case len(gs.Cover) == 0 && len(gs.Size) != 2:
		return fmt.Errorf("size needs 2 values, got %v", gs.Size)
	case len(gs.Cover) == 0 && len(gs.Origin) != 2:
		return fmt.Errorf("origin needs 2 values, got %v", gs.Origin)
	}
	spacing := [2]float64{gs.Spacing[0], gs.Spacing[1]}
	if len(gs.Cover) != 0 {
		g, err = FFD2D.NewControlGridCovering(
			[2]float64{gs.Cover[0], gs.Cover[1]}, [2]float64{gs.Cover[2], gs.Cover[3]}, spacing)
	} else {
		g, err = FFD2D.NewControlGrid([2]int{gs.Size[0], gs.Size[1]}, spacing,
			[2]float64{gs.Origin[0], gs.Origin[1]})
	}
	if err != nil {
		return
	}
	bs := FFD2D.NewBSpline2DFromGrid(g)
	if len(gs.OutputFile) == 0 {
		if data, err = bs.Marshal(); err != nil {
			return
		}
		_, err = out.Write(data)
		return
	}
	if err = bs.WriteFile(gs.OutputFile); err != nil {
		return
	}
	fmt.Fprintf(out, "wrote %v grid, %d parameters, to %s\n", g.Size, bs.NumberOfParameters(), gs.OutputFile)
	return
}
