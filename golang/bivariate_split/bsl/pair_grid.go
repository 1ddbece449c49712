package bsl

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

//Components of a grid cell.
const (
	gridX1 = iota
	gridX2
	gridR
	gridQuality
	gridDepth
)

//PairGrid keeps the best circle of every ordered attribute pair in a (w, w, 4) tensor.
//A cell holds the center, the radius and the quality; cells of the diagonal stay zero.
type PairGrid struct {
	attributeNames []string
	values         *tensor.Dense // nil for a dataset without attributes
}

//NewPairGrid allocates a zero grid for the attributes.
func NewPairGrid(attributeNames []string) *PairGrid {
	grid := &PairGrid{attributeNames: attributeNames}
	w := len(attributeNames)
	if w > 0 {
		grid.values = tensor.New(tensor.WithShape(w, w, gridDepth), tensor.Of(tensor.Float64))
	}
	return grid
}

//Width is the number of attributes.
func (grid *PairGrid) Width() int {
	return len(grid.attributeNames)
}

func (grid *PairGrid) set(a1, a2 int, split CircleSplit) {
	for component, val := range [gridDepth]float64{split.X1, split.X2, split.R, split.SplitQuality} {
		HandleError(grid.values.SetAt(val, a1, a2, component))
	}
}

func (grid *PairGrid) at(a1, a2, component int) float64 {
	val, err := grid.values.At(a1, a2, component)
	HandleError(err)
	return val.(float64)
}

//Quality returns the best quality of the pair.
func (grid *PairGrid) Quality(a1, a2 int) float64 {
	return grid.at(a1, a2, gridQuality)
}

//Candidate returns the best split of the pair, unbound when the pair has none.
func (grid *PairGrid) Candidate(a1, a2 int) CircleSplit {
	quality := grid.Quality(a1, a2)
	if a1 == a2 || quality <= 0 {
		return NewCircleSplit()
	}
	return CircleSplit{
		AttX1:        a1,
		AttX2:        a2,
		AttName1:     grid.attributeNames[a1],
		AttName2:     grid.attributeNames[a2],
		X1:           grid.at(a1, a2, gridX1),
		X2:           grid.at(a1, a2, gridX2),
		R:            grid.at(a1, a2, gridR),
		SplitQuality: quality,
	}
}

//Table renders qualities as a text table, the first attribute of a pair by rows.
func (grid *PairGrid) Table(decimalPlaces int) string {
	tw := table.NewWriter()

	header := table.Row{"x1 \\ x2"}
	for _, name := range grid.attributeNames {
		header = append(header, name)
	}
	tw.AppendHeader(header)

	for a1, name := range grid.attributeNames {
		row := table.Row{name}
		for a2 := range grid.attributeNames {
			if a1 == a2 {
				row = append(row, "-")
			} else {
				row = append(row, fmt.Sprintf("%.*f", decimalPlaces, grid.Quality(a1, a2)))
			}
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}

//Dense flattens the grid into a (w*w, 4) matrix, row a1*w+a2 for the pair (a1, a2).
func (grid *PairGrid) Dense() *mat.Dense {
	if grid.values == nil {
		return nil
	}
	w := grid.Width()
	data := append([]float64(nil), grid.values.Data().([]float64)...)
	return mat.NewDense(w*w, gridDepth, data)
}

//WriteNpy dumps the flattened grid in the npy format.
func (grid *PairGrid) WriteNpy(dst io.Writer) error {
	dense := grid.Dense()
	if dense == nil {
		return errors.Wrap(ErrInvalidArgument, "the grid has no attributes")
	}
	return errors.Wrap(npyio.Write(dst, dense), "write pair grid")
}
