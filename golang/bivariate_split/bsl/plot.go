package bsl

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const plotPadding = 50

var plotColours = []color.Color{
	color.RGBA{0, 0, 255, 255},
	color.RGBA{255, 0, 0, 255},
	color.RGBA{0, 255, 0, 255},
	color.RGBA{0, 255, 255, 255},
	color.RGBA{255, 175, 175, 255},
	color.RGBA{255, 0, 255, 255},
	color.RGBA{255, 200, 0, 255},
	color.RGBA{128, 0, 0, 255},
	color.RGBA{0, 128, 0, 255},
	color.RGBA{255, 255, 255, 255},
}

//axisRange returns the minimum and the span of a column, the span is 1 for a constant column.
func axisRange(values []float64) (minV, maxV, span float64) {
	minV, maxV = floats.Min(values), floats.Max(values)
	span = maxV - minV
	if span == 0 {
		span = 1
	}
	return
}

//PlotSplit draws the points of the split's attribute pair coloured by class together with the circle.
//Neither the dataset nor the split is modified.
func PlotSplit(ds Dataset, split CircleSplit, width, height, decimalPlaces int) (*gg.Context, error) {
	if !split.IsBound() {
		return nil, errors.Wrap(ErrInvalidArgument, "nothing to plot for a split without attributes")
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	if ds.Height() == 0 {
		return nil, errors.Wrap(ErrInvalidDataset, "nothing to plot for an empty dataset")
	}
	if split.AttX1 >= ds.Width() || split.AttX2 >= ds.Width() {
		return nil, errors.Wrapf(ErrInvalidArgument, "the split uses attributes %d,%d but the dataset has %d",
			split.AttX1, split.AttX2, ds.Width())
	}
	if width <= 2*plotPadding || height <= 2*plotPadding {
		return nil, errors.Wrapf(ErrInvalidArgument, "the picture %dx%d is too small", width, height)
	}

	xs := mat.Col(nil, split.AttX1, ds.Features)
	ys := mat.Col(nil, split.AttX2, ds.Features)
	minX, maxX, spanX := axisRange(xs)
	minY, maxY, spanY := axisRange(ys)

	innerW := float64(width - 2*plotPadding)
	innerH := float64(height - 2*plotPadding)
	getX := func(v float64) float64 { return (v-minX)/spanX*innerW + plotPadding }
	getY := func(v float64) float64 { return (maxY-v)/spanY*innerH + plotPadding }

	dc := gg.NewContext(width, height)
	dc.SetRGB(0.93, 0.93, 0.93)
	dc.Clear()

	for p := range xs {
		dc.SetColor(plotColours[ds.Classes[p]%len(plotColours)])
		dc.DrawCircle(getX(xs[p]), getY(ys[p]), 4)
		dc.Fill()
	}

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1.5)
	dc.DrawEllipse(getX(split.X1), getY(split.X2), split.R/spanX*innerW, split.R/spanY*innerH)
	dc.Stroke()

	dc.DrawString(fmt.Sprintf("X1: %s Range: %.*f,%.*f X2: %s Range: %.*f,%.*f",
		split.AttName1, decimalPlaces, minX, decimalPlaces, maxX,
		split.AttName2, decimalPlaces, minY, decimalPlaces, maxY), 10, 20)
	dc.DrawString(split.Describe(true, decimalPlaces), 10, float64(height-20))

	return dc, nil
}

//SavePlot draws the split and writes the picture to a png file.
func SavePlot(ds Dataset, split CircleSplit, width, height, decimalPlaces int, fileName string) error {
	dc, err := PlotSplit(ds, split, width, height, decimalPlaces)
	if err != nil {
		return err
	}
	return errors.Wrapf(dc.SavePNG(fileName), "save %s", fileName)
}
