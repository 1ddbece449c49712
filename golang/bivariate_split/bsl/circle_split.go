package bsl

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

//CircleSplit is a fitted bivariate split: points of the attribute pair (AttX1, AttX2) lying
//strictly inside the circle with the center (X1, X2) and the radius R form the first subset.
type CircleSplit struct {
	AttX1, AttX2       int // -1 when no split was found
	AttName1, AttName2 string
	X1, X2             float64
	R                  float64
	SplitQuality       float64 // the information gain in bits
}

//NewCircleSplit creates an empty split with no attributes bound.
func NewCircleSplit() CircleSplit {
	return CircleSplit{AttX1: -1, AttX2: -1}
}

//IsBound returns whether the split references a pair of attributes.
func (split CircleSplit) IsBound() bool {
	return split.AttX1 >= 0 && split.AttX2 >= 0
}

//squaredDistance is the squared euclidean distance from (v1, v2) to the center.
func (split CircleSplit) squaredDistance(v1, v2 float64) float64 {
	d1 := v1 - split.X1
	d2 := v2 - split.X2
	return d1*d1 + d2*d2
}

//InsideSplit decides whether the point belongs to the first branch.
func (split CircleSplit) InsideSplit(point []float64) bool {
	if !split.IsBound() {
		return false
	}
	return split.squaredDistance(point[split.AttX1], point[split.AttX2]) < split.R*split.R
}

//Quality returns the information gain of the split.
func (split CircleSplit) Quality() float64 {
	return split.SplitQuality
}

//Describe returns the condition of one branch with numbers rounded to decimalPlaces.
func (split CircleSplit) Describe(inside bool, decimalPlaces int) string {
	side := "outside"
	if inside {
		side = "inside"
	}
	return fmt.Sprintf("Attributes: %s,%s %s circle with center (%.*f,%.*f) and radius %.*f",
		split.attributeName(split.AttX1, split.AttName1), split.attributeName(split.AttX2, split.AttName2), side,
		decimalPlaces, split.X1, decimalPlaces, split.X2, decimalPlaces, split.R)
}

func (split CircleSplit) attributeName(att int, name string) string {
	switch {
	case name != "":
		return name
	case att < 0:
		return "-"
	default:
		return fmt.Sprintf("f_%d", att)
	}
}

//Save writes the split to a json file.
func (split CircleSplit) Save(fileName string) error {
	modelByteRepr, err := json.MarshalIndent(split, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal split")
	}
	return errors.Wrapf(os.WriteFile(fileName, modelByteRepr, 0o644), "write %s", fileName)
}

//LoadCircleSplit reads a split saved by Save.
func LoadCircleSplit(fileName string) (split CircleSplit, err error) {
	source, err := os.Open(fileName)
	if err != nil {
		return CircleSplit{}, errors.Wrapf(err, "open %s", fileName)
	}
	defer func() { HandleError(source.Close()) }()

	if err := json.NewDecoder(source).Decode(&split); err != nil {
		return CircleSplit{}, errors.Wrapf(err, "decode %s", fileName)
	}
	return split, nil
}
