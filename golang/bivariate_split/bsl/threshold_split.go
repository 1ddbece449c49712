package bsl

import "fmt"

//ThresholdSplit is a fitted univariate split: points with the attribute Att below Threshold
//form the first subset.
type ThresholdSplit struct {
	Att          int // -1 when no split was found
	AttName      string
	Threshold    float64
	SplitQuality float64
}

//NewThresholdSplit creates an empty split with no attribute bound.
func NewThresholdSplit() ThresholdSplit {
	return ThresholdSplit{Att: -1}
}

//TheBestThresholdSplit scans every attribute for the threshold with the highest information gain.
//Thresholds lie in the middle between neighbouring distinct values.
func TheBestThresholdSplit(ds Dataset) (ThresholdSplit, error) {
	if err := ds.Validate(); err != nil {
		return NewThresholdSplit(), err
	}

	bestSplit := NewThresholdSplit()
	h := ds.Height()
	if h == 0 {
		return bestSplit, nil
	}
	totalCounts := ds.ClassCounts()

	for q := 0; q < ds.Width(); q++ {
		featuresAs := columnArgsort(ds.Features.ColView(q))
		countsLeft := make([]int, ds.NumClasses)
		countsRight := append([]int(nil), totalCounts...)

		for hInd := 0; hInd < h-1; hInd++ {
			class := ds.Classes[featuresAs[hInd]]
			countsLeft[class]++
			countsRight[class]--

			currentValue := ds.Features.At(featuresAs[hInd], q)
			nextValue := ds.Features.At(featuresAs[hInd+1], q)
			if currentValue == nextValue {
				continue
			}

			currentSplitQuality := InformationGain(countsLeft, countsRight)
			if currentSplitQuality > bestSplit.SplitQuality {
				bestSplit = ThresholdSplit{
					Att:          q,
					AttName:      ds.AttributeNames[q],
					Threshold:    (currentValue + nextValue) / 2,
					SplitQuality: currentSplitQuality,
				}
			}
		}
	}
	return bestSplit, nil
}

//BelowThreshold decides whether the point belongs to the first branch.
func (split ThresholdSplit) BelowThreshold(point []float64) bool {
	if split.Att < 0 {
		return false
	}
	return point[split.Att] < split.Threshold
}

//Describe returns the condition of one branch.
func (split ThresholdSplit) Describe(below bool, decimalPlaces int) string {
	name := split.AttName
	if name == "" {
		name = fmt.Sprintf("f_%d", split.Att)
	}
	op := ">="
	if below {
		op = "<"
	}
	return fmt.Sprintf("%s %s %.*f", name, op, decimalPlaces, split.Threshold)
}
