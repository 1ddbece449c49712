package bsl

import (
	"log"
	"math"
)

//attributePair is one ordered pair of distinct attributes.
type attributePair struct {
	a1, a2 int
}

//enumeratePairs lists ordered pairs of distinct attributes, the first attribute changing slowest.
func enumeratePairs(w int) []attributePair {
	pairs := make([]attributePair, 0, w*w)
	for a1 := 0; a1 < w; a1++ {
		for a2 := 0; a2 < w; a2++ {
			if a1 != a2 {
				pairs = append(pairs, attributePair{a1, a2})
			}
		}
	}
	return pairs
}

//scanPair sweeps the points in the order of the attribute a1 and returns the best circle for the pair.
//order is a stable argsort of the column a1. The circle of the best split found so far is the
//boundary: a point outside it triggers the evaluation of the current inside/outside class counts,
//and the new candidate circle is centered at the previous crossing point with the radius equal to
//half of the distance to the current one.
func scanPair(ds Dataset, a1, a2 int, totalCounts []int, order []int) CircleSplit {
	if a1 == a2 {
		log.Panicf("the pair uses attribute %d twice", a1)
	}

	countsInside := append([]int(nil), totalCounts...)
	countsOutside := make([]int, len(totalCounts))

	prevX, prevY := math.Inf(-1), math.Inf(-1)
	bestSplit := NewCircleSplit()

	for _, p := range order {
		v1, v2 := ds.Features.At(p, a1), ds.Features.At(p, a2)

		if bestSplit.squaredDistance(v1, v2) > bestSplit.R*bestSplit.R {
			// a crossing is scored only against a real, distinct previous point
			if !math.IsInf(prevX, -1) && (v1 != prevX || v2 != prevY) {
				currentSplitQuality := InformationGain(countsInside, countsOutside)
				if currentSplitQuality > bestSplit.SplitQuality {
					bestSplit = CircleSplit{
						AttX1:        a1,
						AttX2:        a2,
						AttName1:     ds.AttributeNames[a1],
						AttName2:     ds.AttributeNames[a2],
						X1:           prevX,
						X2:           prevY,
						R:            math.Hypot(v1-prevX, v2-prevY) / 2,
						SplitQuality: currentSplitQuality,
					}
				}
			}
			prevX, prevY = v1, v2
		}

		countsInside[ds.Classes[p]]--
		countsOutside[ds.Classes[p]]++
	}

	return bestSplit
}

//TheBestCircleSplit finds the best circular split over all ordered pairs of attributes.
//Pairs are scanned on threadsNum goroutines when threadsNum > 1; the result does not depend on it.
//Degenerate data gives an unbound split with zero quality, not an error.
func TheBestCircleSplit(ds Dataset, threadsNum int) (CircleSplit, *PairGrid, error) {
	if err := ds.Validate(); err != nil {
		return NewCircleSplit(), nil, err
	}

	w := ds.Width()
	grid := NewPairGrid(ds.AttributeNames)
	if ds.Height() == 0 || w < 2 {
		return NewCircleSplit(), grid, nil
	}

	totalCounts := ds.ClassCounts()

	orders := make([][]int, w)
	for q := 0; q < w; q++ {
		orders[q] = columnArgsort(ds.Features.ColView(q))
	}

	pairs := enumeratePairs(w)
	result := make([]CircleSplit, len(pairs))
	bestSplitFunc := func(slot int) CircleSplit {
		pair := pairs[slot]
		return scanPair(ds, pair.a1, pair.a2, totalCounts, orders[pair.a1])
	}

	if threadsNum <= 1 {
		for slot := range pairs {
			result[slot] = bestSplitFunc(slot)
		}
	} else {
		taskPool := NewPool(threadsNum)
		for slot := range pairs {
			taskPool.AddTask(&TaskFindBestSplit{result, slot, bestSplitFunc})
		}
		taskPool.Close()
		taskPool.WaitAll()
	}

	bestSplit := NewCircleSplit()
	for slot, currentSplit := range result {
		grid.set(pairs[slot].a1, pairs[slot].a2, currentSplit)
		if currentSplit.SplitQuality > bestSplit.SplitQuality {
			bestSplit = currentSplit
		}
	}

	return bestSplit, grid, nil
}

//FindCircleSplit finds the best circular split on one goroutine.
func FindCircleSplit(ds Dataset) (CircleSplit, error) {
	split, _, err := TheBestCircleSplit(ds, 1)
	return split, err
}
