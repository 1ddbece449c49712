package bsl

import (
	"log"
	"math"
)

//log2 is the natural logarithm of 2
var log2 = math.Log(2)

//lnFunc is the n*ln(n) term of the entropy, zero for empty classes.
func lnFunc(num int) float64 {
	if num <= 0 {
		return 0
	}
	return float64(num) * math.Log(float64(num))
}

//InformationGain computes the base-2 information gain of splitting the union of
//two class count vectors into these two parts.
func InformationGain(leftCounts, rightCounts []int) float64 {
	if len(leftCounts) != len(rightCounts) {
		log.Panicf("class count vectors of different lengths %d and %d", len(leftCounts), len(rightCounts))
	}

	sumOfNLogNLeft, sumOfNLogNRight, sumOfNLogNTotal := 0.0, 0.0, 0.0
	sumLeft, sumRight := 0, 0
	for ind := range leftCounts {
		sumOfNLogNLeft -= lnFunc(leftCounts[ind])
		sumLeft += leftCounts[ind]
		sumOfNLogNRight -= lnFunc(rightCounts[ind])
		sumRight += rightCounts[ind]
		sumOfNLogNTotal -= lnFunc(leftCounts[ind] + rightCounts[ind])
	}
	sumTotal := sumLeft + sumRight
	if sumTotal <= 0 {
		return 0
	}

	gain := (sumOfNLogNTotal + lnFunc(sumTotal) -
		(sumOfNLogNLeft + lnFunc(sumLeft) + sumOfNLogNRight + lnFunc(sumRight))) /
		(float64(sumTotal) * log2)

	// rounding leaves tiny negatives when both parts have the same proportions
	return math.Max(gain, 0)
}

//ClassEntropy returns the entropy of a class count vector in bits.
func ClassEntropy(counts []int) float64 {
	sumOfNLogN, sum := 0.0, 0
	for _, count := range counts {
		sumOfNLogN -= lnFunc(count)
		sum += count
	}
	if sum <= 0 {
		return 0
	}
	return math.Max((sumOfNLogN+lnFunc(sum))/(float64(sum)*log2), 0)
}
