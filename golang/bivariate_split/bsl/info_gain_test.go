package bsl

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func TestInformationGainPerfectSeparation(t *testing.T) {
	if got := InformationGain([]int{3, 0}, []int{0, 3}); math.Abs(got-1) > 1e-12 {
		t.Fatalf("gain = %g, want 1", got)
	}
	total := []int{3, 3}
	if got, want := InformationGain([]int{3, 0}, []int{0, 3}), ClassEntropy(total); math.Abs(got-want) > 1e-12 {
		t.Fatalf("gain %g differs from the total entropy %g", got, want)
	}
}

func TestInformationGainSameProportions(t *testing.T) {
	if got := InformationGain([]int{2, 2}, []int{1, 1}); math.Abs(got) > 1e-12 {
		t.Fatalf("gain = %g, want 0", got)
	}
	if got := InformationGain([]int{4, 2, 6}, []int{2, 1, 3}); math.Abs(got) > 1e-12 {
		t.Fatalf("gain = %g, want 0", got)
	}
}

func TestInformationGainEmptySides(t *testing.T) {
	if got := InformationGain([]int{0, 0}, []int{0, 0}); got != 0 {
		t.Fatalf("gain of nothing = %g", got)
	}
	if got := InformationGain([]int{2, 1}, []int{0, 0}); got != 0 {
		t.Fatalf("gain with an empty right side = %g", got)
	}
	if got := InformationGain([]int{0, 0}, []int{5, 7}); got != 0 {
		t.Fatalf("gain with an empty left side = %g", got)
	}
}

func TestInformationGainSymmetricAndBounded(t *testing.T) {
	rnd := rand.New(rand.NewSource(17))
	numClasses := 3
	upper := math.Log2(float64(numClasses))

	for iter := 0; iter < 500; iter++ {
		left := make([]int, numClasses)
		right := make([]int, numClasses)
		for class := range left {
			left[class] = rnd.Intn(6)
			right[class] = rnd.Intn(6)
		}
		direct := InformationGain(left, right)
		swapped := InformationGain(right, left)
		if math.Abs(direct-swapped) > 1e-12 {
			t.Fatalf("gain(%v, %v) = %g but swapped = %g", left, right, direct, swapped)
		}
		if direct < 0 || direct > upper+1e-12 {
			t.Fatalf("gain(%v, %v) = %g outside [0, %g]", left, right, direct, upper)
		}
	}
}

func bitsEntropy(counts []int) float64 {
	sum := 0
	for _, c := range counts {
		sum += c
	}
	p := make([]float64, len(counts))
	for ind, c := range counts {
		p[ind] = float64(c) / float64(sum)
	}
	return stat.Entropy(p) / math.Ln2
}

func TestInformationGainIsEntropyReduction(t *testing.T) {
	left := []int{5, 1, 2}
	right := []int{1, 4, 0}
	total := []int{6, 5, 2}

	nLeft, nRight, nTotal := 8.0, 5.0, 13.0
	want := bitsEntropy(total) - nLeft/nTotal*bitsEntropy(left) - nRight/nTotal*bitsEntropy(right)

	if got := InformationGain(left, right); math.Abs(got-want) > 1e-12 {
		t.Fatalf("gain = %g, want %g", got, want)
	}
}

func TestClassEntropy(t *testing.T) {
	if got := ClassEntropy([]int{1, 1}); math.Abs(got-1) > 1e-12 {
		t.Fatalf("entropy of [1 1] = %g", got)
	}
	if got := ClassEntropy([]int{4, 0}); got != 0 {
		t.Fatalf("entropy of [4 0] = %g", got)
	}
	if got := ClassEntropy(nil); got != 0 {
		t.Fatalf("entropy of nothing = %g", got)
	}
	if got, want := ClassEntropy([]int{3, 1, 2}), bitsEntropy([]int{3, 1, 2}); math.Abs(got-want) > 1e-12 {
		t.Fatalf("entropy = %g, want %g", got, want)
	}
}
