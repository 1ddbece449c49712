package bsl

import "github.com/pkg/errors"

//Splitter is a split strategy used by a tree builder: it searches a split on a dataset,
//routes points and describes its branches.
type Splitter interface {
	//FindSplit searches the best split of the dataset and keeps it.
	FindSplit(ds Dataset) error
	//FirstSubset decides whether the point goes to the first branch.
	FirstSubset(point []float64) bool
	//SplitQuality returns the information gain of the split found.
	SplitQuality() float64
	//Description describes the condition of a branch.
	Description(firstSubset bool, decimalPlaces int) string
	//Attributes lists the attributes the split reads, nothing when no split was found.
	Attributes() []int
}

//CircleSplitter searches the best circle over pairs of numeric attributes.
type CircleSplitter struct {
	ThreadsNum int
	Split      CircleSplit
	Grid       *PairGrid
}

//NewCircleSplitter creates a splitter scanning pairs on threadsNum goroutines.
func NewCircleSplitter(threadsNum int) *CircleSplitter {
	return &CircleSplitter{ThreadsNum: threadsNum, Split: NewCircleSplit()}
}

func (s *CircleSplitter) FindSplit(ds Dataset) (err error) {
	s.Split, s.Grid, err = TheBestCircleSplit(ds, s.ThreadsNum)
	return err
}

func (s *CircleSplitter) FirstSubset(point []float64) bool {
	return s.Split.InsideSplit(point)
}

func (s *CircleSplitter) SplitQuality() float64 {
	return s.Split.Quality()
}

func (s *CircleSplitter) Description(firstSubset bool, decimalPlaces int) string {
	return s.Split.Describe(firstSubset, decimalPlaces)
}

func (s *CircleSplitter) Attributes() []int {
	if !s.Split.IsBound() {
		return nil
	}
	return []int{s.Split.AttX1, s.Split.AttX2}
}

//ThresholdSplitter searches the best threshold over single numeric attributes.
type ThresholdSplitter struct {
	Split ThresholdSplit
}

//NewThresholdSplitter creates a univariate splitter.
func NewThresholdSplitter() *ThresholdSplitter {
	return &ThresholdSplitter{Split: NewThresholdSplit()}
}

func (s *ThresholdSplitter) FindSplit(ds Dataset) (err error) {
	s.Split, err = TheBestThresholdSplit(ds)
	return err
}

func (s *ThresholdSplitter) FirstSubset(point []float64) bool {
	return s.Split.BelowThreshold(point)
}

func (s *ThresholdSplitter) SplitQuality() float64 {
	return s.Split.SplitQuality
}

func (s *ThresholdSplitter) Description(firstSubset bool, decimalPlaces int) string {
	return s.Split.Describe(firstSubset, decimalPlaces)
}

func (s *ThresholdSplitter) Attributes() []int {
	if s.Split.Att < 0 {
		return nil
	}
	return []int{s.Split.Att}
}

//NewSplitter creates a splitter by its name: "circle" or "threshold".
func NewSplitter(kind string, threadsNum int) (Splitter, error) {
	switch kind {
	case "circle", "":
		return NewCircleSplitter(threadsNum), nil
	case "threshold":
		return NewThresholdSplitter(), nil
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown splitter %q", kind)
	}
}
