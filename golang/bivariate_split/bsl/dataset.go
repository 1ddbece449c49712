package bsl

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

var (
	//ErrInvalidDataset is wrapped by every dataset contract violation.
	ErrInvalidDataset = errors.New("invalid dataset")
	//ErrInvalidArgument is wrapped by contract violations of other arguments.
	ErrInvalidArgument = errors.New("invalid argument")
)

//Dataset contains labeled points with numeric attributes. A row of Features is a point,
//a column is an attribute identified by its index.
type Dataset struct {
	Features       *mat.Dense // nil when there are no points
	Classes        []int
	AttributeNames []string
	NumClasses     int
	RecordIds      []int
	Description    *string
}

//NewDataset checks the consistency of the components and unites them into one Dataset.
//When numClasses is not positive it is inferred from the largest label.
func NewDataset(features *mat.Dense, classes []int, attributeNames []string, numClasses int) (Dataset, error) {
	if numClasses <= 0 {
		numClasses = 0
		for _, class := range classes {
			if class+1 > numClasses {
				numClasses = class + 1
			}
		}
	}

	ds := Dataset{
		Features:       features,
		Classes:        classes,
		AttributeNames: attributeNames,
		NumClasses:     numClasses,
		RecordIds:      make([]int, len(classes)),
	}
	for p := range ds.RecordIds {
		ds.RecordIds[p] = p
	}

	if err := ds.Validate(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

//SetDescription sets a description for a Dataset object
func (ds *Dataset) SetDescription(description string) {
	ds.Description = &description
}

//Height is the number of points.
func (ds Dataset) Height() int {
	return len(ds.Classes)
}

//Width is the number of attributes.
func (ds Dataset) Width() int {
	return len(ds.AttributeNames)
}

//Point returns a copy of the feature vector of a row.
func (ds Dataset) Point(row int) []float64 {
	return mat.Row(nil, row, ds.Features)
}

//ClassCounts counts points of every class.
func (ds Dataset) ClassCounts() []int {
	counts := make([]int, ds.NumClasses)
	for _, class := range ds.Classes {
		counts[class]++
	}
	return counts
}

//Validate checks the dataset contract: matching dimensions, labels in [0, NumClasses),
//finite features and distinct attribute names.
func (ds Dataset) Validate() error {
	h, w := ds.Height(), ds.Width()

	seen := make(map[string]int, w)
	for q, name := range ds.AttributeNames {
		if name == "" {
			return errors.Wrapf(ErrInvalidDataset, "attribute %d has no name", q)
		}
		if prev, ok := seen[name]; ok {
			return errors.Wrapf(ErrInvalidDataset, "attribute name %q is used by columns %d and %d", name, prev, q)
		}
		seen[name] = q
	}

	if ds.RecordIds != nil && len(ds.RecordIds) != h {
		return errors.Wrapf(ErrInvalidDataset, "%d record ids for %d points", len(ds.RecordIds), h)
	}

	if h == 0 {
		return nil
	}
	if ds.Features == nil {
		return errors.Wrapf(ErrInvalidDataset, "%d class labels without features", h)
	}
	featuresH, featuresW := ds.Features.Dims()
	if featuresH != h {
		return errors.Wrapf(ErrInvalidDataset, "the features height %d is not equal to the number of labels %d", featuresH, h)
	}
	if featuresW != w {
		return errors.Wrapf(ErrInvalidDataset, "the features width %d is not equal to the number of attribute names %d", featuresW, w)
	}

	for p, class := range ds.Classes {
		if class < 0 || class >= ds.NumClasses {
			return errors.Wrapf(ErrInvalidDataset, "class label %d of row %d is outside [0, %d)", class, p, ds.NumClasses)
		}
		for q := 0; q < w; q++ {
			if v := ds.Features.At(p, q); math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.Wrapf(ErrInvalidDataset, "attribute %q of row %d is not finite", ds.AttributeNames[q], p)
			}
		}
	}
	return nil
}

//Partition routes every point with the splitter. The first dataset receives points of the first subset.
func (ds Dataset) Partition(splitter Splitter) (first, second Dataset, err error) {
	for _, att := range splitter.Attributes() {
		if att < 0 || att >= ds.Width() {
			return Dataset{}, Dataset{}, errors.Wrapf(ErrInvalidArgument,
				"the split uses attribute %d but the dataset has %d attributes", att, ds.Width())
		}
	}

	firstRows, secondRows := make([]int, 0), make([]int, 0)
	for p := 0; p < ds.Height(); p++ {
		if splitter.FirstSubset(ds.Point(p)) {
			firstRows = append(firstRows, p)
		} else {
			secondRows = append(secondRows, p)
		}
	}
	return ds.subset(firstRows), ds.subset(secondRows), nil
}

//subset copies the given rows into a new dataset sharing names and the class cardinality.
func (ds Dataset) subset(rows []int) Dataset {
	result := Dataset{
		Classes:        make([]int, len(rows)),
		AttributeNames: ds.AttributeNames,
		NumClasses:     ds.NumClasses,
		RecordIds:      make([]int, len(rows)),
	}
	if len(rows) == 0 || ds.Width() == 0 {
		return result
	}

	result.Features = mat.NewDense(len(rows), ds.Width(), nil)
	for ind, p := range rows {
		result.Features.SetRow(ind, mat.Row(nil, p, ds.Features))
		result.Classes[ind] = ds.Classes[p]
		if ds.RecordIds != nil {
			result.RecordIds[ind] = ds.RecordIds[p]
		} else {
			result.RecordIds[ind] = p
		}
	}
	return result
}

//ReadDataset reads features and class labels from npy files and unites them into one Dataset.
//Labels are stored as floating point numbers holding integers.
func ReadDataset(fileNameFeatures, fileNameClasses string, attributeNames []string, numClasses int) (Dataset, error) {
	log.Print("\ttry to load features <", fileNameFeatures, ">")
	features, err := ReadNpy(fileNameFeatures)
	if err != nil {
		return Dataset{}, err
	}

	log.Print("\ttry to load classes <", fileNameClasses, ">")
	rawClasses, err := readNpyVector(fileNameClasses)
	if err != nil {
		return Dataset{}, err
	}

	classes := make([]int, len(rawClasses))
	for p, v := range rawClasses {
		if v != math.Trunc(v) {
			return Dataset{}, errors.Wrapf(ErrInvalidDataset, "class label %g of row %d is not an integer", v, p)
		}
		classes[p] = int(v)
	}

	if attributeNames == nil {
		_, w := features.Dims()
		attributeNames = DefaultAttributeNames(w)
	}
	return NewDataset(features, classes, attributeNames, numClasses)
}

//DefaultAttributeNames names attributes f_0, f_1, ...
func DefaultAttributeNames(w int) []string {
	names := make([]string, w)
	for q := range names {
		names[q] = fmt.Sprintf("f_%d", q)
	}
	return names
}

//ReadNpy reads the content of npy file
func ReadNpy(fileName string) (*mat.Dense, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", fileName)
	}
	defer func() { HandleError(f.Close()) }()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "npy header of %s", fileName)
	}

	denseMat := &mat.Dense{}
	if err := r.Read(denseMat); err != nil {
		return nil, errors.Wrapf(err, "npy data of %s", fileName)
	}
	return denseMat, nil
}

//readNpyVector reads an npy file of any shape as a flat vector
func readNpyVector(fileName string) ([]float64, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", fileName)
	}
	defer func() { HandleError(f.Close()) }()

	var data []float64
	if err := npyio.Read(f, &data); err != nil {
		return nil, errors.Wrapf(err, "npy data of %s", fileName)
	}
	return data, nil
}
