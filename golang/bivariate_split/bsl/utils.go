package bsl

import (
	"log"
	"sort"

	"gonum.org/v1/gonum/mat"
)

//HandleError stops the program on an unexpected error.
func HandleError(err error) {
	if err != nil {
		log.Panic(err)
	}
}

//columnArgsort returns row indices ordering the column ascending. Equal values keep their row order.
func columnArgsort(column mat.Vector) []int {
	n := column.Len()
	as := make([]int, n)
	for ind := range as {
		as[ind] = ind
	}
	sort.SliceStable(as, func(i, j int) bool {
		return column.AtVec(as[i]) < column.AtVec(as[j])
	})
	return as
}
