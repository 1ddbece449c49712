package bsl

import (
	"path/filepath"
	"testing"
)

func TestInsideSplitIsStrict(t *testing.T) {
	split := CircleSplit{AttX1: 1, AttX2: 0, X1: 0, X2: 0, R: 1, SplitQuality: 0.3}

	cases := []struct {
		point  []float64
		inside bool
	}{
		{[]float64{0, 0}, true},
		{[]float64{0.5, 0.5}, true},
		{[]float64{0, 1}, false},     // on the circle
		{[]float64{0.8, 0.7}, false}, // inside the square, outside the circle
		{[]float64{-0.6, 0.7}, true},
	}
	for _, c := range cases {
		if got := split.InsideSplit(c.point); got != c.inside {
			t.Errorf("InsideSplit(%v) = %v, want %v", c.point, got, c.inside)
		}
	}
}

func TestInsideSplitUnbound(t *testing.T) {
	if NewCircleSplit().InsideSplit([]float64{0, 0}) {
		t.Fatalf("an empty split has no inside")
	}
}

func TestDescribe(t *testing.T) {
	split := CircleSplit{AttX1: 0, AttX2: 2, AttName1: "height", AttName2: "width", X1: 1.23456, X2: -2, R: 0.5, SplitQuality: 0.7}

	if got, want := split.Describe(false, 3), "Attributes: height,width outside circle with center (1.235,-2.000) and radius 0.500"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := split.Describe(true, 0), "Attributes: height,width inside circle with center (1,-2) and radius 0"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	unnamed := CircleSplit{AttX1: 0, AttX2: 1, R: 1}
	if got, want := unnamed.Describe(true, 1), "Attributes: f_0,f_1 inside circle with center (0.0,0.0) and radius 1.0"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSaveLoadCircleSplit(t *testing.T) {
	split, err := FindCircleSplit(separableDataset(t))
	if err != nil {
		t.Fatalf("find split: %v", err)
	}

	fileName := filepath.Join(t.TempDir(), "split.json")
	if err := split.Save(fileName); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadCircleSplit(fileName)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != split {
		t.Fatalf("loaded %+v, saved %+v", loaded, split)
	}
}

func TestLoadCircleSplitMissingFile(t *testing.T) {
	if _, err := LoadCircleSplit(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected an error")
	}
}
