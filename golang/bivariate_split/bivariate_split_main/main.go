package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/sbinet/npyio"
	"github.com/tarstars/bivariate_split/golang/bivariate_split/bsl"
	"gonum.org/v1/gonum/mat"
)

func decodeConfig(srcConfig string, out interface{}) {
	file, err := os.Open(srcConfig)
	bsl.HandleError(err)
	defer func() { bsl.HandleError(file.Close()) }()

	decoder := json.NewDecoder(file)
	bsl.HandleError(decoder.Decode(out))
}

type DatasetConfig struct {
	FileNameFeatures string   `json:"filename_features"`
	FileNameClasses  string   `json:"filename_classes"`
	AttributeNames   []string `json:"attribute_names"`
	NumClasses       int      `json:"num_classes"`
	Description      string   `json:"description"`
}

func (datasetConfig DatasetConfig) read() bsl.Dataset {
	ds, err := bsl.ReadDataset(
		datasetConfig.FileNameFeatures,
		datasetConfig.FileNameClasses,
		datasetConfig.AttributeNames,
		datasetConfig.NumClasses,
	)
	bsl.HandleError(err)
	if datasetConfig.Description != "" {
		ds.SetDescription(datasetConfig.Description)
	}
	log.Printf("loaded %d points, %d attributes, %d classes", ds.Height(), ds.Width(), ds.NumClasses)
	return ds
}

type SplitConfig struct {
	DatasetConfig
	Splitter          string `json:"splitter"`
	ThreadsNum        int    `json:"threads_num"`
	DecimalPlaces     int    `json:"decimal_places"`
	FileNameModel     string `json:"filename_model"`
	FileNamePairGrid  string `json:"filename_pair_grid"`
	FileNameThreshold string `json:"filename_threshold_model"`
}

func split(srcConfig string) {
	var splitConfig SplitConfig
	decodeConfig(srcConfig, &splitConfig)

	ds := splitConfig.read()
	splitter, err := bsl.NewSplitter(splitConfig.Splitter, splitConfig.ThreadsNum)
	bsl.HandleError(err)
	bsl.HandleError(splitter.FindSplit(ds))

	if splitter.SplitQuality() <= 0 {
		log.Print("no useful split found")
	} else {
		log.Printf("gain %.6f: %s", splitter.SplitQuality(), splitter.Description(true, splitConfig.DecimalPlaces))
	}

	switch s := splitter.(type) {
	case *bsl.CircleSplitter:
		fmt.Println(s.Grid.Table(splitConfig.DecimalPlaces))
		if splitConfig.FileNameModel != "" {
			bsl.HandleError(s.Split.Save(splitConfig.FileNameModel))
		}
		if splitConfig.FileNamePairGrid != "" && s.Grid.Width() > 0 {
			dst, err := os.Create(splitConfig.FileNamePairGrid)
			bsl.HandleError(err)
			defer func() { bsl.HandleError(dst.Close()) }()
			bsl.HandleError(s.Grid.WriteNpy(dst))
		}
	case *bsl.ThresholdSplitter:
		if splitConfig.FileNameThreshold != "" {
			modelByteRepr, err := json.MarshalIndent(s.Split, "", "  ")
			bsl.HandleError(err)
			bsl.HandleError(os.WriteFile(splitConfig.FileNameThreshold, modelByteRepr, 0o644))
		}
	}
}

type PredictConfig struct {
	FileNameFeatures string `json:"filename_features"`
	FileNameModel    string `json:"filename_model"`
	FileNameRoutes   string `json:"filename_routes"`
}

func predict(srcConfig string) {
	var predictConfig PredictConfig
	decodeConfig(srcConfig, &predictConfig)

	features, err := bsl.ReadNpy(predictConfig.FileNameFeatures)
	bsl.HandleError(err)
	circleSplit, err := bsl.LoadCircleSplit(predictConfig.FileNameModel)
	bsl.HandleError(err)

	h, w := features.Dims()
	if circleSplit.IsBound() && (circleSplit.AttX1 >= w || circleSplit.AttX2 >= w) {
		log.Panicf("the model uses attributes %d,%d but the features have %d columns", circleSplit.AttX1, circleSplit.AttX2, w)
	}

	routes := mat.NewDense(h, 1, nil)
	for p := 0; p < h; p++ {
		if circleSplit.InsideSplit(mat.Row(nil, p, features)) {
			routes.Set(p, 0, 1)
		}
	}

	dst, err := os.Create(predictConfig.FileNameRoutes)
	bsl.HandleError(err)
	defer func() { bsl.HandleError(dst.Close()) }()
	bsl.HandleError(npyio.Write(dst, routes))
}

type PlotConfig struct {
	DatasetConfig
	FileNameModel   string `json:"filename_model"`
	FileNamePicture string `json:"filename_picture"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	DecimalPlaces   int    `json:"decimal_places"`
}

func plot(srcConfig string) {
	plotConfig := PlotConfig{Width: 600, Height: 600, DecimalPlaces: 2}
	decodeConfig(srcConfig, &plotConfig)

	ds := plotConfig.read()
	circleSplit, err := bsl.LoadCircleSplit(plotConfig.FileNameModel)
	bsl.HandleError(err)

	bsl.HandleError(bsl.SavePlot(ds, circleSplit, plotConfig.Width, plotConfig.Height, plotConfig.DecimalPlaces, plotConfig.FileNamePicture))
}

type GraphConfig struct {
	DatasetConfig
	Splitter        string `json:"splitter"`
	ThreadsNum      int    `json:"threads_num"`
	DecimalPlaces   int    `json:"decimal_places"`
	FigureType      string `json:"figure_type"`
	FileNamePicture string `json:"filename_picture"`
}

func graph(srcConfig string) {
	graphConfig := GraphConfig{FigureType: "svg", DecimalPlaces: 2}
	decodeConfig(srcConfig, &graphConfig)

	ds := graphConfig.read()
	splitter, err := bsl.NewSplitter(graphConfig.Splitter, graphConfig.ThreadsNum)
	bsl.HandleError(err)
	bsl.HandleError(splitter.FindSplit(ds))

	stump, err := bsl.NewStump(ds, splitter, graphConfig.DecimalPlaces)
	bsl.HandleError(err)
	bsl.HandleError(stump.RenderGraph(graphConfig.FileNamePicture, graphConfig.FigureType))
}

func main() {
	runMode := flag.String("mode", "split", "you can select either 'split', 'predict', 'plot' or 'graph' modes")
	config := flag.String("config", "split_config.json", "a config file for the run of the program")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")

	flag.Parse()

	modeFunc, ok := map[string]func(string){
		"split":   split,
		"predict": predict,
		"plot":    plot,
		"graph":   graph,
	}[*runMode]
	if !ok {
		log.Fatalf("unknown mode %q", *runMode)
	}
	modeFunc(*config)

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		bsl.HandleError(err)
		defer func() { bsl.HandleError(f.Close()) }()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
}
