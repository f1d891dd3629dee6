package main

import "github.com/hupe1980/svmgo"

type config struct {
	dataset       string
	csvPath       string
	preset        string
	n             int
	dim           int
	seed          uint64
	flip          float64
	flipDistance  float64
	spread        float64
	trainFraction float64

	c            float64
	epochs       uint64
	modify       float64
	kernel       string
	gamma        float64
	coef0        float64
	degree       int
	solver       string
	strategy     string
	memoryBudget int64

	outDir      string
	result      string
	grid        string
	gridSlices  int
	plot        string
	snapshot    string
	compression string
	ioLimit     int64

	storeDir      string
	s3Bucket      string
	minioEndpoint string
	minioBucket   string
	minioSecure   bool
	storePrefix   string

	quiet    bool
	logJSON  bool
	logLevel string
}

func defaultConfig() config {
	return config{
		dataset:       "linear",
		preset:        "original",
		n:             500,
		dim:           2,
		seed:          42,
		flip:          0.05,
		flipDistance:  0.2,
		spread:        0.2,
		trainFraction: 0.8,

		c:            svmgo.DefaultTolerance,
		epochs:       svmgo.DefaultEpochLimit,
		modify:       svmgo.DefaultModifyLimit,
		kernel:       "linear",
		gamma:        1,
		degree:       3,
		solver:       svmgo.SolverAuto.String(),
		strategy:     svmgo.StrategySweep.String(),
		memoryBudget: svmgo.DefaultMemoryBudget,

		outDir:      ".",
		result:      "result.csv",
		grid:        "grid.csv",
		gridSlices:  1000,
		plot:        "result.png",
		snapshot:    "model.svm",
		compression: "zstd",

		logLevel: "warn",
	}
}
