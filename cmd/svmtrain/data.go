package main

import (
	"fmt"
	"math"

	"github.com/hupe1980/svmgo/dataset"
	"github.com/hupe1980/svmgo/model"
)

// data is a train/test partition plus generator diagnostics.
type data struct {
	train, test []model.Sample
	// generatorAccuracy is NaN unless the linear generator produced the data.
	generatorAccuracy float64
}

func loadData(cfg config) (*data, error) {
	switch cfg.dataset {
	case "linear":
		gen := dataset.NewLinearGenerator(dataset.LinearConfig{
			Dimension:       cfg.dim,
			Seed:            cfg.seed,
			FlipProbability: cfg.flip,
			FlipDistance:    cfg.flipDistance,
		})
		train := gen.Generate(cfg.n)
		test := gen.Generate(max(cfg.n/4, 1))
		return &data{train: train, test: test, generatorAccuracy: gen.Accuracy()}, nil

	case "moon":
		gen := dataset.NewMoonGenerator(cfg.seed, cfg.spread)
		return &data{
			train:             gen.Generate(cfg.n),
			test:              gen.Generate(max(cfg.n/4, 1)),
			generatorAccuracy: math.NaN(),
		}, nil

	case "csv":
		if cfg.csvPath == "" {
			return nil, usageError("-dataset csv needs -csv")
		}
		layout, err := csvPreset(cfg.preset)
		if err != nil {
			return nil, err
		}
		samples, err := dataset.LoadCSVFile(cfg.csvPath, layout)
		if err != nil {
			return nil, err
		}
		if cfg.trainFraction <= 0 || cfg.trainFraction > 1 {
			return nil, usageError("-train must be in (0, 1], got %g", cfg.trainFraction)
		}
		dataset.Shuffle(samples, cfg.seed)
		train, test, err := dataset.Split(samples, int(cfg.trainFraction*float64(len(samples))))
		if err != nil {
			return nil, err
		}
		return &data{train: train, test: test, generatorAccuracy: math.NaN()}, nil

	default:
		return nil, usageError("unknown dataset %q", cfg.dataset)
	}
}

func csvPreset(name string) (dataset.CSVConfig, error) {
	switch name {
	case "original":
		return dataset.WisconsinOriginal, nil
	case "diagnostic":
		return dataset.WisconsinDiagnostic, nil
	case "prognostic":
		return dataset.WisconsinPrognostic, nil
	default:
		return dataset.CSVConfig{}, fmt.Errorf("unknown CSV preset %q", name)
	}
}
