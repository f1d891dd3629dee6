package svmgo_test

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/svmgo"
	"github.com/hupe1980/svmgo/kernel"
	"github.com/hupe1980/svmgo/model"
	"github.com/hupe1980/svmgo/persistence"
	"github.com/hupe1980/svmgo/vector"
)

// Example_xor trains an RBF machine on the four corners of the unit square.
func Example_xor() {
	samples := []model.Sample{
		model.NewSample(model.Negative, 0, 0),
		model.NewSample(model.Negative, 1, 1),
		model.NewSample(model.Positive, 0, 1),
		model.NewSample(model.Positive, 1, 0),
	}

	m, err := svmgo.New(samples, kernel.RBF{Gamma: 1})
	if err != nil {
		log.Fatal(err)
	}

	report, err := svmgo.NewTrainer(
		svmgo.WithTolerance(10),
		svmgo.WithEpochLimit(1000),
		svmgo.WithModifyLimit(1e-10),
	).Fit(context.Background(), m)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("solver:", report.Solver)
	fmt.Println("support vectors:", report.SupportVectors)
	fmt.Println(m.Classify(vector.Of(0, 1)), m.Classify(vector.Of(1, 1)))
	// Output:
	// solver: generalized
	// support vectors: 4
	// positive negative
}

// Example_linear trains a linear machine and reads back its decision plane.
func Example_linear() {
	samples := []model.Sample{
		model.NewSample(model.Positive, 2, 0),
		model.NewSample(model.Positive, 3, 1),
		model.NewSample(model.Negative, 0, 2),
		model.NewSample(model.Negative, -1, 3),
	}

	m, err := svmgo.New(samples, kernel.Linear{})
	if err != nil {
		log.Fatal(err)
	}
	if _, err := svmgo.NewTrainer(svmgo.WithTolerance(100)).Fit(context.Background(), m); err != nil {
		log.Fatal(err)
	}

	plane, err := m.Plane()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(plane.Classify(vector.Of(5, 0)), plane.Classify(vector.Of(0, 5)))
	// Output: positive negative
}

// Example_snapshot saves a trained model and loads it back.
func Example_snapshot() {
	m, err := svmgo.New([]model.Sample{
		model.NewSample(model.Positive, 1, 1),
		model.NewSample(model.Negative, -1, -1),
	}, kernel.Linear{})
	if err != nil {
		log.Fatal(err)
	}
	if _, err := svmgo.NewTrainer().Fit(context.Background(), m); err != nil {
		log.Fatal(err)
	}

	var buf bytes.Buffer
	if err := persistence.Save(context.Background(), &buf, m, persistence.WithCompression(persistence.CompressionLZ4)); err != nil {
		log.Fatal(err)
	}

	restored, err := persistence.Load(&buf)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(restored.IsTrained(), restored.Classify(vector.Of(2, 2)))
	// Output: true positive
}
