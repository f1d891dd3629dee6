// Command svmtrain generates or loads a data set, trains a support vector
// machine on it with a live progress bar, reports accuracy and writes the
// result artifacts.
//
// Usage:
//
//	svmtrain -dataset linear -n 500 -c 1000
//	svmtrain -dataset moon -n 500 -kernel rbf -gamma 1 -c 10
//	svmtrain -dataset csv -csv breast-cancer-wisconsin.data -preset original
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg := defaultConfig()

	flag.StringVar(&cfg.dataset, "dataset", cfg.dataset, "data source: linear, moon or csv")
	flag.StringVar(&cfg.csvPath, "csv", cfg.csvPath, "CSV file for -dataset csv")
	flag.StringVar(&cfg.preset, "preset", cfg.preset, "CSV layout: original, diagnostic or prognostic")
	flag.IntVar(&cfg.n, "n", cfg.n, "number of generated training samples")
	flag.IntVar(&cfg.dim, "dim", cfg.dim, "dimension of the linear generator")
	flag.Uint64Var(&cfg.seed, "seed", cfg.seed, "random seed")
	flag.Float64Var(&cfg.flip, "flip", cfg.flip, "label flip probability of the linear generator")
	flag.Float64Var(&cfg.flipDistance, "flip-distance", cfg.flipDistance, "maximum plane distance of flipped samples")
	flag.Float64Var(&cfg.spread, "spread", cfg.spread, "noise of the moon generator")
	flag.Float64Var(&cfg.trainFraction, "train", cfg.trainFraction, "fraction of CSV samples used for training")

	flag.Float64Var(&cfg.c, "c", cfg.c, "tolerance (box constraint C)")
	flag.Uint64Var(&cfg.epochs, "epochs", cfg.epochs, "epoch limit")
	flag.Float64Var(&cfg.modify, "modify", cfg.modify, "modification limit for early stopping")
	flag.StringVar(&cfg.kernel, "kernel", cfg.kernel, "kernel: linear, rbf, polynomial or sigmoid")
	flag.Float64Var(&cfg.gamma, "gamma", cfg.gamma, "kernel gamma")
	flag.Float64Var(&cfg.coef0, "coef0", cfg.coef0, "kernel coef0")
	flag.IntVar(&cfg.degree, "degree", cfg.degree, "polynomial kernel degree")
	flag.StringVar(&cfg.solver, "solver", cfg.solver, "solver: auto, generalized or linear")
	flag.StringVar(&cfg.strategy, "strategy", cfg.strategy, "pair selection: sweep or max-violation")
	flag.Int64Var(&cfg.memoryBudget, "memory", cfg.memoryBudget, "kernel cache budget in bytes (0 disables the cache)")

	flag.StringVar(&cfg.outDir, "out", cfg.outDir, "output directory")
	flag.StringVar(&cfg.result, "result", cfg.result, "CSV artifact of linear models (empty disables)")
	flag.StringVar(&cfg.grid, "grid", cfg.grid, "decision grid of nonlinear 2D models (empty disables)")
	flag.IntVar(&cfg.gridSlices, "grid-slices", cfg.gridSlices, "grid steps per axis")
	flag.StringVar(&cfg.plot, "plot", cfg.plot, "plot of 2D models, format from extension (empty disables)")
	flag.StringVar(&cfg.snapshot, "snapshot", cfg.snapshot, "model snapshot (empty disables)")
	flag.StringVar(&cfg.compression, "compression", cfg.compression, "snapshot compression: none, lz4 or zstd")
	flag.Int64Var(&cfg.ioLimit, "io-limit", cfg.ioLimit, "snapshot write limit in bytes per second (0 is unlimited)")

	flag.StringVar(&cfg.storeDir, "store-dir", cfg.storeDir, "copy artifacts to this directory")
	flag.StringVar(&cfg.s3Bucket, "s3-bucket", cfg.s3Bucket, "upload artifacts to this S3 bucket")
	flag.StringVar(&cfg.minioEndpoint, "minio-endpoint", cfg.minioEndpoint, "upload artifacts to this MinIO endpoint")
	flag.StringVar(&cfg.minioBucket, "minio-bucket", cfg.minioBucket, "MinIO bucket")
	flag.BoolVar(&cfg.minioSecure, "minio-secure", cfg.minioSecure, "use HTTPS for MinIO")
	flag.StringVar(&cfg.storePrefix, "store-prefix", cfg.storePrefix, "key prefix for uploaded artifacts")

	flag.BoolVar(&cfg.quiet, "quiet", cfg.quiet, "disable the progress bar")
	flag.BoolVar(&cfg.logJSON, "log-json", cfg.logJSON, "log as JSON")
	flag.StringVar(&cfg.logLevel, "log-level", cfg.logLevel, "log level: debug, info, warn or error")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("svmtrain: %v", err)
	}
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("usage: "+format, args...)
}
