package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/svmgo/export"
	"github.com/hupe1980/svmgo/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config {
	t.Helper()

	cfg := defaultConfig()
	cfg.n = 80
	cfg.c = 100
	cfg.epochs = 30
	cfg.outDir = t.TempDir()
	cfg.gridSlices = 10
	cfg.logLevel = "error"
	return cfg
}

func TestRunLinear(t *testing.T) {
	cfg := testConfig(t)
	cfg.storeDir = t.TempDir()

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &stdout, &stderr))

	out := stdout.String()
	assert.Contains(t, out, "Generator accuracy:")
	assert.Contains(t, out, "Classify accuracy:")
	assert.Contains(t, out, "Test accuracy:")
	assert.Contains(t, out, "Plane:")
	assert.Contains(t, stderr.String(), "Training")

	f, err := os.Open(filepath.Join(cfg.outDir, "result.csv"))
	require.NoError(t, err)
	defer f.Close()
	a, err := export.ReadCSV(f)
	require.NoError(t, err)
	assert.Len(t, a.Samples, cfg.n)

	m, err := persistence.LoadFile(filepath.Join(cfg.outDir, "model.svm"))
	require.NoError(t, err)
	assert.True(t, m.IsTrained())

	assert.FileExists(t, filepath.Join(cfg.outDir, "result.png"))
	assert.NoFileExists(t, filepath.Join(cfg.outDir, "grid.csv"))

	for _, name := range []string{"result.csv", "result.png", "model.svm"} {
		assert.FileExists(t, filepath.Join(cfg.storeDir, name))
	}
}

func TestRunMoon(t *testing.T) {
	cfg := testConfig(t)
	cfg.dataset = "moon"
	cfg.kernel = "rbf"
	cfg.c = 10
	cfg.strategy = "max-violation"
	cfg.plot = "result.svg"
	cfg.quiet = true

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &stdout, &stderr))

	assert.NotContains(t, stdout.String(), "Generator accuracy:")
	assert.NotContains(t, stdout.String(), "Plane:")
	assert.Empty(t, stderr.String())

	assert.FileExists(t, filepath.Join(cfg.outDir, "grid.csv"))
	assert.FileExists(t, filepath.Join(cfg.outDir, "result.svg"))
	assert.NoFileExists(t, filepath.Join(cfg.outDir, "result.csv"))
}

func TestRunCSV(t *testing.T) {
	cfg := testConfig(t)
	cfg.dataset = "csv"
	cfg.csvPath = filepath.Join(t.TempDir(), "wisconsin.data")
	cfg.trainFraction = 0.75
	cfg.quiet = true

	records := "" +
		"1,5,1,1,1,2,1,3,1,1,2\n" +
		"2,5,4,4,5,7,10,3,2,1,2\n" +
		"3,3,1,1,1,2,2,3,1,1,2\n" +
		"4,6,8,8,1,3,4,3,7,1,2\n" +
		"5,8,10,10,8,7,10,9,7,1,4\n" +
		"6,10,7,7,6,4,10,4,1,2,4\n" +
		"7,7,3,2,10,5,10,5,4,4,4\n" +
		"8,10,5,5,3,6,7,7,10,1,4\n"
	require.NoError(t, os.WriteFile(cfg.csvPath, []byte(records), 0o644))

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &stdout, &stderr))

	assert.Contains(t, stdout.String(), "Test accuracy:")
	// Nine features: no plot, no grid.
	assert.NoFileExists(t, filepath.Join(cfg.outDir, "result.png"))
	assert.FileExists(t, filepath.Join(cfg.outDir, "result.csv"))
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config)
	}{
		{"dataset", func(c *config) { c.dataset = "iris" }},
		{"csv without path", func(c *config) { c.dataset = "csv" }},
		{"kernel", func(c *config) { c.kernel = "laplace" }},
		{"strategy", func(c *config) { c.strategy = "random" }},
		{"solver", func(c *config) { c.solver = "newton" }},
		{"log level", func(c *config) { c.logLevel = "loud" }},
		{"compression", func(c *config) { c.compression = "brotli" }},
		{"minio bucket", func(c *config) { c.minioEndpoint = "localhost:9000" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.quiet = true
			cfg.plot = ""
			tt.modify(&cfg)

			var stdout, stderr bytes.Buffer
			assert.Error(t, run(context.Background(), cfg, &stdout, &stderr))
		})
	}
}
