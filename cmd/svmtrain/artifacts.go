package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/svmgo"
	"github.com/hupe1980/svmgo/blobstore"
	miniostore "github.com/hupe1980/svmgo/blobstore/minio"
	s3store "github.com/hupe1980/svmgo/blobstore/s3"
	"github.com/hupe1980/svmgo/export"
	"github.com/hupe1980/svmgo/persistence"
	"github.com/hupe1980/svmgo/resource"
)

// uploadConcurrency bounds parallel artifact uploads.
const uploadConcurrency = 4

// writeArtifacts writes every enabled artifact that applies to m and returns
// the paths written.
func writeArtifacts(ctx context.Context, cfg config, m *svmgo.Model) ([]string, error) {
	var written []string

	if err := os.MkdirAll(cfg.outDir, 0o755); err != nil {
		return nil, err
	}
	path := func(name string) string { return filepath.Join(cfg.outDir, name) }

	if _, err := m.Plane(); cfg.result != "" && err == nil {
		if err := writeFile(path(cfg.result), func(w io.Writer) error { return export.WriteCSV(w, m) }); err != nil {
			return written, err
		}
		written = append(written, path(cfg.result))
	}

	if _, err := m.Plane(); cfg.grid != "" && m.Dimension() == 2 && errors.Is(err, svmgo.ErrNotLinear) {
		grid := export.DefaultGridConfig()
		grid.Slices = cfg.gridSlices
		if err := writeFile(path(cfg.grid), func(w io.Writer) error { return export.WriteGrid(w, m, grid) }); err != nil {
			return written, err
		}
		written = append(written, path(cfg.grid))
	}

	if cfg.plot != "" && m.Dimension() == 2 {
		format := strings.TrimPrefix(filepath.Ext(cfg.plot), ".")
		plotCfg := export.DefaultPlotConfig()
		plotCfg.Title = fmt.Sprintf("SVM result (%s, C=%g)", cfg.kernel, cfg.c)
		if err := writeFile(path(cfg.plot), func(w io.Writer) error { return export.WritePlot(w, m, plotCfg, format) }); err != nil {
			return written, err
		}
		written = append(written, path(cfg.plot))
	}

	if cfg.snapshot != "" {
		compression, err := persistence.ParseCompression(cfg.compression)
		if err != nil {
			return written, err
		}
		rc := resource.NewController(resource.Config{IOLimitBytesPerSec: cfg.ioLimit})
		err = persistence.SaveFile(ctx, path(cfg.snapshot), m,
			persistence.WithCompression(compression),
			persistence.WithResourceController(rc),
		)
		if err != nil {
			return written, err
		}
		written = append(written, path(cfg.snapshot))
	}

	return written, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// stores returns the blob stores selected by cfg.
func stores(ctx context.Context, cfg config) ([]blobstore.Store, error) {
	var out []blobstore.Store

	if cfg.storeDir != "" {
		out = append(out, blobstore.NewLocalStore(cfg.storeDir))
	}

	if cfg.s3Bucket != "" {
		s, err := s3store.New(ctx, cfg.s3Bucket, s3store.WithPrefix(cfg.storePrefix))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	if cfg.minioEndpoint != "" {
		if cfg.minioBucket == "" {
			return nil, usageError("-minio-endpoint needs -minio-bucket")
		}
		client, err := minio.New(cfg.minioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
			Secure: cfg.minioSecure,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, miniostore.NewStore(client, cfg.minioBucket, cfg.storePrefix))
	}

	return out, nil
}

// upload copies the written artifacts into every selected store.
func upload(ctx context.Context, cfg config, paths []string) error {
	targets, err := stores(ctx, cfg)
	if err != nil || len(targets) == 0 {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		name := filepath.Base(p)
		for _, store := range targets {
			g.Go(func() error {
				if err := store.Put(gctx, name, data); err != nil {
					return fmt.Errorf("upload %s: %w", name, err)
				}
				return nil
			})
		}
	}

	return g.Wait()
}
