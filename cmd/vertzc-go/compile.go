package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"vertzc-go/packages/compiler"
	"vertzc-go/packages/compiler/config"
)

// compile transforms every .tsx/.jsx file under root and writes the results
// under outDir, preserving relative paths.
func compile(root, outDir string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	comp, err := compiler.New(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var transformed, unchanged int

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".tsx" && ext != ".jsx" {
			return nil
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		result, err := comp.Transform(ctx, path, source)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		outPath := filepath.Join(outDir, rel)
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
		}
		if err := os.WriteFile(outPath, []byte(result.Code), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		if result.Changed {
			transformed++
			slog.Info("transformed", "file", rel, "components", len(result.Components))
		} else {
			unchanged++
			slog.Debug("unchanged", "file", rel)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("compile finished", "transformed", transformed, "unchanged", unchanged, "out", outDir)
	return nil
}

func loadConfig() (*config.Config, error) {
	path := os.Getenv("VERTZC_CONFIG")
	if path == "" {
		if _, err := os.Stat("vertzc.yaml"); err != nil {
			return config.Default(), nil
		}
		path = "vertzc.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded config", "path", path)
	return cfg, nil
}
