package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/jsxrefresh/inspector/repository"
	"github.com/viant/jsxrefresh/logging"
	"github.com/viant/jsxrefresh/plugin"
	"github.com/viant/jsxrefresh/watcher"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var transformCmd = &cobra.Command{
	Use:   "transform <path...>",
	Short: "Instrument files or directories",
	Long: `Instrument JavaScript and TypeScript sources. Directories are walked recursively,
node_modules and hidden directories are skipped. Without --out the result is written
to stdout.

Examples:
  jsxrefresh transform src/App.jsx
  jsxrefresh transform src --out build`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTransform,
}

var (
	transformOut      string
	transformParallel int
)

func init() {
	rootCmd.AddCommand(transformCmd)

	transformCmd.Flags().StringVarP(&transformOut, "out", "o", "", "output directory")
	transformCmd.Flags().IntVarP(&transformParallel, "parallel", "p", runtime.NumCPU(), "number of files transformed concurrently")
}

// source is an input file with its location relative to the argument it was found under
type source struct {
	path     string
	relative string
}

func runTransform(cmd *cobra.Command, args []string) error {
	p, err := newPlugin(true)
	if err != nil {
		return err
	}
	var sources []*source
	for _, arg := range args {
		found, err := collectSources(arg)
		if err != nil {
			return err
		}
		sources = append(sources, found...)
	}
	if transformOut == "" && len(sources) > 1 {
		return fmt.Errorf("--out is required when transforming %d files", len(sources))
	}
	detector := repository.New()
	explicitID := p.Options().ModuleID != "" && len(sources) == 1

	group, ctx := errgroup.WithContext(cmd.Context())
	group.SetLimit(max(transformParallel, 1))
	for _, src := range sources {
		src := src
		moduleID := p.Options().ModuleID
		if !explicitID {
			moduleID = detector.ModuleID(src.path)
		}
		group.Go(func() error {
			return transformSource(ctx, p, moduleID, src, transformOut)
		})
	}
	return group.Wait()
}

func transformSource(ctx context.Context, p *plugin.Plugin, moduleID string, src *source, out string) error {
	logger := logging.Logger()
	if out == "" {
		data, err := os.ReadFile(src.path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", src.path, err)
		}
		result, err := p.Transform(ctx, &plugin.Request{ModuleID: moduleID, Filename: src.path, Source: data})
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(result.Code)
		return err
	}
	dest := filepath.Join(out, src.relative)
	result, err := p.TransformFile(ctx, moduleID, src.path, dest)
	if err != nil {
		return err
	}
	logger.Info("transformed",
		zap.String("module", result.ModuleID),
		zap.String("dest", dest),
		zap.Strings("components", result.Components),
		zap.Bool("cached", result.Cached))
	return nil
}

// collectSources returns JS/TS sources under path
func collectSources(path string) ([]*source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []*source{{path: path, relative: filepath.Base(path)}}, nil
	}
	var ret []*source
	err = filepath.Walk(path, func(aPath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fileInfo.IsDir() {
			if aPath != path && (fileInfo.Name() == "node_modules" || strings.HasPrefix(fileInfo.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !watcher.SourceFilter(aPath) {
			return nil
		}
		relative, err := filepath.Rel(path, aPath)
		if err != nil {
			return err
		}
		ret = append(ret, &source{path: aPath, relative: relative})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", path, err)
	}
	return ret, nil
}
