package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/viant/jsxrefresh/inspector/repository"
	"github.com/viant/jsxrefresh/logging"
	"github.com/viant/jsxrefresh/watcher"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Instrument a source tree and keep it in sync on changes",
	Long: `Instrument every source under dir into --out, then re-run the transform for
files that change. Deleted sources are removed from the output directory.

Examples:
  jsxrefresh watch src --out build
  jsxrefresh watch src --out build --debounce 100ms`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var (
	watchOut      string
	watchDebounce time.Duration
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "output directory")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "delay grouping rapid changes")
	_ = watchCmd.MarkFlagRequired("out")
}

func runWatch(cmd *cobra.Command, args []string) error {
	p, err := newPlugin(true)
	if err != nil {
		return err
	}
	root := args[0]
	ctx := cmd.Context()
	logger := logging.Logger()
	detector := repository.New()

	sources, err := collectSources(root)
	if err != nil {
		return err
	}
	for _, src := range sources {
		if err = transformSource(ctx, p, detector.ModuleID(src.path), src, watchOut); err != nil {
			logger.Error("transform failed", zap.String("path", src.path), zap.Error(err))
		}
	}

	fileWatcher, err := watcher.NewFileWatcher(watchDebounce, logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fileWatcher.Stop()

	fileWatcher.AddFilter(watcher.SourceFilter)
	fileWatcher.AddFilter(watcher.NoNodeModulesFilter)
	fileWatcher.AddFilter(watcher.ExcludeDirFilter(watchOut))
	fileWatcher.AddHandler(func(events []watcher.ChangeEvent) error {
		var errs []error
		for _, event := range events {
			relative, err := filepath.Rel(root, event.Path)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			src := &source{path: event.Path, relative: relative}
			logger.Debug("source changed", zap.String("path", event.Path), zap.Stringer("type", event.Type))
			switch event.Type {
			case watcher.EventTypeDeleted, watcher.EventTypeRenamed:
				if err = os.Remove(filepath.Join(watchOut, relative)); err != nil && !os.IsNotExist(err) {
					errs = append(errs, err)
				}
			default:
				if err = transformSource(ctx, p, detector.ModuleID(event.Path), src, watchOut); err != nil {
					errs = append(errs, err)
				}
			}
		}
		return errors.Join(errs...)
	})
	if err = fileWatcher.AddRecursive(root); err != nil {
		return err
	}
	fileWatcher.Start(ctx)
	logger.Info("watching for changes", zap.String("dir", root), zap.String("out", watchOut), zap.Int("sources", len(sources)))
	<-ctx.Done()
	logger.Info("stopping file watcher")
	return nil
}
