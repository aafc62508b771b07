// Command jsxrefresh instruments React component modules for Fast Refresh.
//
// Configuration precedence, highest first:
//  1. command-line flags (--module-id, --runtime, ...)
//  2. JSXREFRESH_<OPTION> environment variables, NODE_ENV for the environment gate
//  3. plugin options file given with --config (.json, .yaml, .yml or .toml)
//  4. defaults
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viant/jsxrefresh/cache"
	"github.com/viant/jsxrefresh/config"
	"github.com/viant/jsxrefresh/logging"
	"github.com/viant/jsxrefresh/plugin"
	"go.uber.org/zap"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "jsxrefresh",
	Short: "Instrument React component modules for Fast Refresh",
	Long: `jsxrefresh rewrites JavaScript and TypeScript modules so that a development
HMR runtime can register components and remount them when their hooks change.

Examples:
  NODE_ENV=development jsxrefresh transform src --out build
  jsxrefresh transform --skip-env-check --runtime hmr-id App.jsx
  jsxrefresh watch src --out build
  jsxrefresh inspect src/App.tsx`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(viper.GetString("log-level"))
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		logging.SetLogger(logger)
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() { _ = logging.Logger().Sync() }()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "plugin options file (.json, .yaml, .yml, .toml)")
	flags.StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	flags.String("env", "", "build environment, defaults to NODE_ENV")
	flags.String("module-id", "", "module id, derived from the project relative path when empty")
	flags.Bool("skip-env-check", false, "allow transform outside development environment")
	flags.String("runtime", "", "runtime variant (context, hmr-id)")
	flags.String("scope", "", "hook analysis scope (outermost, nested)")
	flags.String("probe", "", "signature probe policy (hooks, always)")
	flags.String("root", "", "global object name")
	flags.String("cache-dir", "", "persist transform results under this directory")
	for _, name := range []string{"log-level", "env", "module-id", "skip-env-check", "runtime", "scope", "probe", "root", "cache-dir"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

func initConfig() {
	viper.SetEnvPrefix("JSXREFRESH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("env", "JSXREFRESH_ENV", "NODE_ENV")
}

// loadOptions merges the options file with flag and environment overrides
func loadOptions() (*config.Options, error) {
	options := config.DefaultOptions()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		options = loaded
	}
	if viper.IsSet("module-id") {
		options.ModuleID = viper.GetString("module-id")
	}
	if viper.IsSet("skip-env-check") {
		options.SkipEnvCheck = viper.GetBool("skip-env-check")
	}
	for key, field := range map[string]*string{
		"runtime": &options.Runtime,
		"scope":   &options.Scope,
		"probe":   &options.Probe,
		"root":    &options.Root,
	} {
		if value := viper.GetString(key); value != "" {
			*field = value
		}
	}
	options.Init()
	return options, options.Validate()
}

// newPlugin builds the transform pipeline; configuration and environment errors are fatal
func newPlugin(cached bool) (*plugin.Plugin, error) {
	options, err := loadOptions()
	if err != nil {
		return nil, err
	}
	logger := logging.Logger()
	opts := []plugin.Option{plugin.WithLogger(logger)}
	switch dir := viper.GetString("cache-dir"); {
	case !cached:
	case dir != "":
		if err = os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache dir %s: %w", dir, err)
		}
		opts = append(opts, plugin.WithCache(cache.New(cache.WithStore(nil, dir))))
	default:
		opts = append(opts, plugin.WithCache(cache.New()))
	}
	ret, err := plugin.New(options, viper.GetString("env"), opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("plugin ready",
		zap.String("runtime", options.Runtime),
		zap.String("scope", options.Scope),
		zap.String("probe", options.Probe),
		zap.String("root", options.RootObject()))
	return ret, nil
}
