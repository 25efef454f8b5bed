package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"leafd/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "leafd",
		Short:         "Potato leaf disease classifier service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	def := config.Default()

	// Persistent flags override config file and environment
	pf := root.PersistentFlags()
	pf.String("config", "", "Path to config file (.yaml/.yml, .json, .toml)")
	pf.String("addr", def.Addr, "HTTP listen address (env LEAFD_ADDR)")
	pf.String("model-path", def.ModelPath, "Model artifact; relative paths are resolved from the binary's directory (env LEAFD_MODEL_PATH)")
	pf.String("onnxruntime-lib", "", "Path to the ONNX Runtime shared library (env ONNXRUNTIME_LIB)")
	pf.String("input-name", "", "Graph input to feed (default: first input)")
	pf.String("output-name", "", "Graph output to read (default: first output)")
	pf.Int("intra-op-threads", 0, "ONNX Runtime intra-op threads (0 = runtime default)")
	pf.Int("image-size", 0, "Resize uploads to a square of this size (0 = model decides)")
	pf.String("log-level", def.LogLevel, "Log level: debug|info|warn|error (env LEAFD_LOG_LEVEL)")
	pf.String("log-format", def.LogFormat, "Log format: console|json (env LEAFD_LOG_FORMAT)")
	pf.Bool("strict-status", false, "Report /predict failures with 4xx/5xx instead of 200")
	pf.Int64("max-upload-bytes", 0, "Maximum /predict request size in bytes (0 = unbounded)")
	pf.String("cors-origins", "", "Comma-separated allowed CORS origins; enables CORS")
	pf.Int("shutdown-timeout", def.ShutdownSec, "Graceful shutdown timeout in seconds")
	pf.String("frontend-dir", "", "Optional web frontend directory checked by `leafd check`")

	serve := newServeCmd()
	root.RunE = serve.RunE
	root.AddCommand(serve, newPredictCmd(), newCheckCmd())
	return root
}

// resolveConfig applies defaults < config file < environment < flags.
func resolveConfig(cmd *cobra.Command, lookup func(string) (string, bool)) (config.Config, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		fileCfg, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = cfg.Merge(fileCfg)
	}
	cfg, err := cfg.FromEnv(lookup)
	if err != nil {
		return cfg, err
	}
	cfg = applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyFlags overlays only flags set explicitly on the command line.
func applyFlags(cmd *cobra.Command, cfg config.Config) config.Config {
	fs := cmd.Flags()
	str := func(name string, dst *string) {
		if fs.Changed(name) {
			*dst, _ = fs.GetString(name)
		}
	}
	num := func(name string, dst *int) {
		if fs.Changed(name) {
			*dst, _ = fs.GetInt(name)
		}
	}
	str("addr", &cfg.Addr)
	str("model-path", &cfg.ModelPath)
	str("onnxruntime-lib", &cfg.ONNXRuntimeLib)
	str("input-name", &cfg.InputName)
	str("output-name", &cfg.OutputName)
	str("log-level", &cfg.LogLevel)
	str("log-format", &cfg.LogFormat)
	str("frontend-dir", &cfg.FrontendDir)
	num("intra-op-threads", &cfg.IntraOpThreads)
	num("image-size", &cfg.ImageSize)
	num("shutdown-timeout", &cfg.ShutdownSec)
	if fs.Changed("strict-status") {
		cfg.StrictStatus, _ = fs.GetBool("strict-status")
	}
	if fs.Changed("max-upload-bytes") {
		cfg.MaxUploadBytes, _ = fs.GetInt64("max-upload-bytes")
	}
	if fs.Changed("cors-origins") {
		v, _ := fs.GetString("cors-origins")
		cfg.CORSOrigins = config.SplitCSV(v)
		cfg.CORSEnabled = len(cfg.CORSOrigins) > 0
	}
	return cfg
}

// newLogger builds the process logger. Console output is human readable;
// json emits one object per line.
func newLogger(level, format string, w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	out := w
	if strings.EqualFold(format, "console") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "leafd").Logger(), nil
}

// setup resolves configuration and the logger for a subcommand.
func setup(cmd *cobra.Command) (config.Config, zerolog.Logger, error) {
	cfg, err := resolveConfig(cmd, os.LookupEnv)
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	log, err := newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	return cfg, log, nil
}
