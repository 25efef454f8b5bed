package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Defaults applied when the corresponding Config fields are unset.
const (
	DefaultAddr        = "localhost:8000"
	DefaultModelPath   = "../models/1.onnx"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"
	DefaultShutdownSec = 5
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:        DefaultAddr,
		ModelPath:   DefaultModelPath,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		ShutdownSec: DefaultShutdownSec,
	}
}

// Merge overlays the non-zero fields of o onto c.
func (c Config) Merge(o Config) Config {
	if o.Addr != "" {
		c.Addr = o.Addr
	}
	if o.ModelPath != "" {
		c.ModelPath = o.ModelPath
	}
	if o.ONNXRuntimeLib != "" {
		c.ONNXRuntimeLib = o.ONNXRuntimeLib
	}
	if o.InputName != "" {
		c.InputName = o.InputName
	}
	if o.OutputName != "" {
		c.OutputName = o.OutputName
	}
	if o.IntraOpThreads != 0 {
		c.IntraOpThreads = o.IntraOpThreads
	}
	if o.ImageSize != 0 {
		c.ImageSize = o.ImageSize
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
	if o.StrictStatus {
		c.StrictStatus = true
	}
	if o.MaxUploadBytes != 0 {
		c.MaxUploadBytes = o.MaxUploadBytes
	}
	if o.CORSEnabled {
		c.CORSEnabled = true
	}
	if len(o.CORSOrigins) > 0 {
		c.CORSOrigins = append([]string(nil), o.CORSOrigins...)
	}
	if o.ShutdownSec != 0 {
		c.ShutdownSec = o.ShutdownSec
	}
	if o.FrontendDir != "" {
		c.FrontendDir = o.FrontendDir
	}
	return c
}

// FromEnv overlays LEAFD_* variables (and ONNXRUNTIME_LIB) using lookup,
// normally os.LookupEnv.
func (c Config) FromEnv(lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("LEAFD_ADDR", &c.Addr)
	str("LEAFD_MODEL_PATH", &c.ModelPath)
	str("ONNXRUNTIME_LIB", &c.ONNXRuntimeLib)
	str("LEAFD_ONNXRUNTIME_LIB", &c.ONNXRuntimeLib)
	str("LEAFD_LOG_LEVEL", &c.LogLevel)
	str("LEAFD_LOG_FORMAT", &c.LogFormat)
	str("LEAFD_FRONTEND_DIR", &c.FrontendDir)
	if v, ok := lookup("LEAFD_STRICT_STATUS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("LEAFD_STRICT_STATUS: %w", err)
		}
		c.StrictStatus = b
	}
	if v, ok := lookup("LEAFD_MAX_UPLOAD_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, fmt.Errorf("LEAFD_MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}
	if v, ok := lookup("LEAFD_CORS_ORIGINS"); ok && v != "" {
		c.CORSEnabled = true
		c.CORSOrigins = SplitCSV(v)
	}
	return c, nil
}

// Validate rejects values that cannot be served.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("addr is required")
	}
	if strings.TrimSpace(c.ModelPath) == "" {
		return fmt.Errorf("model_path is required")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("max_upload_bytes must be >= 0")
	}
	if c.ImageSize < 0 {
		return fmt.Errorf("image_size must be >= 0")
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "json", "console":
	default:
		return fmt.Errorf("unsupported log_format: %s", c.LogFormat)
	}
	return nil
}

// SplitCSV splits a comma-separated list, trimming blanks.
func SplitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
