package classifier

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"leafd/internal/common/fsutil"
)

// Load checks that path exists and deserializes it with open. Panics raised
// by open are recovered and returned as a ModelLoadError.
func Load(path string, open OpenFunc) (m Model, err error) {
	if !fsutil.PathExists(path) {
		return nil, ErrModelNotFound(path)
	}
	if open == nil {
		return nil, &ModelLoadError{Path: path, Err: errors.New("no model opener configured")}
	}
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = &ModelLoadError{Path: path, Err: newPanicError(r)}
		}
	}()
	m, err = open(path)
	if err != nil {
		return nil, &ModelLoadError{Path: path, Err: err}
	}
	if m == nil {
		return nil, &ModelLoadError{Path: path, Err: errors.New("opener returned no model")}
	}
	return m, nil
}

// StartupConfig describes the one-shot model load performed at process start.
type StartupConfig struct {
	// ModelPath as configured; relative paths are anchored at BaseDir.
	ModelPath string
	// BaseDir defaults to the directory of the running executable.
	BaseDir string
	Open    OpenFunc
	// ImageSize forces a square resize before inference (0 = model decides).
	ImageSize int
	Logger    zerolog.Logger
}

// Startup resolves and loads the artifact. It never fails: on any error the
// diagnostics are logged and the returned Classifier runs in degraded mode.
func Startup(cfg StartupConfig) *Classifier {
	log := cfg.Logger
	base := cfg.BaseDir
	if base == "" {
		if dir, err := fsutil.ExecutableDir(); err == nil {
			base = dir
		} else {
			log.Warn().Err(err).Msg("cannot locate executable; resolving model path from working directory")
		}
	}
	path, err := fsutil.Resolve(cfg.ModelPath, base)
	if err != nil {
		path = cfg.ModelPath
		err = &ModelLoadError{Path: cfg.ModelPath, Err: fmt.Errorf("resolve path: %w", err)}
	}
	log.Info().Str("path", path).Bool("exists", fsutil.PathExists(path)).Msg("loading model")

	var m Model
	if err == nil {
		m, err = Load(path, cfg.Open)
	}
	opts := Options{ModelPath: path, ImageSize: cfg.ImageSize, Logger: log}
	if err != nil {
		log.Error().
			Err(err).
			Str("error_type", fmt.Sprintf("%T", rootCause(err))).
			Str("stack", stackOf(err)).
			Str("path", path).
			Msg("failed to load model; serving in degraded mode")
		opts.LoadError = err
		modelLoaded.Set(0)
		return New(nil, opts)
	}
	modelLoaded.Set(1)
	c := New(m, opts)
	ev := log.Info().Str("path", path)
	if d, ok := m.(IODescriber); ok {
		name, in, out := d.IOInfo()
		ev = ev.Str("input_name", name).Ints64("input_shape", in).Ints64("output_shape", out)
	}
	if c.height > 0 {
		ev = ev.Int("input_height", c.height).Int("input_width", c.width)
	}
	ev.Msg("model loaded")
	return c
}
