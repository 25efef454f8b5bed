package main

import (
	"github.com/rs/zerolog"

	"leafd/internal/classifier"
	"leafd/internal/config"
	"leafd/internal/onnx"
)

// onnxOpener returns the production OpenFunc. The runtime environment is
// only initialized once an artifact exists on disk.
func onnxOpener(cfg config.Config, log zerolog.Logger) classifier.OpenFunc {
	return func(path string) (classifier.Model, error) {
		lib := cfg.ONNXRuntimeLib
		if lib == "" {
			lib = onnx.DiscoverLibrary()
		}
		if err := onnx.Init(lib); err != nil {
			return nil, err
		}
		s, err := onnx.Open(path, onnx.Options{
			InputName:      cfg.InputName,
			OutputName:     cfg.OutputName,
			IntraOpThreads: cfg.IntraOpThreads,
			NumClasses:     classifier.NumClasses,
		})
		if err != nil {
			return nil, err
		}
		log.Debug().Str("runtime_lib", lib).Str("input", s.InputName()).Msg("onnx session opened")
		return s, nil
	}
}

// startClassifier performs the one-shot model load for a command.
func startClassifier(cfg config.Config, log zerolog.Logger, open classifier.OpenFunc) *classifier.Classifier {
	if open == nil {
		open = onnxOpener(cfg, log)
	}
	return classifier.Startup(classifier.StartupConfig{
		ModelPath: cfg.ModelPath,
		Open:      open,
		ImageSize: cfg.ImageSize,
		Logger:    log,
	})
}

func shutdownRuntime(log zerolog.Logger) {
	if err := onnx.Shutdown(); err != nil {
		log.Warn().Err(err).Msg("onnx runtime shutdown")
	}
}
