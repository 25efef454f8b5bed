package classifier

import (
	"leafd/internal/common/fsutil"
	"leafd/pkg/types"
)

// PreflightConfig lists what `leafd check` verifies.
type PreflightConfig struct {
	// RuntimeLib is the inference runtime shared library ("" = not found).
	RuntimeLib string
	ModelPath  string
	BaseDir    string
	// FrontendDir is optional; it is only checked when set.
	FrontendDir string
}

// Preflight validates that the runtime library and model artifact are present.
// It does not load anything and is safe to call at any time.
func Preflight(cfg PreflightConfig) types.SanityReport {
	r := types.SanityReport{RuntimeLib: cfg.RuntimeLib}
	if cfg.RuntimeLib == "" {
		r.Errors = append(r.Errors, "onnxruntime shared library not found")
	} else if fsutil.IsFile(cfg.RuntimeLib) {
		r.RuntimeLibFound = true
	} else {
		r.Errors = append(r.Errors, "onnxruntime shared library missing: "+cfg.RuntimeLib)
	}

	base := cfg.BaseDir
	if base == "" {
		base, _ = fsutil.ExecutableDir()
	}
	path, err := fsutil.Resolve(cfg.ModelPath, base)
	if err != nil {
		r.ModelPath = cfg.ModelPath
		r.Errors = append(r.Errors, err.Error())
	} else {
		r.ModelPath = path
		if fsutil.IsFile(path) {
			r.ModelFound = true
		} else {
			r.Errors = append(r.Errors, ErrModelNotFound(path).Error())
		}
	}

	if cfg.FrontendDir != "" {
		dir, err := fsutil.Resolve(cfg.FrontendDir, base)
		if err != nil {
			dir = cfg.FrontendDir
		}
		r.FrontendDir = dir
		if fsutil.PathExists(dir) {
			r.FrontendFound = true
		} else {
			r.Errors = append(r.Errors, "frontend directory not found: "+dir)
		}
	}
	return r
}
