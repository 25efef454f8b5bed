// Package onnx runs classifier artifacts exported to ONNX through the ONNX
// Runtime shared library.
package onnx

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	initOnce sync.Once
	initErr  error
)

// Init points onnxruntime_go at libPath (discovered when empty) and creates
// the process-wide environment. Later calls return the first result.
func Init(libPath string) error {
	initOnce.Do(func() {
		if libPath == "" {
			libPath = DiscoverLibrary()
		}
		if libPath != "" {
			ort.SetSharedLibraryPath(libPath)
		}
		initErr = ort.InitializeEnvironment()
	})
	return initErr
}

// Shutdown destroys the environment created by Init.
func Shutdown() error {
	if !ort.IsInitialized() {
		return nil
	}
	return ort.DestroyEnvironment()
}

// libraryNames lists the file names ONNX Runtime ships under per platform.
func libraryNames() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"libonnxruntime.dylib"}
	case "windows":
		return []string{"onnxruntime.dll"}
	default:
		return []string{"libonnxruntime.so", "onnxruntime.so"}
	}
}

// DiscoverLibrary searches ONNXRUNTIME_LIB, LD_LIBRARY_PATH and the usual
// system library directories. It returns "" when nothing is found.
func DiscoverLibrary() string {
	if v := os.Getenv("ONNXRUNTIME_LIB"); v != "" {
		return v
	}
	var dirs []string
	for _, env := range []string{"LD_LIBRARY_PATH", "DYLD_LIBRARY_PATH"} {
		for _, d := range strings.Split(os.Getenv(env), string(os.PathListSeparator)) {
			if d != "" {
				dirs = append(dirs, d)
			}
		}
	}
	dirs = append(dirs, "/usr/local/lib", "/usr/lib", "/usr/lib/x86_64-linux-gnu", "/usr/lib/aarch64-linux-gnu", "/opt/homebrew/lib")
	return findLibrary(dirs, libraryNames())
}

func findLibrary(dirs, names []string) string {
	for _, d := range dirs {
		for _, n := range names {
			p := filepath.Join(d, n)
			if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
				return p
			}
		}
	}
	return ""
}
