package classifier

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
)

// modelNotFoundError signals that the artifact path does not exist.
type modelNotFoundError struct{ path string }

func (e modelNotFoundError) Error() string { return "model file not found at: " + e.path }

// ErrModelNotFound returns an error for a missing model artifact.
func ErrModelNotFound(path string) error { return modelNotFoundError{path: path} }

// IsModelNotFound reports whether err indicates a missing artifact.
func IsModelNotFound(err error) bool {
	var e modelNotFoundError
	return errors.As(err, &e)
}

// ModelLoadError wraps a failure to deserialize an existing artifact.
type ModelLoadError struct {
	Path string
	Err  error
}

func (e *ModelLoadError) Error() string { return fmt.Sprintf("load model %s: %v", e.Path, e.Err) }

func (e *ModelLoadError) Unwrap() error { return e.Err }

// IsModelLoadFailure reports whether err came from loading (missing or corrupt).
func IsModelLoadFailure(err error) bool {
	var le *ModelLoadError
	return IsModelNotFound(err) || errors.As(err, &le)
}

// ModelUnavailableMessage is the client-visible text when running degraded.
const ModelUnavailableMessage = "Model failed to load. Check server logs for details."

type modelUnavailableError struct{}

func (modelUnavailableError) Error() string   { return ModelUnavailableMessage }
func (modelUnavailableError) StatusCode() int { return http.StatusServiceUnavailable }

// ErrModelUnavailable is returned by Classify when no model is loaded.
var ErrModelUnavailable error = modelUnavailableError{}

// IsModelUnavailable reports whether err indicates degraded mode.
func IsModelUnavailable(err error) bool {
	var e modelUnavailableError
	return errors.As(err, &e)
}

// DecodeError reports bytes that could not be decoded into a pixel tensor.
type DecodeError struct{ Err error }

func (e *DecodeError) Error() string   { return e.Err.Error() }
func (e *DecodeError) Unwrap() error   { return e.Err }
func (e *DecodeError) StatusCode() int { return http.StatusBadRequest }

// IsDecodeFailure reports whether err is a DecodeError.
func IsDecodeFailure(err error) bool {
	var e *DecodeError
	return errors.As(err, &e)
}

// InferenceError reports a failure while shaping, running, or reading the model.
type InferenceError struct{ Err error }

func (e *InferenceError) Error() string   { return e.Err.Error() }
func (e *InferenceError) Unwrap() error   { return e.Err }
func (e *InferenceError) StatusCode() int { return http.StatusInternalServerError }

// IsInferenceFailure reports whether err is an InferenceError.
func IsInferenceFailure(err error) bool {
	var e *InferenceError
	return errors.As(err, &e)
}

// panicError carries a recovered panic and the stack at the point of recovery.
type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.value) }

func newPanicError(v any) *panicError { return &panicError{value: v, stack: debug.Stack()} }

// stackOf returns the panic stack if err carries one, else the current stack.
func stackOf(err error) string {
	var pe *panicError
	if errors.As(err, &pe) {
		return string(pe.stack)
	}
	return string(debug.Stack())
}

// rootCause unwraps err to its innermost error.
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
