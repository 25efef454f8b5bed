// Package classifier owns the potato-leaf disease model for the lifetime of
// the process and turns uploaded image bytes into a labeled prediction.
//
//   - labels.go: ClassNames, the index order shared with the model artifact.
//   - model.go: Model and OpenFunc, the seam to the inference runtime.
//   - loader.go: Load/Startup, one-shot artifact loading with degraded mode.
//   - classifier.go: Classifier, decode -> batch -> infer -> argmax -> label.
//   - errors.go: error types and helpers (IsModelNotFound, IsDecodeFailure, ...).
//   - metrics.go: Prometheus collectors for predictions and model state.
//   - sanity.go: Preflight checks used by `leafd check`.
//
// The Model is injected into New and is never replaced after construction, so
// concurrent Classify calls share it without locking.
package classifier
