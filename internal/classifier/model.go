package classifier

import (
	"context"

	"leafd/internal/tensor"
)

// Model is a loaded classifier artifact. Predict receives a 1 x H x W x C
// batch and returns a 1 x NumClasses tensor of probabilities. Implementations
// must be safe for concurrent Predict calls.
type Model interface {
	Predict(ctx context.Context, batch tensor.Tensor) (tensor.Tensor, error)
	Close() error
}

// InputSizer is implemented by models that declare fixed spatial input
// dimensions. ok is false when either dimension is dynamic.
type InputSizer interface {
	InputSize() (height, width int, ok bool)
}

// IODescriber is implemented by models that can report their graph
// signature for startup logging.
type IODescriber interface {
	IOInfo() (inputName string, inputShape, outputShape []int64)
}

// OpenFunc deserializes the artifact at path.
type OpenFunc func(path string) (Model, error)
