// Package tensor holds the dense float32 arrays exchanged between image
// decoding, the model runtime and the classification step.
package tensor

import (
	"errors"
	"fmt"
)

// Tensor is a dense, row-major float32 array.
type Tensor struct {
	Shape []int64
	Data  []float32
}

// New validates that data holds exactly product(shape) values.
func New(shape []int64, data []float32) (Tensor, error) {
	n, err := numElements(shape)
	if err != nil {
		return Tensor{}, err
	}
	if int64(len(data)) != n {
		return Tensor{}, fmt.Errorf("tensor: shape %v needs %d values, got %d", shape, n, len(data))
	}
	return Tensor{Shape: append([]int64(nil), shape...), Data: data}, nil
}

// Rank is the number of dimensions.
func (t Tensor) Rank() int { return len(t.Shape) }

// ExpandDims returns a view with a size-1 dimension inserted at axis.
// The data slice is shared.
func (t Tensor) ExpandDims(axis int) (Tensor, error) {
	if axis < 0 || axis > len(t.Shape) {
		return Tensor{}, fmt.Errorf("tensor: axis %d out of range for rank %d", axis, len(t.Shape))
	}
	shape := make([]int64, 0, len(t.Shape)+1)
	shape = append(shape, t.Shape[:axis]...)
	shape = append(shape, 1)
	shape = append(shape, t.Shape[axis:]...)
	return Tensor{Shape: shape, Data: t.Data}, nil
}

// Row returns the i-th row of a rank-2 tensor.
func (t Tensor) Row(i int) ([]float32, error) {
	if len(t.Shape) != 2 {
		return nil, fmt.Errorf("tensor: Row needs rank 2, got shape %v", t.Shape)
	}
	if i < 0 || int64(i) >= t.Shape[0] {
		return nil, fmt.Errorf("tensor: row %d out of range for shape %v", i, t.Shape)
	}
	w := t.Shape[1]
	start := int64(i) * w
	return t.Data[start : start+w], nil
}

// ErrEmpty is returned by Argmax for an empty vector.
var ErrEmpty = errors.New("tensor: empty vector")

// Argmax returns the index and value of the largest element. Ties resolve to
// the lowest index.
func Argmax(v []float32) (int, float32, error) {
	if len(v) == 0 {
		return 0, 0, ErrEmpty
	}
	idx, best := 0, v[0]
	for i := 1; i < len(v); i++ {
		if v[i] > best {
			idx, best = i, v[i]
		}
	}
	return idx, best, nil
}

func numElements(shape []int64) (int64, error) {
	n := int64(1)
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("tensor: negative dimension in shape %v", shape)
		}
		n *= d
	}
	return n, nil
}
