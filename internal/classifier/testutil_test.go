package classifier

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"leafd/internal/tensor"
)

// fakeModel is an in-memory Model returning fixed probabilities.
type fakeModel struct {
	mu       sync.Mutex
	probs    []float32
	shape    []int64 // output shape override
	err      error
	panicVal any
	calls    int
	lastIn   []int64
	closed   bool
	h, w     int
}

func (f *fakeModel) Predict(ctx context.Context, batch tensor.Tensor) (tensor.Tensor, error) {
	f.mu.Lock()
	f.calls++
	f.lastIn = append([]int64(nil), batch.Shape...)
	f.mu.Unlock()
	if f.panicVal != nil {
		panic(f.panicVal)
	}
	if f.err != nil {
		return tensor.Tensor{}, f.err
	}
	shape := f.shape
	if shape == nil {
		shape = []int64{1, int64(len(f.probs))}
	}
	return tensor.Tensor{Shape: shape, Data: append([]float32(nil), f.probs...)}, nil
}

func (f *fakeModel) Close() error {
	f.closed = true
	return nil
}

// sizedModel adds InputSizer to fakeModel.
type sizedModel struct{ *fakeModel }

func (s sizedModel) InputSize() (int, int, bool) { return s.h, s.w, s.h > 0 && s.w > 0 }

// describedModel adds IODescriber to fakeModel.
type describedModel struct{ *fakeModel }

func (d describedModel) IOInfo() (string, []int64, []int64) {
	return "input_1", []int64{-1, 256, 256, 3}, []int64{-1, 3}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

// writeModelFile creates a placeholder artifact and returns its path.
func writeModelFile(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte("onnx"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return p
}
