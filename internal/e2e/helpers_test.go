package e2e

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"leafd/internal/classifier"
	"leafd/internal/httpapi"
	"leafd/internal/tensor"
)

// probeModel scores batches with fixed probabilities and remembers the
// shapes it was fed.
type probeModel struct {
	mu     sync.Mutex
	probs  []float32
	shapes [][]int64
}

func (m *probeModel) Predict(ctx context.Context, batch tensor.Tensor) (tensor.Tensor, error) {
	m.mu.Lock()
	m.shapes = append(m.shapes, append([]int64(nil), batch.Shape...))
	m.mu.Unlock()
	return tensor.Tensor{Shape: []int64{1, int64(len(m.probs))}, Data: append([]float32(nil), m.probs...)}, nil
}

func (m *probeModel) Close() error { return nil }

func (m *probeModel) lastShape() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.shapes) == 0 {
		return nil
	}
	return m.shapes[len(m.shapes)-1]
}

// createModelFile writes a placeholder artifact and returns its path.
func createModelFile(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "1.onnx")
	if err := os.WriteFile(p, []byte("onnx"), 0o644); err != nil {
		t.Fatalf("write temp model %s: %v", p, err)
	}
	return p
}

// newServer starts the full stack (startup load + router) in-process.
func newServer(t *testing.T, modelPath string, open classifier.OpenFunc, opts httpapi.Options) (*httptest.Server, *classifier.Classifier) {
	t.Helper()
	clf := classifier.Startup(classifier.StartupConfig{
		ModelPath: modelPath,
		Open:      open,
		Logger:    zerolog.Nop(),
	})
	srv := httptest.NewServer(httpapi.NewMux(clf, opts))
	t.Cleanup(srv.Close)
	return srv, clf
}

func leafJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: 160, B: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg: %v", err)
	}
	return buf.Bytes()
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostFile(t *testing.T, url, field string, data []byte) (*http.Response, []byte) {
	t.Helper()
	resp, body, err := postFile(url, field, data)
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp, body
}

// postFile uploads data as a single multipart file part. Safe to call from
// goroutines other than the test's.
func postFile(url, field string, data []byte) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "leaf.jpg")
	if err != nil {
		return nil, nil, err
	}
	if _, err := fw.Write(data); err != nil {
		return nil, nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body, err
}
