package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"leafd/internal/classifier"
	"leafd/internal/config"
	"leafd/pkg/types"
)

func startServe(t *testing.T, cfg config.Config, open classifier.OpenFunc) (string, func() error) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, ln, cfg, zerolog.Nop(), open) }()
	base := "http://" + ln.Addr().String()
	if err := waitHTTP(base+"/healthz", http.StatusOK, 5*time.Second); err != nil {
		cancel()
		t.Fatalf("server not up: %v", err)
	}
	stop := func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(10 * time.Second):
			return errors.New("serve did not return after cancel")
		}
	}
	return base, stop
}

func TestServeDegradedMode(t *testing.T) {
	cfg := config.Default()
	cfg.ModelPath = filepath.Join(t.TempDir(), "absent.onnx")
	opened := false
	open := func(string) (classifier.Model, error) {
		opened = true
		return nil, errors.New("unreachable")
	}
	base, stop := startServe(t, cfg, open)

	resp, body := httpGet(t, base+"/ping")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "Hello ia api") {
		t.Fatalf("ping status=%d body=%s", resp.StatusCode, body)
	}
	resp, _ = httpGet(t, base+"/readyz")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("readyz status=%d", resp.StatusCode)
	}
	resp, body = httpPostImage(t, base+"/predict", leafPNG(t))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("predict status=%d", resp.StatusCode)
	}
	var pe types.PredictError
	if err := json.Unmarshal(body, &pe); err != nil {
		t.Fatalf("json: %v", err)
	}
	if pe.Error != classifier.ModelUnavailableMessage {
		t.Fatalf("error=%q", pe.Error)
	}
	if opened {
		t.Fatalf("opener must not run for a missing artifact")
	}
	if err := stop(); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestServeWithModel(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.ModelPath = filepath.Join(dir, "1.onnx")
	writeFile(t, cfg.ModelPath, "stub")
	open := func(string) (classifier.Model, error) {
		return stubModel{probs: []float32{0.1, 0.2, 0.7}}, nil
	}
	base, stop := startServe(t, cfg, open)
	defer stop()

	if err := waitHTTP(base+"/readyz", http.StatusOK, time.Second); err != nil {
		t.Fatalf("readyz: %v", err)
	}
	resp, body := httpPostImage(t, base+"/predict", leafPNG(t))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("predict status=%d body=%s", resp.StatusCode, body)
	}
	var p types.Prediction
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatalf("json: %v", err)
	}
	if p.Class != "Healthy" || p.Confidence < 0.69 || p.Confidence > 0.71 {
		t.Fatalf("prediction=%+v", p)
	}

	resp, body = httpPostImage(t, base+"/predict", []byte("not an image"))
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "Prediction failed: ") {
		t.Fatalf("non-image status=%d body=%s", resp.StatusCode, body)
	}
}

func TestServeReturnsListenerErrors(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	_ = ln.Close()
	cfg := config.Default()
	cfg.ModelPath = filepath.Join(t.TempDir(), "absent.onnx")
	if err := serve(context.Background(), ln, cfg, zerolog.Nop(), nil); err == nil {
		t.Fatalf("expected error from closed listener")
	}
}
