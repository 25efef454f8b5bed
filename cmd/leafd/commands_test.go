package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"leafd/internal/classifier"
	"leafd/pkg/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func testCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetContext(context.Background())
	return cmd
}

func TestRunPredictPrintsPrediction(t *testing.T) {
	clf := classifier.New(stubModel{probs: []float32{0.8, 0.15, 0.05}}, classifier.Options{})
	var out bytes.Buffer
	if err := runPredict(testCmd(&out), clf, leafPNG(t)); err != nil {
		t.Fatalf("predict: %v", err)
	}
	var p types.Prediction
	if err := json.Unmarshal(out.Bytes(), &p); err != nil {
		t.Fatalf("json: %v (%s)", err, out.String())
	}
	if p.Class != "Early Blight" {
		t.Fatalf("class=%q", p.Class)
	}
}

func TestRunPredictFailures(t *testing.T) {
	var out bytes.Buffer
	degraded := classifier.New(nil, classifier.Options{})
	if err := runPredict(testCmd(&out), degraded, leafPNG(t)); !classifier.IsModelUnavailable(err) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if !strings.Contains(out.String(), classifier.ModelUnavailableMessage) {
		t.Fatalf("output=%q", out.String())
	}

	out.Reset()
	clf := classifier.New(stubModel{probs: []float32{0.8, 0.15, 0.05}}, classifier.Options{})
	err := runPredict(testCmd(&out), clf, []byte("text"))
	if !classifier.IsDecodeFailure(err) {
		t.Fatalf("expected decode failure, got %v", err)
	}
	if !strings.Contains(out.String(), "Prediction failed: ") {
		t.Fatalf("output=%q", out.String())
	}
}

func TestReport(t *testing.T) {
	var out bytes.Buffer
	ok := types.SanityReport{RuntimeLib: "/lib/libonnxruntime.so", RuntimeLibFound: true, ModelPath: "/m/1.onnx", ModelFound: true}
	if err := report(&out, ok, false); err != nil {
		t.Fatalf("report: %v", err)
	}
	if strings.Contains(out.String(), "FAIL") {
		t.Fatalf("unexpected FAIL: %s", out.String())
	}

	out.Reset()
	bad := types.SanityReport{ModelPath: "/m/1.onnx", Errors: []string{"onnxruntime shared library not found"}}
	if err := report(&out, bad, false); !errors.Is(err, errPreflight) {
		t.Fatalf("expected errPreflight, got %v", err)
	}
	if !strings.Contains(out.String(), "[FAIL] onnxruntime") || !strings.Contains(out.String(), "(not found)") {
		t.Fatalf("output=%s", out.String())
	}

	out.Reset()
	_ = report(&out, bad, true)
	var rep types.SanityReport
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("json: %v", err)
	}
	if rep.OK() {
		t.Fatalf("decoded report should not be OK")
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "libonnxruntime.so")
	model := filepath.Join(dir, "1.onnx")
	writeFile(t, lib, "")
	writeFile(t, model, "")

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		root := newRootCmd()
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs(args)
		err := root.Execute()
		return out.String(), err
	}

	out, err := run("check", "--onnxruntime-lib", lib, "--model-path", model)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	out, err = run("check", "--onnxruntime-lib", lib, "--model-path", filepath.Join(dir, "2.onnx"))
	if !errors.Is(err, errPreflight) {
		t.Fatalf("expected preflight failure, got %v\n%s", err, out)
	}
	if !strings.Contains(out, "model file not found at: ") {
		t.Fatalf("output=%s", out)
	}
}

func TestPredictCommandArgs(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"predict"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected missing argument error")
	}
}
