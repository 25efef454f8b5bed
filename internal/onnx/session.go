package onnx

import (
	"context"
	"errors"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"leafd/internal/tensor"
)

// Options selects the graph inputs/outputs and session tunables.
type Options struct {
	// InputName/OutputName default to the first input/output of the graph.
	InputName  string
	OutputName string
	// IntraOpThreads caps ORT's per-op thread pool (0 = ORT default).
	IntraOpThreads int
	// NumClasses is used when the output width is dynamic.
	NumClasses int
}

// Session is a loaded ONNX graph. Predict is safe for concurrent use; Close
// waits for in-flight runs before destroying the session.
type Session struct {
	mu       sync.RWMutex
	sess     *ort.DynamicAdvancedSession
	input    ort.InputOutputInfo
	output   ort.InputOutputInfo
	outWidth int64
}

// Open reads the graph metadata at path and creates a session for it.
// The ORT environment must already be initialized (see Init).
func Open(path string, opts Options) (*Session, error) {
	inputs, outputs, err := ort.GetInputOutputInfo(path)
	if err != nil {
		return nil, fmt.Errorf("read model info: %w", err)
	}
	in, err := pick(inputs, opts.InputName, "input")
	if err != nil {
		return nil, err
	}
	out, err := pick(outputs, opts.OutputName, "output")
	if err != nil {
		return nil, err
	}
	width := int64(opts.NumClasses)
	if dims := out.Dimensions; len(dims) > 0 && dims[len(dims)-1] > 0 {
		width = dims[len(dims)-1]
	}
	if width <= 0 {
		return nil, fmt.Errorf("output %q has dynamic width and no class count configured", out.Name)
	}

	var so *ort.SessionOptions
	if opts.IntraOpThreads > 0 {
		so, err = ort.NewSessionOptions()
		if err != nil {
			return nil, fmt.Errorf("session options: %w", err)
		}
		defer so.Destroy()
		if err := so.SetIntraOpNumThreads(opts.IntraOpThreads); err != nil {
			return nil, fmt.Errorf("set intra-op threads: %w", err)
		}
	}
	sess, err := ort.NewDynamicAdvancedSession(path, []string{in.Name}, []string{out.Name}, so)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &Session{sess: sess, input: in, output: out, outWidth: width}, nil
}

func pick(infos []ort.InputOutputInfo, name, kind string) (ort.InputOutputInfo, error) {
	if len(infos) == 0 {
		return ort.InputOutputInfo{}, fmt.Errorf("model has no %ss", kind)
	}
	if name == "" {
		return infos[0], nil
	}
	for _, info := range infos {
		if info.Name == name {
			return info, nil
		}
	}
	return ort.InputOutputInfo{}, fmt.Errorf("model has no %s named %q", kind, name)
}

// InputName is the graph input fed by Predict.
func (s *Session) InputName() string { return s.input.Name }

// IOInfo reports the graph input name and the declared input and output
// shapes (-1 marks a dynamic dimension).
func (s *Session) IOInfo() (string, []int64, []int64) {
	return s.input.Name, []int64(s.input.Dimensions), []int64(s.output.Dimensions)
}

// InputSize reports the fixed H and W of an NHWC input, if declared.
func (s *Session) InputSize() (int, int, bool) {
	dims := s.input.Dimensions
	if len(dims) != 4 || dims[1] <= 0 || dims[2] <= 0 {
		return 0, 0, false
	}
	return int(dims[1]), int(dims[2]), true
}

// Predict runs the graph on batch (N x H x W x C) and returns an N x width
// tensor copied out of ORT memory.
func (s *Session) Predict(ctx context.Context, batch tensor.Tensor) (tensor.Tensor, error) {
	if err := ctx.Err(); err != nil {
		return tensor.Tensor{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess == nil {
		return tensor.Tensor{}, errors.New("onnx session is closed")
	}
	if batch.Rank() == 0 {
		return tensor.Tensor{}, errors.New("empty input tensor")
	}
	in, err := ort.NewTensor(ort.NewShape(batch.Shape...), batch.Data)
	if err != nil {
		return tensor.Tensor{}, fmt.Errorf("input tensor: %w", err)
	}
	defer in.Destroy()
	n := batch.Shape[0]
	out, err := ort.NewEmptyTensor[float32](ort.NewShape(n, s.outWidth))
	if err != nil {
		return tensor.Tensor{}, fmt.Errorf("output tensor: %w", err)
	}
	defer out.Destroy()

	if err := s.sess.Run([]ort.ArbitraryTensor{in}, []ort.ArbitraryTensor{out}); err != nil {
		return tensor.Tensor{}, fmt.Errorf("inference failed: %w", err)
	}
	data := append([]float32(nil), out.GetData()...)
	return tensor.New([]int64{n, s.outWidth}, data)
}

// Close destroys the session.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return nil
	}
	err := s.sess.Destroy()
	s.sess = nil
	return err
}
