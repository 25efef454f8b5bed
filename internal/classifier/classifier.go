package classifier

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"leafd/internal/imaging"
	"leafd/internal/tensor"
	"leafd/pkg/types"
)

// Options configures a Classifier.
type Options struct {
	// ModelPath is reported by Status.
	ModelPath string
	// LoadError is the reason the model is absent, if it is.
	LoadError error
	// ImageSize forces a square resize (0 = use the model's declared size, if any).
	ImageSize int
	Logger    zerolog.Logger
}

// Classifier maps image bytes to a Prediction using an injected Model.
type Classifier struct {
	model     Model
	modelPath string
	loadErr   string
	height    int
	width     int
	log       zerolog.Logger
	startTime time.Time
}

// New builds a Classifier. A nil model puts it in degraded mode.
func New(model Model, opts Options) *Classifier {
	c := &Classifier{
		model:     model,
		modelPath: opts.ModelPath,
		log:       opts.Logger,
		startTime: time.Now(),
	}
	if opts.LoadError != nil {
		c.loadErr = opts.LoadError.Error()
	}
	switch {
	case opts.ImageSize > 0:
		c.height, c.width = opts.ImageSize, opts.ImageSize
	case model != nil:
		if s, ok := model.(InputSizer); ok {
			if h, w, ok := s.InputSize(); ok {
				c.height, c.width = h, w
			}
		}
	}
	return c
}

// Ready reports whether a model is loaded.
func (c *Classifier) Ready() bool { return c.model != nil }

// Classify decodes data, runs the model on a batch of one and returns the
// most probable label. Errors are ErrModelUnavailable, *DecodeError or
// *InferenceError.
func (c *Classifier) Classify(ctx context.Context, data []byte) (types.Prediction, error) {
	if c.model == nil {
		predictionFailuresTotal.WithLabelValues(failureReason(ErrModelUnavailable)).Inc()
		return types.Prediction{}, ErrModelUnavailable
	}
	p, err := c.classify(ctx, data)
	if err != nil {
		predictionFailuresTotal.WithLabelValues(failureReason(err)).Inc()
		c.log.Error().
			Err(err).
			Str("error_type", fmt.Sprintf("%T", rootCause(err))).
			Str("stack", stackOf(err)).
			Msg("prediction failed")
		return types.Prediction{}, err
	}
	predictionsTotal.WithLabelValues(p.Class).Inc()
	return p, nil
}

func (c *Classifier) classify(ctx context.Context, data []byte) (types.Prediction, error) {
	img, err := imaging.Decode(data, imaging.Options{Width: c.width, Height: c.height})
	if err != nil {
		return types.Prediction{}, &DecodeError{Err: err}
	}
	batch, err := img.Tensor.ExpandDims(0)
	if err != nil {
		return types.Prediction{}, &InferenceError{Err: err}
	}
	c.log.Debug().
		Str("format", img.Format).
		Ints64("shape", batch.Shape).
		Int("bytes", len(data)).
		Msg("image decoded")

	out, err := c.predict(ctx, batch)
	if err != nil {
		return types.Prediction{}, &InferenceError{Err: err}
	}
	c.log.Debug().Ints64("shape", out.Shape).Msg("model output")

	probs, err := outputRow(out)
	if err != nil {
		return types.Prediction{}, &InferenceError{Err: err}
	}
	idx, conf, err := tensor.Argmax(probs)
	if err != nil {
		return types.Prediction{}, &InferenceError{Err: err}
	}
	return types.Prediction{Class: ClassNames[idx], Confidence: float64(conf)}, nil
}

// predict runs the model, converting panics into errors.
func (c *Classifier) predict(ctx context.Context, batch tensor.Tensor) (out tensor.Tensor, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
		}
		inferenceDuration.Observe(time.Since(start).Seconds())
	}()
	return c.model.Predict(ctx, batch)
}

// outputRow validates a 1 x NumClasses probability tensor and returns its row.
func outputRow(out tensor.Tensor) ([]float32, error) {
	if out.Rank() != 2 || out.Shape[0] != 1 || out.Shape[1] != int64(NumClasses) {
		return nil, fmt.Errorf("unexpected model output shape %v, want [1 %d]", out.Shape, NumClasses)
	}
	row, err := out.Row(0)
	if err != nil {
		return nil, err
	}
	for i, p := range row {
		if math.IsNaN(float64(p)) || p < 0 || p > 1 {
			return nil, fmt.Errorf("model output %d is not a probability: %v", i, p)
		}
	}
	return row, nil
}

// Status returns a snapshot for GET /status.
func (c *Classifier) Status() types.StatusResponse {
	state := types.StateReady
	if c.model == nil {
		state = types.StateDegraded
	}
	now := time.Now()
	return types.StatusResponse{
		State:          state,
		ModelPath:      c.modelPath,
		LoadError:      c.loadErr,
		Classes:        Classes(),
		InputHeight:    c.height,
		InputWidth:     c.width,
		UptimeSeconds:  int64(now.Sub(c.startTime).Seconds()),
		ServerTimeUnix: now.Unix(),
	}
}

// Close releases the model, if any.
func (c *Classifier) Close() error {
	if c.model == nil {
		return nil
	}
	return c.model.Close()
}
