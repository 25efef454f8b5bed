package httpapi

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// uploadField is the form field the web frontend posts the image under.
const uploadField = "file"

var errNoFile = errors.New("no file part in multipart form")

// predict godoc
// @Summary      Classify a potato leaf image
// @Description  Upload one image as multipart/form-data. Logical failures are
// @Description  reported in the body with status 200 unless strict status is enabled.
// @Tags         predict
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  true  "Leaf image (JPEG, PNG, GIF, BMP, TIFF, WebP)"
// @Param        log   query     string  false  "Per-request log level (off|error|info|debug)"
// @Success      200  {object}  types.Prediction
// @Failure      400  {object}  types.PredictError  "strict mode: undecodable image"
// @Failure      413  {object}  types.ErrorResponse
// @Failure      422  {object}  types.ErrorResponse
// @Failure      500  {object}  types.PredictError  "strict mode: inference failure"
// @Failure      503  {object}  types.PredictError  "strict mode: model not loaded"
// @Router       /predict [post]
func (a *api) predict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	lvl := requestLogLevel(r, a.opts.LogLevel)
	rid := middleware.GetReqID(r.Context())

	if a.opts.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, a.opts.MaxUploadBytes)
	}
	data, name, err := readUpload(r)
	if err != nil {
		status := http.StatusUnprocessableEntity
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSONError(w, status, err.Error())
		if lvl >= LevelError {
			a.event(zerolog.WarnLevel, rid).Int("status", status).Dur("dur", time.Since(start)).Err(err).Msg("predict rejected")
		}
		return
	}
	uploadBytes.Observe(float64(len(data)))
	if lvl >= LevelInfo {
		a.event(zerolog.InfoLevel, rid).Str("filename", name).Msg("predict start")
	}
	if lvl >= LevelDebug {
		a.event(zerolog.DebugLevel, rid).Int("bytes", len(data)).Str("content_type", http.DetectContentType(data)).Msg("upload received")
	}

	// Join server base context with request context so shutdown cancels work too.
	ctx, cancel := joinContexts(a.opts.BaseContext, r.Context())
	defer cancel()
	pred, err := a.svc.Classify(ctx, data)
	if err != nil {
		status := predictStatus(err, a.opts.StrictStatus)
		writeJSON(w, status, predictFailure(err))
		if lvl >= LevelError {
			a.event(zerolog.WarnLevel, rid).Int("status", status).Dur("dur", time.Since(start)).Err(err).Msg("predict end")
		}
		return
	}
	writeJSON(w, http.StatusOK, pred)
	if lvl >= LevelInfo {
		a.event(zerolog.InfoLevel, rid).
			Int("status", http.StatusOK).
			Dur("dur", time.Since(start)).
			Str("class", pred.Class).
			Float64("confidence", pred.Confidence).
			Msg("predict end")
	}
}

func (a *api) event(level zerolog.Level, rid string) *zerolog.Event {
	e := a.log.WithLevel(level).Str("path", "/predict")
	if rid != "" {
		e = e.Str("request_id", rid)
	}
	return e
}

// readUpload returns the bytes and filename of the uploaded image. The part
// named "file" wins; otherwise the first file part in field-name order is used.
func readUpload(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(defaultMultipartMemory); err != nil {
		return nil, "", fmt.Errorf("invalid multipart form: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	fh := pickFile(r.MultipartForm.File)
	if fh == nil {
		return nil, "", errNoFile
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	return data, fh.Filename, nil
}

func pickFile(files map[string][]*multipart.FileHeader) *multipart.FileHeader {
	if fhs := files[uploadField]; len(fhs) > 0 {
		return fhs[0]
	}
	names := make([]string, 0, len(files))
	for k := range files {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		if fhs := files[k]; len(fhs) > 0 {
			return fhs[0]
		}
	}
	return nil
}
