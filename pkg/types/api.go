package types

// Prediction is the successful response of POST /predict.
type Prediction struct {
	// Predicted label, one of the fixed class names.
	// example: Late Blight
	Class string `json:"class" example:"Late Blight"`
	// Probability of the predicted label.
	// example: 0.9731
	Confidence float64 `json:"confidence" example:"0.9731"`
}

// PredictError is the logical-failure response of POST /predict.
type PredictError struct {
	// Short failure description. Diagnostics stay in server logs.
	// example: Prediction failed: cannot identify image file
	Error string `json:"error" example:"Prediction failed: cannot identify image file"`
}

// ErrorResponse is a consistent JSON error payload for protocol-level errors.
type ErrorResponse struct {
	// Error message.
	// example: no file part in multipart form
	Error string `json:"error" example:"no file part in multipart form"`
	// HTTP status code.
	// example: 422
	Code int `json:"code" example:"422"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Overall state: ready or degraded.
	// example: ready
	State string `json:"state" example:"ready"`
	// Resolved path of the model artifact.
	// example: /srv/leafd/models/1.onnx
	ModelPath string `json:"model_path" example:"/srv/leafd/models/1.onnx"`
	// Load failure message when degraded.
	LoadError string `json:"load_error,omitempty"`
	// Output labels in index order.
	Classes []string `json:"classes"`
	// Fixed input height expected by the model (0 = any).
	// example: 256
	InputHeight int `json:"input_height" example:"256"`
	// Fixed input width expected by the model (0 = any).
	// example: 256
	InputWidth int `json:"input_width" example:"256"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
