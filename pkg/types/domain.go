package types

// Model states reported by StatusResponse.State.
const (
	StateReady    = "ready"
	StateDegraded = "degraded"
)

// SanityReport describes the preflight checks run by `leafd check`.
type SanityReport struct {
	RuntimeLib      string   `json:"runtime_lib,omitempty"`
	RuntimeLibFound bool     `json:"runtime_lib_found"`
	ModelPath       string   `json:"model_path"`
	ModelFound      bool     `json:"model_found"`
	FrontendDir     string   `json:"frontend_dir,omitempty"`
	FrontendFound   bool     `json:"frontend_found,omitempty"`
	Errors          []string `json:"errors,omitempty"`
}

// OK reports whether all required items were found.
func (r SanityReport) OK() bool { return len(r.Errors) == 0 }
