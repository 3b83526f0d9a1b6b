package extraction

import "github.com/wudi/recipekit/recipe"

// Status is the outcome marker carried by every envelope.
type Status string

const (
	StatusOK      Status = "ok"
	StatusPartial Status = "partial"
	StatusError   Status = "error"
)

// Envelope is the uniform result of a single extraction. Data is nil
// exactly when Status is StatusError.
type Envelope struct {
	RequestID  string        `json:"request_id"`
	Status     Status        `json:"status"`
	Data       *recipe.Draft `json:"data"`
	Error      string        `json:"error,omitempty"`
	Confidence *float64      `json:"confidence,omitempty"`
}

// BatchItem correlates one envelope with its source path.
type BatchItem struct {
	Envelope
	Path string `json:"path"`
}

// BatchSummary counts per-item outcomes of a batch run.
type BatchSummary struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Errors  int `json:"error"`
}

// BatchResult is StatusOK when every item succeeded, StatusError when
// every item failed, and StatusPartial otherwise.
type BatchResult struct {
	Status  Status       `json:"status"`
	Results []BatchItem  `json:"results"`
	Summary BatchSummary `json:"summary"`
}

// ImageInfo describes an image without decoding its pixels.
type ImageInfo struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	SizeBytes int64  `json:"size_bytes"`
}

// Validation is the result of a pre-flight image check.
type Validation struct {
	Valid bool       `json:"valid"`
	Error string     `json:"error,omitempty"`
	Info  *ImageInfo `json:"info,omitempty"`
}
