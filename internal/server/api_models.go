package server

// Envelope is the uniform JSON wrapper every endpoint answers with, success
// and failure alike.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message,omitempty"`
}

// AnalyzeRequest is the payload for POST /api/v1/analyze and the first
// client message on the analyze stream.
type AnalyzeRequest struct {
	URL string `json:"url"`
}

// HealthResponse reports liveness and the running version.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ProgressEvent is one websocket frame during a streamed analysis: progress
// frames carry the stage, the final frame carries the assessment.
type ProgressEvent struct {
	Type  string `json:"type"`
	Stage string `json:"stage,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}
