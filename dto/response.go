package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ExtractResponse carries a single document's outcome
type ExtractResponse struct {
	Outcome     *ParseOutcome `json:"outcome"`
	ProcessedAt string        `json:"processed_at"`
}

// BatchResponse is the final response for a batch run
type BatchResponse struct {
	Summary     *BatchSummary `json:"summary"`
	ProcessedAt string        `json:"processed_at"`
}
