package errors

const (
	HttpInternalError      = "internal_error"
	HttpInvalidJsonError   = "invalid_json"
	HttpInvalidQueryError  = "invalid_query"
	HttpInvalidActionError = "invalid_action"
	HttpDatasetLoading     = "dataset_loading"
	HttpDatasetFailed      = "dataset_failed"
	HttpSessionNotFound    = "session_not_found"
)

// ErrorResponse is the error body returned by every dashboard endpoint.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
