package correction

// Request is the JSON body sent to the correction endpoint.
type Request struct {
	Text string `json:"text"`
}

// Response is the JSON body returned on success.
type Response struct {
	CorrectedText string `json:"correctedText"`
}

// ErrorResponse is the JSON body the service returns with a failure status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by GET / on a running service.
type HealthResponse struct {
	Message string `json:"message"`
}
