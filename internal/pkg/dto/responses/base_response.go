package responses

// ErrorResponse is the single failure shape returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
