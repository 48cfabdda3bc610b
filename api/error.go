package api

// ErrorResponse is the JSON body returned for every failed request.
// Code carries the machine-readable taxonomy value; Message is the only
// human-facing text, internal detail never leaks past it.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}
