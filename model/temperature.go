package model

// TemperatureResponse is the body of a successful /api/temp request.
type TemperatureResponse struct {
	TempC *float64 `json:"temp_c"`
	Raw   string   `json:"raw"`
}

// ErrorResponse is the body of a failed /api/temp request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}
