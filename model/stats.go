package model

// Stats is the body of /api/stats. Every field is always present and null
// when it does not apply to the observed outcome.
type Stats struct {
	TempC     *float64 `json:"temp_c"`
	TempRaw   *string  `json:"temp_raw"`
	TempError *string  `json:"temp_error"`

	FanRPM     *int     `json:"fan_rpm"`
	FanPercent *float64 `json:"fan_percent"`
	FanPath    *string  `json:"fan_path"`
	FanError   *string  `json:"fan_error"`
}
