package models

// AltitudeResponse is the body for GET /v1/altitudes/{city}.
type AltitudeResponse struct {
	City      string `json:"city"`
	AltitudeM int    `json:"altitude_m"`
}

// CitiesResponse is the body for GET /v1/altitudes.
type CitiesResponse struct {
	Cities []string `json:"cities"`
}

// SetAltitudeRequest is the body for PUT /v1/altitudes/{city}.
type SetAltitudeRequest struct {
	AltitudeM int `json:"altitude_m"`
}

// Validate checks the request fields.
func (r *SetAltitudeRequest) Validate() []FieldError {
	var errs []FieldError

	if r.AltitudeM < -500 || r.AltitudeM > 9000 {
		errs = append(errs, FieldError{Field: "altitude_m", Message: "must be between -500 and 9000", Code: "OUT_OF_RANGE"})
	}

	return errs
}
