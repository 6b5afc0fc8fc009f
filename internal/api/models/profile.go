package models

// CreateProfileRequest is the body for POST /v1/profiles.
type CreateProfileRequest struct {
	UserID        string  `json:"user_id"`
	Age           int     `json:"age"`
	Sex           string  `json:"sex"`
	WeightKg      float64 `json:"weight_kg"`
	HeightM       float64 `json:"height_m"`
	Location      string  `json:"location"`
	ActivityLevel string  `json:"activity_level"`
}

// Validate checks the request fields and returns field errors, empty when
// the request is valid.
func (r *CreateProfileRequest) Validate() []FieldError {
	var errs []FieldError

	if r.UserID == "" {
		errs = append(errs, FieldError{Field: "user_id", Message: "required", Code: "REQUIRED"})
	}
	if r.Location == "" {
		errs = append(errs, FieldError{Field: "location", Message: "required", Code: "REQUIRED"})
	}
	if r.Sex != "M" && r.Sex != "F" {
		errs = append(errs, FieldError{Field: "sex", Message: "must be M or F", Code: "INVALID_VALUE"})
	}
	if r.Age < 0 || r.Age > 130 {
		errs = append(errs, FieldError{Field: "age", Message: "must be between 0 and 130", Code: "OUT_OF_RANGE"})
	}
	if r.WeightKg < 0 {
		errs = append(errs, FieldError{Field: "weight_kg", Message: "must not be negative", Code: "OUT_OF_RANGE"})
	}
	if r.HeightM < 0 || r.HeightM > 3 {
		errs = append(errs, FieldError{Field: "height_m", Message: "must be between 0 and 3", Code: "OUT_OF_RANGE"})
	}
	if r.ActivityLevel != "" && r.ActivityLevel != "low" && r.ActivityLevel != "medium" && r.ActivityLevel != "high" {
		errs = append(errs, FieldError{Field: "activity_level", Message: "must be low, medium or high", Code: "INVALID_VALUE"})
	}

	return errs
}

// UpdateProfileRequest is the body for PATCH /v1/profiles/{userId}.
// All fields are optional; only present fields are applied.
type UpdateProfileRequest struct {
	Age           *int     `json:"age,omitempty"`
	Sex           *string  `json:"sex,omitempty"`
	WeightKg      *float64 `json:"weight_kg,omitempty"`
	HeightM       *float64 `json:"height_m,omitempty"`
	Location      *string  `json:"location,omitempty"`
	ActivityLevel *string  `json:"activity_level,omitempty"`
}

// Validate checks the present fields and returns field errors.
func (r *UpdateProfileRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Sex != nil && *r.Sex != "M" && *r.Sex != "F" {
		errs = append(errs, FieldError{Field: "sex", Message: "must be M or F", Code: "INVALID_VALUE"})
	}
	if r.Age != nil && (*r.Age < 0 || *r.Age > 130) {
		errs = append(errs, FieldError{Field: "age", Message: "must be between 0 and 130", Code: "OUT_OF_RANGE"})
	}
	if r.Location != nil && *r.Location == "" {
		errs = append(errs, FieldError{Field: "location", Message: "must not be empty", Code: "INVALID_VALUE"})
	}
	if r.ActivityLevel != nil && *r.ActivityLevel != "low" && *r.ActivityLevel != "medium" && *r.ActivityLevel != "high" {
		errs = append(errs, FieldError{Field: "activity_level", Message: "must be low, medium or high", Code: "INVALID_VALUE"})
	}

	return errs
}
