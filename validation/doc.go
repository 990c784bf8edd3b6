// Package validation provides input validation for API handlers.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type ProcessRequest struct {
//	    Model    string  `json:"model" validate:"omitempty,oneof=tiny base small medium large"`
//	    Duration float64 `json:"segment_duration" validate:"omitempty,gt=0"`
//	}
//	err := validation.Validate(req)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("filename", name)
//	err := v.Validate()
package validation
