package errors

import "math"

// ValidateZoom rejects zoom levels that cannot be used for radius scaling.
// Values at or below zero are allowed by the frame builder (they clamp to
// 0.1) but NaN and infinities are not.
func ValidateZoom(zoom float64) error {
	if math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		return New(ErrCodeInvalidInput, "zoom must be a finite number")
	}
	return nil
}

// ValidateThreshold validates a non-negative integer tuning parameter.
func ValidateThreshold(name string, v int) error {
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s must be >= 0 (got %d)", name, v)
	}
	return nil
}

// ValidateRatio validates a non-negative finite float tuning parameter.
func ValidateRatio(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeInvalidConfig, "%s must be a finite number >= 0 (got %v)", name, v)
	}
	return nil
}
