package errors

import (
	"math"
	"testing"
)

func TestValidateZoom(t *testing.T) {
	tests := []struct {
		name    string
		zoom    float64
		wantErr bool
	}{
		{"one", 1, false},
		{"zero clamps later", 0, false},
		{"negative clamps later", -2, false},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateZoom(tt.zoom)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateZoom(%v) error = %v, wantErr %v", tt.zoom, err, tt.wantErr)
			}
		})
	}
}

func TestValidateThreshold(t *testing.T) {
	if err := ValidateThreshold("gap", 0); err != nil {
		t.Errorf("zero threshold should be valid: %v", err)
	}
	err := ValidateThreshold("gap", -1)
	if err == nil {
		t.Fatal("negative threshold should fail")
	}
	if !Is(err, ErrCodeInvalidConfig) {
		t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidConfig)
	}
}

func TestValidateRatio(t *testing.T) {
	if err := ValidateRatio("min_density", 0.1); err != nil {
		t.Errorf("valid ratio failed: %v", err)
	}
	for _, v := range []float64{-0.5, math.NaN(), math.Inf(-1)} {
		if err := ValidateRatio("min_density", v); err == nil {
			t.Errorf("ValidateRatio(%v) should fail", v)
		}
	}
}
