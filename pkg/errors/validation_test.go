package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateSize(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"empty", 0, 0, false},
		{"square", 5, 5, false},
		{"zero width", 0, 5, false},
		{"negative width", -1, 5, true},
		{"negative height", 5, -1, true},
		{"both negative", -1, -1, true},
		{"largest side", MaxSide, MaxSide, false},
		{"wide", MaxSide + 1, 1, true},
		{"tall", 1, MaxSide + 1, true},
		{"max int", math.MaxInt, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSize(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSize(%d, %d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSize) {
				t.Errorf("ValidateSize(%d, %d) code = %v, want %v", tt.w, tt.h, GetCode(err), ErrCodeInvalidSize)
			}
		})
	}
}

func TestValidateSizeRange(t *testing.T) {
	tests := []struct {
		name    string
		lo, hi  int
		wantErr bool
	}{
		{"default", 10, 100, false},
		{"unit", 0, 1, false},
		{"negative minimum", -1, 10, true},
		{"empty range", 10, 10, false},
		{"zero range", 0, 0, false},
		{"inverted", 100, 10, true},
		{"largest exclusive bound", 0, MaxSide + 1, false},
		{"bound past limit", 0, MaxSide + 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSizeRange(tt.lo, tt.hi)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSizeRange(%d, %d) error = %v, wantErr %v", tt.lo, tt.hi, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid file", "render.png", false},
		{"valid nested", "out/cloud/render.png", false},
		{"valid absolute", "/tmp/render.png", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
