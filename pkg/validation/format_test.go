package validation

import (
	"strings"
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		expectErr bool
	}{
		{name: "Valid pretty format", format: "pretty", expectErr: false},
		{name: "Valid csv format", format: "csv", expectErr: false},
		{name: "Valid pdf format", format: "pdf", expectErr: false},
		{name: "Valid yaml format", format: "yaml", expectErr: false},
		{name: "Invalid format", format: "json", expectErr: true},
		{name: "Empty format", format: "", expectErr: true},
		{name: "Case sensitive - uppercase", format: "PRETTY", expectErr: true},
		{name: "Leading/trailing spaces", format: " csv ", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.expectErr && err == nil {
				t.Errorf("ValidateOutputFormat(%q) expected error but got none", tt.format)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("ValidateOutputFormat(%q) unexpected error: %v", tt.format, err)
			}
		})
	}
}

func TestValidateKind(t *testing.T) {
	for _, kind := range []string{"growth", "contribution", "timing"} {
		if err := ValidateKind(kind); err != nil {
			t.Errorf("ValidateKind(%q) unexpected error: %v", kind, err)
		}
	}
	err := ValidateKind("annuity")
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if !strings.Contains(err.Error(), `"annuity"`) {
		t.Errorf("expected error to name the kind, got %v", err)
	}
}
