package domain

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{"valid name", "Research", false},
		{"name with spaces", "Q3 Reports", false},
		{"empty name", "", true},
		{"whitespace only", "   \t", true},
		{"max length", strings.Repeat("a", 200), false},
		{"too long", strings.Repeat("a", 201), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.expectError && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
