package main

import (
	"testing"
)

func TestParseValues(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []float64
		wantErr  bool
	}{
		{"single", "0.01", []float64{0.01}, false},
		{"list with spaces", "0.01, 0.02 ,0.05", []float64{0.01, 0.02, 0.05}, false},
		{"trailing comma", "1,2,", []float64{1, 2}, false},
		{"empty", "", nil, true},
		{"not a number", "1,abc", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseValues(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("expected %v, got %v", tt.expected, got)
				}
			}
		})
	}
}
