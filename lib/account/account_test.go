package account

import (
	"errors"
	"testing"
)

func TestParseNo(t *testing.T) {
	tests := []struct {
		input string
		want  No
		err   error
	}{
		{"1001", 1001, nil},
		{" 42\n", 42, nil},
		{"-3", -3, nil},
		{"", 0, ErrInvalidInput},
		{"abc", 0, ErrInvalidInput},
		{"10.5", 0, ErrInvalidInput},
		{"99999999999999999999", 0, ErrInvalidInput},
	}
	for _, test := range tests {
		test := test
		t.Run(test.input, func(t *testing.T) {
			got, err := ParseNo(test.input)
			if !errors.Is(err, test.err) {
				t.Fatalf("ParseNo(%q) returned error %v, want %v", test.input, err, test.err)
			}
			if got != test.want {
				t.Errorf("ParseNo(%q) = %d, want %d", test.input, got, test.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input, want string
		err         error
	}{
		{"500", "500.00", nil},
		{"250.00", "250.00", nil},
		{" 0.1 ", "0.10", nil},
		{"1.005", "1.01", nil},
		{"-20.5", "-20.50", nil},
		{"1e3", "1000.00", nil},
		{"", "0.00", ErrInvalidInput},
		{"ten", "0.00", ErrInvalidInput},
		{"NaN", "0.00", ErrInvalidInput},
	}
	for _, test := range tests {
		test := test
		t.Run(test.input, func(t *testing.T) {
			got, err := ParseAmount(test.input)
			if !errors.Is(err, test.err) {
				t.Fatalf("ParseAmount(%q) returned error %v, want %v", test.input, err, test.err)
			}
			if s := got.StringFixed(Places); s != test.want {
				t.Errorf("ParseAmount(%q) = %s, want %s", test.input, s, test.want)
			}
		})
	}
}
