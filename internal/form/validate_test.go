package form

import (
	"errors"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/barcoder/internal/models"
	"github.com/lehigh-university-libraries/barcoder/internal/symbology"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		typeID   string
		data     string
		label    string
		expected models.GenerateRequest
		err      error
	}{
		{
			name:     "trims data and label",
			typeID:   "QR_Model_2",
			data:     "  https://example.com \n",
			label:    "  home ",
			expected: models.GenerateRequest{Data: "https://example.com", Label: "home", CodeType: "QR_Model_2"},
		},
		{
			name:     "EAN13 at the limit",
			typeID:   "EAN13",
			data:     "123456789012",
			expected: models.GenerateRequest{Data: "123456789012", CodeType: "EAN13"},
		},
		{
			name:   "EAN13 over the limit",
			typeID: "EAN13",
			data:   "1234567890123",
			err:    &LengthError{Max: 12, Length: 13},
		},
		{
			name:     "surrounding whitespace does not count toward the limit",
			typeID:   "UPC",
			data:     "   12345678901   ",
			expected: models.GenerateRequest{Data: "12345678901", CodeType: "UPC"},
		},
		{
			name:     "limit counts characters not bytes",
			typeID:   "Micro_QR",
			data:     strings.Repeat("é", 35),
			expected: models.GenerateRequest{Data: strings.Repeat("é", 35), CodeType: "Micro_QR"},
		},
		{
			name:   "blank data",
			typeID: "Code128",
			data:   " \t ",
			err:    ErrMissingData,
		},
		{
			name: "missing data is reported before missing type",
			data: "",
			err:  ErrMissingData,
		},
		{
			name: "no type selected",
			data: "hello",
			err:  ErrMissingType,
		},
		{
			name: "no type selected with oversized data",
			data: strings.Repeat("x", 10000),
			err:  ErrMissingType,
		},
		{
			name:     "unknown type skips the length check",
			typeID:   "Hanxin",
			data:     strings.Repeat("x", 10000),
			expected: models.GenerateRequest{Data: strings.Repeat("x", 10000), CodeType: "Hanxin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Validate(tt.typeID, tt.data, tt.label)
			if tt.err != nil {
				var lengthErr *LengthError
				switch {
				case errors.As(tt.err, &lengthErr):
					var got *LengthError
					if !errors.As(err, &got) {
						t.Fatalf("Expected LengthError, got %v", err)
					}
					if *got != *lengthErr {
						t.Errorf("Expected %+v, got %+v", *lengthErr, *got)
					}
				case !errors.Is(err, tt.err):
					t.Fatalf("Expected %v, got %v", tt.err, err)
				}
				if req != (models.GenerateRequest{}) {
					t.Errorf("Expected no request on failure, got %+v", req)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if req != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, req)
			}
		})
	}
}

func TestValidateEveryDescriptorLimit(t *testing.T) {
	for _, d := range symbology.All() {
		t.Run(d.ID, func(t *testing.T) {
			if _, err := Validate(d.ID, strings.Repeat("1", d.MaxLength), ""); err != nil {
				t.Errorf("Expected data at the limit to pass, got %v", err)
			}
			_, err := Validate(d.ID, strings.Repeat("1", d.MaxLength+1), "")
			var lengthErr *LengthError
			if !errors.As(err, &lengthErr) || lengthErr.Max != d.MaxLength {
				t.Errorf("Expected LengthError with max %d, got %v", d.MaxLength, err)
			}
		})
	}
}

func TestLengthErrorMessage(t *testing.T) {
	err := &LengthError{Max: 48, Length: 50}
	if err.Error() != "Data exceeds maximum length of 48 characters" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

func TestCounter(t *testing.T) {
	if got := Counter("Code39", "PRODUCT-123"); got != "11/43 characters" {
		t.Errorf("Expected 11/43 characters, got %q", got)
	}
	if got := Counter("", "abc"); got != "" {
		t.Errorf("Expected empty counter without a type, got %q", got)
	}
}
