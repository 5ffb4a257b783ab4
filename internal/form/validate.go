// Package form validates generation input before it is sent to the service.
// The checks are advisory; the service enforces its own limits.
package form

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lehigh-university-libraries/barcoder/internal/models"
	"github.com/lehigh-university-libraries/barcoder/internal/symbology"
)

var (
	ErrMissingData = errors.New("Please enter data to encode")
	ErrMissingType = errors.New("Please select a code type")
)

// LengthError reports data longer than the symbology's declared limit
type LengthError struct {
	Max    int
	Length int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("Data exceeds maximum length of %d characters", e.Max)
}

// Validate checks the submitted fields and builds the request to send.
// Checks run in order and the first failure is returned.
func Validate(typeID, data, label string) (models.GenerateRequest, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return models.GenerateRequest{}, ErrMissingData
	}

	if typeID == "" {
		return models.GenerateRequest{}, ErrMissingType
	}

	if d, ok := symbology.Lookup(typeID); ok && d.HasMaxLength() {
		if n := utf8.RuneCountInString(data); n > d.MaxLength {
			return models.GenerateRequest{}, &LengthError{Max: d.MaxLength, Length: n}
		}
	}

	return models.GenerateRequest{
		Data:     data,
		Label:    strings.TrimSpace(label),
		CodeType: typeID,
	}, nil
}

// Counter renders the "n/max characters" hint for a symbology with a limit.
// It returns an empty string when the type declares no limit.
func Counter(typeID, data string) string {
	d, ok := symbology.Lookup(typeID)
	if !ok || !d.HasMaxLength() {
		return ""
	}
	return fmt.Sprintf("%d/%d characters", utf8.RuneCountInString(data), d.MaxLength)
}
