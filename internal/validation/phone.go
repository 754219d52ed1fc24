package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DigitsOnly strips every non-digit rune from a phone number.
func DigitsOnly(phone string) string {
	return nonDigitPattern.ReplaceAllString(phone, "")
}

// NormalizeE164 converts a user-entered phone number to E.164. A bare
// ten-digit number is assumed to be NANP and prefixed with +1.
func NormalizeE164(phone string) string {
	digits := DigitsOnly(phone)
	if len(digits) == 10 {
		return "+1" + digits
	}
	return "+" + digits
}

// FlexBool unmarshals a boolean that clients may send as a JSON bool or
// as the form-style strings "true" and "on".
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = FlexBool(s == "true" || s == "on")
		return nil
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid boolean value: %w", err)
	}
	*b = FlexBool(v)
	return nil
}
