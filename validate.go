package streammd

import (
	"errors"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports invalid UTF-8 input.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

// Documents shorter than this are never flagged on control-byte ratio alone;
// above it, more than 2% control bytes means binary.
const (
	minBinarySample   = 64
	binaryControlPct  = 2
	controlAllowedSet = "\t\n\v\f\r"
)

// ValidateInput returns an error if the document is not valid UTF-8 or
// appears to be binary. Streaming a binary file character by character is
// never what the caller wants.
func ValidateInput(src []byte) error {
	if !utf8.Valid(src) {
		return ErrInvalidUTF8
	}
	control := 0
	for _, b := range src {
		switch {
		case b == 0x00:
			return ErrBinaryInput
		case b >= 0x20 && b != 0x7F:
		case isAllowedControl(b):
		default:
			control++
		}
	}
	if len(src) >= minBinarySample && control*100 > len(src)*binaryControlPct {
		return ErrBinaryInput
	}
	return nil
}

func isAllowedControl(b byte) bool {
	for i := 0; i < len(controlAllowedSet); i++ {
		if controlAllowedSet[i] == b {
			return true
		}
	}
	return false
}
