package extract

import "fmt"

// UnsupportedTypeError is returned for file types the extractor cannot
// decode.
type UnsupportedTypeError struct {
	FileType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.FileType)
}

// DecodeError represents a failure decoding a document's bytes.
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("decode failed: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
