package gateway

import "fmt"

// FormatError means the model's reply could not be read as a JSON object,
// even after the fallback extraction.
type FormatError struct {
	// Message is the user-facing summary.
	Message string
	// Raw is the reply text that failed to parse.
	Raw string
	// Err is the last decoding error, if any.
	Err error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Image operation kinds.
const (
	KindVisual = "visual"
	KindLogo   = "logo"
)

// GenerationError means an image reply carried no inline image.
type GenerationError struct {
	Kind string
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case KindLogo:
		return "logo generation failed"
	case KindVisual:
		return "visual generation failed"
	default:
		return "image generation failed"
	}
}
