package export

import "fmt"

// TemplateError represents an error parsing or executing a resume template
type TemplateError struct {
	Template string
	Message  string
	Cause    error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error (%s): %s: %v", e.Template, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error (%s): %s", e.Template, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure to produce the print document
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// SinkError is returned when the fallback document cannot be delivered
type SinkError struct {
	Filename string
	Cause    error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Filename, e.Cause)
}

func (e *SinkError) Unwrap() error {
	return e.Cause
}
