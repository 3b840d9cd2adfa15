package loader

import "fmt"

// Error code constants shared by the loader and the CLI.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeEmpty       = "E003" // Input has no content
	ErrCodeLoadFailed  = "E004" // File could not be read or compiled
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBadFormat   = "E006" // Unknown file extension
	ErrCodeRuleLine    = "E201" // Malformed rule line
	ErrCodeUpdateLine  = "E202" // Malformed update line
	ErrCodeNegative    = "E203" // Negative page number
	ErrCodeSchema      = "E204" // Structured input does not match the schema
	ErrCodeEmptyUpdate = "E205" // Update with no pages
	ErrCodeEvenUpdate  = "E206" // Update with no middle page
	ErrCodeNoRules     = "E207" // Rule section is empty
)

// LoadError represents an error that occurred while reading an input.
type LoadError struct {
	Code    string
	Message string
	Source  string // File path, "-" for stdin, empty when unknown
	Line    int    // 1-based; 0 when unknown
}

func (e *LoadError) Error() string {
	switch {
	case e.Source != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s: %s", e.Source, e.Line, e.Code, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Code, e.Message)
	case e.Source != "":
		return fmt.Sprintf("%s: %s: %s", e.Source, e.Code, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// ValidationError represents a shape problem in an already parsed puzzle.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}
