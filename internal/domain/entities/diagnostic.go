package entities

import "fmt"

// Diagnostic reports a raw record that was rejected during normalization
type Diagnostic struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

// NewDiagnostic builds a diagnostic for the record at index
func NewDiagnostic(index int, err error) Diagnostic {
	return Diagnostic{Index: index, Reason: err.Error(), Err: err}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("record %d: %s", d.Index, d.Reason)
}

// Unwrap exposes the cause for errors.Is checks
func (d Diagnostic) Unwrap() error { return d.Err }

// Error lets a Diagnostic travel as an error value
func (d Diagnostic) Error() string { return d.String() }
