package source

import "fmt"

// Load operations reported by LoadError.
const (
	OpFetch  = "fetch"
	OpStatus = "status"
	OpDecode = "decode"
)

// LoadError is the single failure kind of a catalogue load. Transport
// failures, non-success responses and undecodable bodies all surface as a
// LoadError so callers can handle them uniformly.
type LoadError struct {
	Op     string
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s (%s): %v", e.Source, e.Op, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
