package langtransform

import (
	"errors"
	"strconv"
)

// Sentinel errors.
var (
	errUnknownCondition = errors.New("langtransform: rule references an unknown condition name")
	errEmptyTransform   = errors.New("langtransform: transform has no rules")
	ErrLanguageUnknown  = errors.New("langtransform: no registered transformer for language")
)

// TransformerConfigError is raised by AddDescriptor for a malformed
// descriptor: a sub-condition cycle, more than 32 leaf conditions, or a
// rule referencing an unknown condition name. It carries enough context
// to locate the offending transform.
type TransformerConfigError struct {
	TransformID string
	RuleIndex   int
	Cause       error
}

func (e *TransformerConfigError) Error() string {
	if e.TransformID == "" {
		return "langtransform: config error: " + e.Cause.Error()
	}
	return "langtransform: transform " + e.TransformID + " rule " + strconv.Itoa(e.RuleIndex) + ": " + e.Cause.Error()
}

func (e *TransformerConfigError) Unwrap() error { return e.Cause }
