package resolve

import (
	"errors"
	"fmt"
)

// ErrEmptyModifierSet is returned when construction receives no descriptors
// at all. A degenerate input gets an explicit error instead of a latent
// panic deep inside a max-range computation.
var ErrEmptyModifierSet = errors.New("no modifier descriptors to build from")

// InvalidFieldCountError reports a field enumeration size outside 1..MaxFields.
type InvalidFieldCountError struct {
	Count int
}

func (e *InvalidFieldCountError) Error() string {
	return fmt.Sprintf("field count %d outside 1..%d", e.Count, MaxFields)
}
