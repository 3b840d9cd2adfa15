package ordering

import (
	"errors"
	"fmt"
)

// ErrPrecondition is matched by every *PreconditionError via errors.Is.
var ErrPrecondition = errors.New("precondition violated")

// PreconditionError reports an update that has no single middle page.
type PreconditionError struct {
	Index  int // Position of the update in its batch, -1 when unknown
	Length int
}

func (e *PreconditionError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("update %d has length %d: middle page requires odd length", e.Index, e.Length)
	}
	return fmt.Sprintf("update has length %d: middle page requires odd length", e.Length)
}

// Is makes errors.Is(err, ErrPrecondition) true.
func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}
