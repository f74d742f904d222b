package linemap

import (
	"errors"
	"fmt"
)

// ErrInvariant is matched by every *InvariantError.
var ErrInvariant = errors.New("linemap: internal invariant violated")

// InvariantError reports a defect in the matcher itself. It is never caused by
// input content; a mapping that triggered it must not be used.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return ErrInvariant.Error() + ": " + e.Detail
}

func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}

func invariantf(format string, args ...any) error {
	return &InvariantError{Detail: fmt.Sprintf(format, args...)}
}
