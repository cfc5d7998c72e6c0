package recommend

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every *NotFoundError via errors.Is.
var ErrNotFound = errors.New("employee not found")

// NotFoundError is returned when no employee has the requested identifier.
type NotFoundError struct {
	EmployeeID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("employee %q not found", e.EmployeeID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
