package customer

import (
	"errors"
	"fmt"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidPIN       = errors.New("invalid pin")
)

// NotFoundError carries the missed id so the message can be surfaced verbatim.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Customer with id '%d' not found.", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrCustomerNotFound
}

type InvalidPINError struct {
	PIN int
}

func (e *InvalidPINError) Error() string {
	return fmt.Sprintf("Given pin '%d' is invalid", e.PIN)
}

func (e *InvalidPINError) Is(target error) bool {
	return target == ErrInvalidPIN
}
