package model

import (
	"errors"
	"fmt"
)

// Error codes for the update domain.
const (
	ErrCodeUpdateNotFound   = "UPD001"
	ErrCodeInvalidPayload   = "UPD002"
	ErrCodeInvalidStatus    = "UPD003"
	ErrCodeImportValidation = "UPD004"
	ErrCodeStorageFailure   = "UPD005"
)

var (
	ErrUpdateNotFound = errors.New("update not found")
	ErrInvalidStatus  = errors.New("invalid update status")
)

// DomainError carries an error code alongside the message so handlers
// can map it to an HTTP response without string matching.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func NewValidationError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidPayload,
		Message: "invalid update payload",
		Err:     err,
	}
}

func NewImportValidationError(index int, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeImportValidation,
		Message: fmt.Sprintf("import entry %d is invalid", index),
		Err:     err,
	}
}
