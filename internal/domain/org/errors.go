package org

import "fmt"

// Domain errors

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Predefined domain errors

func ErrOrganizationNotFound(id string) *DomainError {
	return &DomainError{
		Code:    "ORGANIZATION_NOT_FOUND",
		Message: fmt.Sprintf("organization with ID %s not found", id),
	}
}

func ErrInvalidOrganizationData(field string, err error) *DomainError {
	return &DomainError{
		Code:    "INVALID_ORGANIZATION_DATA",
		Message: fmt.Sprintf("invalid %s", field),
		Err:     err,
	}
}
