package account

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

func ErrAccountNotFound(externalID string) *DomainError {
	return &DomainError{
		Code:    "ACCOUNT_NOT_FOUND",
		Message: fmt.Sprintf("account with external ID %s not found", externalID),
	}
}

func ErrInvalidAccountData(field string, err error) *DomainError {
	return &DomainError{
		Code:    "INVALID_ACCOUNT_DATA",
		Message: fmt.Sprintf("invalid %s", field),
		Err:     err,
	}
}
