package services

import "errors"

var (
	ErrUnknown             = errors.New("[service]: unknown error")
	ErrRecordNotFound      = errors.New("[service]: record not found")
	ErrInvalidURL          = errors.New("[service]: invalid url")
	ErrQuotaExceeded       = errors.New("[service]: link quota exceeded")
	ErrAllocationExhausted = errors.New("[service]: short code allocation exhausted")

	ErrMissingFields   = errors.New("[service]: missing required fields")
	ErrInvalidEmail    = errors.New("[service]: invalid email pattern")
	ErrWeakPassword    = errors.New("[service]: password is too weak")
	ErrEmailTaken      = errors.New("[service]: email already registered")
	ErrAccountNotFound = errors.New("[service]: account does not exist")
	ErrWrongPassword   = errors.New("[service]: wrong password")
)
