package repositories

import "errors"

var (
	ErrNotFound      = errors.New("[repository]: record not found")
	ErrDuplicateKey  = errors.New("[repository]: duplicate key")
	ErrQuotaExceeded = errors.New("[repository]: owner quota exceeded")
	ErrUnknown       = errors.New("[repository]: unknown error")
)
