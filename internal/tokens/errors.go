package tokens

import "errors"

var (
	ErrTokenExpired = errors.New("token expired")
	ErrWrongRole    = errors.New("unexpected token role")
)
