package auth

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidEmailOrPassword = errors.New("invalid email or password")
	ErrEmailAlreadyInUse      = errors.New("email already in use")
)
