package user

import "errors"

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrOwnerExists        = errors.New("an owner account already exists")
	ErrInvalidToken       = errors.New("invalid token")
)
