package users

import "errors"

// ErrUserNotFound is returned when no user matches the phone number.
var ErrUserNotFound = errors.New("user not found")
