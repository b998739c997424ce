// Package repository contains the data access layer. This file defines
// sentinel error values shared across repositories so that handlers can
// translate failure cases into HTTP responses without inspecting driver
// errors. For example, ErrBookingNotFound becomes a 404 while
// ErrUsernameExists becomes a 409.
package repository

import "errors"

// ErrBookingNotFound is returned when a booking id does not match any
// row. Handlers should translate this into an HTTP 404 response.
var ErrBookingNotFound = errors.New("booking not found")

// ErrUsernameExists is returned when registration collides with an
// existing username. Handlers should translate this into an HTTP 409
// response.
var ErrUsernameExists = errors.New("username already exists")
