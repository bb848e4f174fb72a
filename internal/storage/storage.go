package storage

import "errors"

var (
	ErrEmailTaken      = errors.New("email already in use")
	ErrUserNotFound    = errors.New("user not found")
	ErrSlotTaken       = errors.New("slot already booked")
	ErrBookingNotFound = errors.New("booking not found")
)
