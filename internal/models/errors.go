package models

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInvalidDate      = errors.New("invalid checkin date")
	ErrHotelNotFound    = errors.New("hotel not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNoRoomsAvailable = errors.New("no rooms available")
	ErrBookingExists    = errors.New("user already has an active booking")
)
