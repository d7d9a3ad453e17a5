package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Booking struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HotelID     primitive.ObjectID `bson:"hotel_id" json:"hotelId"`
	UserID      string             `bson:"user_id" json:"userId"`
	RoomsBooked int                `bson:"rooms_booked" json:"rooms"`
	CheckIn     time.Time          `bson:"check_in" json:"checkIn"`
	CheckOut    time.Time          `bson:"check_out" json:"checkOut"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

type CreateBookingRequest struct {
	HotelID  string `json:"hotelId" validate:"required"`
	UserID   string `json:"-" validate:"required"`
	Rooms    int    `json:"rooms" validate:"required,gt=0"`
	CheckIn  string `json:"checkIn" validate:"required"`
	CheckOut string `json:"checkOut" validate:"required"`
}

type UpdateBookingRequest struct {
	CheckIn  string `json:"checkIn" validate:"required"`
	CheckOut string `json:"checkOut" validate:"required"`
}

// BookingRepo stores bookings keyed by user; at most one booking exists per user.
type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingByUser(ctx context.Context, userId string) (*Booking, error)
	UpdateBookingDates(ctx context.Context, userId string, checkIn, checkOut time.Time) (*Booking, error)
	DeleteBookingByUser(ctx context.Context, userId string) (*Booking, error)
}

func (b *Booking) BeforeCreate() error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	return nil
}
