package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hotel is a property whose AvailableRooms acts as the booking ledger.
type Hotel struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Location       string             `bson:"location" json:"location"`
	Rating         float64            `bson:"rating" json:"rating"`
	AvailableRooms int                `bson:"available_rooms" json:"availableRooms"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

type CreateHotelRequest struct {
	Name     string  `json:"name" validate:"required"`
	Location string  `json:"location" validate:"required"`
	Rooms    *int    `json:"rooms" validate:"required,gte=0"`
	Rating   float64 `json:"rating"`
}

// HotelRepo is the persistence side of the hotel catalog and the room ledger.
// ReserveRooms must decrement atomically and only while enough rooms remain.
type HotelRepo interface {
	CreateHotel(ctx context.Context, hotel *Hotel) (*Hotel, error)
	GetHotelByID(ctx context.Context, id primitive.ObjectID) (*Hotel, error)
	ListHotels(ctx context.Context, location string, offset, limit int) ([]*Hotel, error)
	ReserveRooms(ctx context.Context, id primitive.ObjectID, count int) (*Hotel, error)
	ReleaseRooms(ctx context.Context, id primitive.ObjectID, count int) (*Hotel, error)
}

func (h *Hotel) BeforeCreate() error {
	if h.ID.IsZero() {
		h.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	h.UpdatedAt = now
	return nil
}
