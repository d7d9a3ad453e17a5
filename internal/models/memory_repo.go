package models

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo keeps hotels and bookings in process memory. It honours the
// same contracts as MongodbRepo and is used for local runs and tests.
type MemoryRepo struct {
	mu       sync.Mutex
	hotels   map[primitive.ObjectID]Hotel
	bookings map[string]Booking
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		hotels:   make(map[primitive.ObjectID]Hotel),
		bookings: make(map[string]Booking),
	}
}

func (m *MemoryRepo) CreateHotel(ctx context.Context, hotel *Hotel) (*Hotel, error) {
	if err := hotel.BeforeCreate(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hotels[hotel.ID] = *hotel
	out := *hotel
	return &out, nil
}

func (m *MemoryRepo) GetHotelByID(ctx context.Context, id primitive.ObjectID) (*Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hotels[id]
	if !ok {
		return nil, ErrHotelNotFound
	}
	return &h, nil
}

func (m *MemoryRepo) ListHotels(ctx context.Context, location string, offset, limit int) ([]*Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := make([]Hotel, 0, len(m.hotels))
	for _, h := range m.hotels {
		if location == "" || h.Location == location {
			matched = append(matched, h)
		}
	}
	// ObjectIDs sort by creation time, same as the mongo listing.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID.Hex() < matched[j].ID.Hex()
	})

	hotels := make([]*Hotel, 0, limit)
	for i := offset; i < len(matched) && len(hotels) < limit; i++ {
		h := matched[i]
		hotels = append(hotels, &h)
	}
	return hotels, nil
}

func (m *MemoryRepo) ReserveRooms(ctx context.Context, id primitive.ObjectID, count int) (*Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hotels[id]
	if !ok {
		return nil, ErrHotelNotFound
	}
	if h.AvailableRooms <= 0 || h.AvailableRooms < count {
		return nil, ErrNoRoomsAvailable
	}
	h.AvailableRooms -= count
	h.UpdatedAt = time.Now()
	m.hotels[id] = h
	return &h, nil
}

func (m *MemoryRepo) ReleaseRooms(ctx context.Context, id primitive.ObjectID, count int) (*Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hotels[id]
	if !ok {
		return nil, ErrHotelNotFound
	}
	h.AvailableRooms += count
	h.UpdatedAt = time.Now()
	m.hotels[id] = h
	return &h, nil
}

func (m *MemoryRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	if err := booking.BeforeCreate(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.bookings[booking.UserID]; exists {
		return nil, ErrBookingExists
	}
	m.bookings[booking.UserID] = *booking
	out := *booking
	return &out, nil
}

func (m *MemoryRepo) GetBookingByUser(ctx context.Context, userId string) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[userId]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return &b, nil
}

func (m *MemoryRepo) UpdateBookingDates(ctx context.Context, userId string, checkIn, checkOut time.Time) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[userId]
	if !ok {
		return nil, ErrBookingNotFound
	}
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	b.UpdatedAt = time.Now()
	m.bookings[userId] = b
	return &b, nil
}

func (m *MemoryRepo) DeleteBookingByUser(ctx context.Context, userId string) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[userId]
	if !ok {
		return nil, ErrBookingNotFound
	}
	delete(m.bookings, userId)
	return &b, nil
}
