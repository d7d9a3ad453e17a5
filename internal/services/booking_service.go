package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joshua-takyi/hotelbooking/internal/helpers"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingService keeps booking records and the room ledger in step. Each
// two-step mutation undoes its first step when the second one fails.
type BookingService struct {
	bookingsRepo models.BookingRepo
	inventory    *InventoryService
	logger       *slog.Logger
	now          func() time.Time
}

func NewBookingService(bookingsRepo models.BookingRepo, inventory *InventoryService, logger *slog.Logger) *BookingService {
	return &BookingService{
		bookingsRepo: bookingsRepo,
		inventory:    inventory,
		logger:       logger,
		now:          time.Now,
	}
}

func (bs *BookingService) parseStay(checkInRaw, checkOutRaw string) (time.Time, time.Time, error) {
	checkIn, err := helpers.ParseDate(checkInRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
	}
	checkOut, err := helpers.ParseDate(checkOutRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
	}
	if !helpers.IsFutureOrToday(checkIn, bs.now()) {
		return time.Time{}, time.Time{}, models.ErrInvalidDate
	}
	if checkOut.Before(checkIn) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: check-out precedes check-in", models.ErrInvalidDate)
	}
	return checkIn, checkOut, nil
}

// CreateBooking reserves rooms and then records the booking. A failed insert
// hands the rooms back to the ledger.
func (bs *BookingService) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.HotelID = strings.TrimSpace(req.HotelID)
	if err := models.Validate.Struct(req); err != nil {
		bs.logger.Debug("booking request rejected", "error", err)
		return nil, fmt.Errorf("%w: missing required fields", models.ErrInvalidRequest)
	}
	hotelId, err := primitive.ObjectIDFromHex(req.HotelID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hotel ID", models.ErrInvalidRequest)
	}
	checkIn, checkOut, err := bs.parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	_, err = bs.bookingsRepo.GetBookingByUser(ctx, req.UserID)
	if err == nil {
		return nil, models.ErrBookingExists
	}
	if !errors.Is(err, models.ErrBookingNotFound) {
		return nil, err
	}

	if _, err := bs.inventory.Reserve(ctx, hotelId, req.Rooms); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		HotelID:     hotelId,
		UserID:      req.UserID,
		RoomsBooked: req.Rooms,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
	}
	created, err := bs.bookingsRepo.CreateBooking(ctx, booking)
	if err != nil {
		bs.compensateReserve(ctx, hotelId, req.Rooms, err)
		return nil, err
	}
	return created, nil
}

func (bs *BookingService) compensateReserve(ctx context.Context, hotelId primitive.ObjectID, rooms int, cause error) {
	ctx = context.WithoutCancel(ctx)
	if _, err := bs.inventory.Release(ctx, hotelId, rooms); err != nil {
		bs.logger.Error("failed to return reserved rooms after booking insert failed",
			"hotel_id", hotelId.Hex(),
			"rooms", rooms,
			"cause", cause,
			"error", err,
		)
		return
	}
	bs.logger.Warn("booking insert failed, reserved rooms returned",
		"hotel_id", hotelId.Hex(),
		"rooms", rooms,
		"cause", cause,
	)
}

func (bs *BookingService) GetBookingForUser(ctx context.Context, userId string) (*models.Booking, error) {
	userId = strings.TrimSpace(userId)
	if userId == "" {
		return nil, fmt.Errorf("%w: userId is required", models.ErrInvalidRequest)
	}
	return bs.bookingsRepo.GetBookingByUser(ctx, userId)
}

func (bs *BookingService) UpdateBookingDates(ctx context.Context, userId string, req models.UpdateBookingRequest) (*models.Booking, error) {
	userId = strings.TrimSpace(userId)
	if userId == "" {
		return nil, fmt.Errorf("%w: booking id is required", models.ErrInvalidRequest)
	}
	if err := models.Validate.Struct(req); err != nil {
		bs.logger.Debug("booking update rejected", "error", err)
		return nil, fmt.Errorf("%w: missing required fields", models.ErrInvalidRequest)
	}
	checkIn, checkOut, err := bs.parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	return bs.bookingsRepo.UpdateBookingDates(ctx, userId, checkIn, checkOut)
}

// CancelBooking removes the booking first and only then releases its rooms,
// so a booking can be released at most once. If the release fails the
// booking is put back.
func (bs *BookingService) CancelBooking(ctx context.Context, userId string) (*models.Booking, error) {
	userId = strings.TrimSpace(userId)
	if userId == "" {
		return nil, fmt.Errorf("%w: booking id is required", models.ErrInvalidRequest)
	}

	booking, err := bs.bookingsRepo.DeleteBookingByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	_, err = bs.inventory.Release(ctx, booking.HotelID, booking.RoomsBooked)
	if errors.Is(err, models.ErrHotelNotFound) {
		bs.logger.Warn("cancelled booking references a missing hotel",
			"hotel_id", booking.HotelID.Hex(),
			"user_id", booking.UserID,
		)
		return booking, nil
	}
	if err != nil {
		if bs.restoreBooking(ctx, booking, err) {
			return booking, nil
		}
		return nil, err
	}
	return booking, nil
}

// restoreBooking puts a cancelled booking back after its rooms could not be
// released. If the user booked again in the meantime the old booking cannot
// come back, so the release is retried instead. It reports whether the
// cancellation ended up complete.
func (bs *BookingService) restoreBooking(ctx context.Context, booking *models.Booking, cause error) bool {
	ctx = context.WithoutCancel(ctx)
	_, err := bs.bookingsRepo.CreateBooking(ctx, booking)
	if errors.Is(err, models.ErrBookingExists) {
		if _, err := bs.inventory.Release(ctx, booking.HotelID, booking.RoomsBooked); err != nil {
			bs.logger.Error("booking superseded but rooms not released",
				"booking_id", booking.ID.Hex(),
				"hotel_id", booking.HotelID.Hex(),
				"rooms", booking.RoomsBooked,
				"cause", cause,
				"error", err,
			)
			return false
		}
		bs.logger.Warn("booking superseded during cancel, rooms released on retry",
			"booking_id", booking.ID.Hex(),
			"cause", cause,
		)
		return true
	}
	if err != nil {
		bs.logger.Error("booking removed but rooms not released",
			"booking_id", booking.ID.Hex(),
			"hotel_id", booking.HotelID.Hex(),
			"rooms", booking.RoomsBooked,
			"cause", cause,
			"error", err,
		)
		return false
	}
	bs.logger.Warn("room release failed, booking restored",
		"booking_id", booking.ID.Hex(),
		"cause", cause,
	)
	return false
}
