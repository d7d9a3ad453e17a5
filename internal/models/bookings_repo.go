package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. The unique
// user_id index is what makes the single-booking-per-user lookups well defined.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	bookings, err := mdb.GetCollection(ctx, BookingColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}
	_, err = bookings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_booking_user"),
	})
	if err != nil {
		return fmt.Errorf("error creating booking index: %w", err)
	}

	hotels, err := mdb.GetCollection(ctx, HotelColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}
	_, err = hotels.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "location", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("hotel_location"),
	})
	if err != nil {
		return fmt.Errorf("error creating hotel index: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	if err := booking.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare booking for creation: %w", err)
	}
	col, err := mdb.GetCollection(ctx, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}
	if _, err := col.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrBookingExists
		}
		return nil, fmt.Errorf("failed to insert booking into database: %w", err)
	}
	return booking, nil
}

func (mdb *MongodbRepo) GetBookingByUser(ctx context.Context, userId string) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var booking Booking
	err = col.FindOne(ctx, bson.M{"user_id": userId}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding booking: %w", err)
	}
	return &booking, nil
}

func (mdb *MongodbRepo) UpdateBookingDates(ctx context.Context, userId string, checkIn, checkOut time.Time) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	update := bson.M{
		"$set": bson.M{
			"check_in":   checkIn,
			"check_out":  checkOut,
			"updated_at": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking Booking
	err = col.FindOneAndUpdate(ctx, bson.M{"user_id": userId}, update, opts).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error updating booking: %w", err)
	}
	return &booking, nil
}

// DeleteBookingByUser removes the booking and hands back what was removed, so
// only one caller can ever see (and release) a given booking.
func (mdb *MongodbRepo) DeleteBookingByUser(ctx context.Context, userId string) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var booking Booking
	err = col.FindOneAndDelete(ctx, bson.M{"user_id": userId}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error deleting booking: %w", err)
	}
	return &booking, nil
}
