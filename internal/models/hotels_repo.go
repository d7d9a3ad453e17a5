package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (mdb *MongodbRepo) CreateHotel(ctx context.Context, hotel *Hotel) (*Hotel, error) {
	if err := hotel.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare hotel for creation: %w", err)
	}
	col, err := mdb.GetCollection(ctx, HotelColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}
	if _, err := col.InsertOne(ctx, hotel); err != nil {
		return nil, fmt.Errorf("failed to insert hotel into database: %w", err)
	}
	return hotel, nil
}

func (mdb *MongodbRepo) GetHotelByID(ctx context.Context, id primitive.ObjectID) (*Hotel, error) {
	col, err := mdb.GetCollection(ctx, HotelColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var hotel Hotel
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&hotel)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding hotel by ID: %w", err)
	}
	return &hotel, nil
}

func (mdb *MongodbRepo) ListHotels(ctx context.Context, location string, offset, limit int) ([]*Hotel, error) {
	col, err := mdb.GetCollection(ctx, HotelColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	filter := bson.M{}
	if location != "" {
		filter["location"] = location
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding hotels: %w", err)
	}
	defer cursor.Close(ctx)

	hotels := make([]*Hotel, 0, limit)
	for cursor.Next(ctx) {
		var hotel Hotel
		if err := cursor.Decode(&hotel); err != nil {
			return nil, fmt.Errorf("error decoding hotel: %w", err)
		}
		hotels = append(hotels, &hotel)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return hotels, nil
}

// ReserveRooms decrements available_rooms only when at least count rooms remain,
// so two concurrent reservations can never push the ledger below zero.
func (mdb *MongodbRepo) ReserveRooms(ctx context.Context, id primitive.ObjectID, count int) (*Hotel, error) {
	col, err := mdb.GetCollection(ctx, HotelColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	filter := bson.M{
		"_id":             id,
		"available_rooms": bson.M{"$gte": count, "$gt": 0},
	}
	update := bson.M{
		"$inc": bson.M{"available_rooms": -count},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var hotel Hotel
	err = col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&hotel)
	if err == nil {
		return &hotel, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("error reserving rooms: %w", err)
	}

	// Nothing matched: either the hotel is gone or it is short on rooms.
	if _, err := mdb.GetHotelByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrNoRoomsAvailable
}

func (mdb *MongodbRepo) ReleaseRooms(ctx context.Context, id primitive.ObjectID, count int) (*Hotel, error) {
	col, err := mdb.GetCollection(ctx, HotelColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	update := bson.M{
		"$inc": bson.M{"available_rooms": count},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var hotel Hotel
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&hotel)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error releasing rooms: %w", err)
	}
	return &hotel, nil
}
