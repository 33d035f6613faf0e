package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "hotelluxury/internal/bookings/errors"
	"hotelluxury/pkg/config"
	mongodb "hotelluxury/pkg/db/mongo"
	"hotelluxury/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "bookings"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) (*model.InsertResult, error)
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindByOwnerAndRoom(ctx context.Context, email string, roomID string) (*model.Booking, error)
	FindByEmail(ctx context.Context, email string) ([]*model.Booking, error)
	Update(ctx context.Context, id string, update *model.BookingUpdate) (*model.UpdateResult, error)
	Delete(ctx context.Context, id string) (*model.DeleteResult, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(CollectionName),
	}
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) (*model.InsertResult, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	createdAt := time.Now().UTC().Truncate(time.Millisecond)
	booking.CreatedAt = &createdAt

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	booking.ID = mongodb.IDString(result.InsertedID)
	return &model.InsertResult{
		Acknowledged: true,
		InsertedID:   booking.ID,
	}, nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	return r.findOne(ctx, bson.M{"_id": objectID})
}

// FindByOwnerAndRoom returns ErrNotFound when email has no booking for roomID.
func (r *mongoBookingRepository) FindByOwnerAndRoom(ctx context.Context, email string, roomID string) (*model.Booking, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"email": email, "roomId": roomID})
}

func (r *mongoBookingRepository) findOne(ctx context.Context, filter bson.M) (*model.Booking, error) {
	var booking model.Booking
	err := r.collection.FindOne(ctx, filter).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepository) FindByEmail(ctx context.Context, email string) ([]*model.Booking, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := make([]*model.Booking, 0)
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

// Update applies a partial $set. A miss is not an error; it shows up as
// MatchedCount 0.
func (r *mongoBookingRepository) Update(ctx context.Context, id string, update *model.BookingUpdate) (*model.UpdateResult, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": setDocument(update)})
	if err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	return mongodb.ToUpdateResult(result), nil
}

func setDocument(update *model.BookingUpdate) bson.M {
	set := bson.M{}
	for key, value := range update.Extra {
		set[key] = value
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.RoomID != nil {
		set["roomId"] = *update.RoomID
	}
	return set
}

func (r *mongoBookingRepository) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return nil, fmt.Errorf("failed to delete booking: %w", err)
	}

	return mongodb.ToDeleteResult(result), nil
}
