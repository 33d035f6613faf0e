package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotelluxury/internal/auth"
	bookingserrors "hotelluxury/internal/bookings/errors"
	"hotelluxury/internal/bookings/repository"
	"hotelluxury/internal/bookings/validator"
	"hotelluxury/internal/events"
	"hotelluxury/pkg/config"
	apperrors "hotelluxury/pkg/errors"
	"hotelluxury/pkg/model"
	"hotelluxury/pkg/sanitizer"
	"hotelluxury/pkg/validation"
)

const (
	DuplicateBookingMessage = "You have already booked this room."
	ForbiddenMessage        = "forbidden access"

	lockTTL = 10 * time.Second
)

// BookingService methods that take an identity treat nil as "not
// authenticated"; ListByEmail requires one, Update and Delete only check
// ownership when mutations are guarded.
type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) (*model.InsertResult, error)
	ListByEmail(ctx context.Context, email string, identity *auth.Identity) ([]*model.Booking, error)
	Update(ctx context.Context, id string, update *model.BookingUpdate, identity *auth.Identity) (*model.UpdateResult, error)
	Delete(ctx context.Context, id string, identity *auth.Identity) (*model.DeleteResult, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create records a booking unless the owner already booked the room. The
// check and the insert are separate store calls; with BookingLockEnabled an
// advisory lock closes the gap between them.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (*model.InsertResult, error) {
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return nil, err
	}

	if s.cfg.BookingLockEnabled {
		lockID, err := s.acquireLock(ctx, booking.Email, booking.RoomID)
		if err != nil {
			return nil, err
		}
		defer func() {
			if releaseErr := s.lockRepo.Delete(context.WithoutCancel(ctx), lockID); releaseErr != nil {
				s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
			}
		}()
	}

	if err := s.verifyNotBooked(ctx, booking.Email, booking.RoomID); err != nil {
		return nil, err
	}

	result, err := s.repo.Create(ctx, booking)
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "email", booking.Email, "room_id", booking.RoomID, "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", result.InsertedID,
		"email", booking.Email,
		"room_id", booking.RoomID,
	)
	s.publisher.Publish(ctx, events.Event{
		Type:    events.BookingCreated,
		Key:     result.InsertedID,
		Payload: booking,
	})
	return result, nil
}

func (s *bookingService) ListByEmail(ctx context.Context, email string, identity *auth.Identity) ([]*model.Booking, error) {
	if identity == nil {
		return nil, apperrors.Unauthorized(auth.UnauthorizedMessage)
	}
	if identity.Email != email {
		s.cfg.Log.Warn("Booking list rejected: identity does not own email",
			"identity", identity.Email,
			"email", email,
		)
		return nil, apperrors.Forbidden(ForbiddenMessage)
	}

	bookings, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "email", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) Update(ctx context.Context, id string, update *model.BookingUpdate, identity *auth.Identity) (*model.UpdateResult, error) {
	if update.IsEmpty() {
		return nil, apperrors.InvalidInput("Update must set at least one field")
	}
	s.sanitizeUpdate(update)
	if err := s.validator.ValidateUpdate(update); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, validationError("Invalid update input", err)
	}

	if err := s.authorizeMutation(ctx, id, identity); err != nil {
		return nil, err
	}

	result, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, s.translate("Failed to update booking", id, err)
	}

	s.cfg.Log.Info("Booking updated", "id", id, "matched", result.MatchedCount, "modified", result.ModifiedCount)
	if result.MatchedCount > 0 {
		s.publisher.Publish(ctx, events.Event{
			Type:    events.BookingUpdated,
			Key:     id,
			Payload: map[string]any{"id": id, "update": update},
		})
	}
	return result, nil
}

func (s *bookingService) Delete(ctx context.Context, id string, identity *auth.Identity) (*model.DeleteResult, error) {
	if err := s.authorizeMutation(ctx, id, identity); err != nil {
		return nil, err
	}

	result, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, s.translate("Failed to delete booking", id, err)
	}

	s.cfg.Log.Info("Booking deleted", "id", id, "deleted", result.DeletedCount)
	if result.DeletedCount > 0 {
		s.publisher.Publish(ctx, events.Event{
			Type:    events.BookingDeleted,
			Key:     id,
			Payload: map[string]string{"id": id},
		})
	}
	return result, nil
}

// --- Helpers ---

// authorizeMutation is a no-op unless RequireAuthForMutations is set, in
// which case only the booking's owner may change it.
func (s *bookingService) authorizeMutation(ctx context.Context, id string, identity *auth.Identity) error {
	if !s.cfg.RequireAuthForMutations {
		return nil
	}
	if identity == nil {
		return apperrors.Unauthorized(auth.UnauthorizedMessage)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.translate("Failed to check booking ownership", id, err)
	}
	if existing.Email != identity.Email {
		s.cfg.Log.Warn("Booking mutation rejected: identity does not own booking",
			"id", id,
			"identity", identity.Email,
		)
		return apperrors.Forbidden(ForbiddenMessage)
	}
	return nil
}

func (s *bookingService) verifyNotBooked(ctx context.Context, email, roomID string) error {
	_, err := s.repo.FindByOwnerAndRoom(ctx, email, roomID)
	switch {
	case err == nil:
		s.cfg.Log.Warn("Duplicate booking rejected", "email", email, "room_id", roomID)
		return apperrors.Duplicate(DuplicateBookingMessage)
	case errors.Is(err, bookingserrors.ErrNotFound):
		return nil
	default:
		s.cfg.Log.Error("Failed to check existing bookings", "email", email, "room_id", roomID, "error", err)
		return apperrors.Internal("Failed to check existing bookings", err)
	}
}

// acquireLock inserts an advisory lock keyed by owner and room. A held lock
// means an identical booking is in flight, which is reported as a duplicate.
func (s *bookingService) acquireLock(ctx context.Context, email, roomID string) (string, error) {
	lockID := fmt.Sprintf("booking_lock_%s_%s", email, roomID)

	now := time.Now().UTC()
	err := s.lockRepo.Create(ctx, &model.BookingLock{
		ID:        lockID,
		ExpiresAt: now.Add(lockTTL),
		CreatedAt: now,
	})
	if err != nil {
		if errors.Is(err, bookingserrors.ErrLockHeld) {
			s.cfg.Log.Warn("Concurrent duplicate booking rejected", "lock_id", lockID)
			return "", apperrors.Duplicate(DuplicateBookingMessage)
		}
		s.cfg.Log.Error("Failed to acquire booking lock", "lock_id", lockID, "error", err)
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}
	return lockID, nil
}

func (s *bookingService) translate(message, id string, err error) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("booking", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	default:
		s.cfg.Log.Error(message, "id", id, "error", err)
		return apperrors.Internal(message, err)
	}
}

// sanitize trims the two fields the duplicate check matches on. _id and
// createdAt are assigned by the store, never by the client.
func (s *bookingService) sanitize(b *model.Booking) {
	b.ID = ""
	b.CreatedAt = nil
	b.Email = sanitizer.NormalizeEmail(b.Email)
	b.RoomID = strings.TrimSpace(b.RoomID)
}

func (s *bookingService) sanitizeUpdate(u *model.BookingUpdate) {
	if u.Email != nil {
		email := sanitizer.NormalizeEmail(*u.Email)
		u.Email = &email
	}
	if u.RoomID != nil {
		roomID := strings.TrimSpace(*u.RoomID)
		u.RoomID = &roomID
	}
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return validationError("Booking validation failed", err)
	}
	return nil
}

func validationError(message string, err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(message, verrs.Details())
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}
