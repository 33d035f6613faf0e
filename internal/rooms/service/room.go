package service

import (
	"context"
	"errors"

	"hotelluxury/internal/events"
	roomserrors "hotelluxury/internal/rooms/errors"
	"hotelluxury/internal/rooms/repository"
	apperrors "hotelluxury/pkg/errors"
	"hotelluxury/pkg/logger"
	"hotelluxury/pkg/model"
	"hotelluxury/pkg/sanitizer"
	"hotelluxury/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type RoomService interface {
	List(ctx context.Context, priceRange string) ([]*model.Room, error)
	GetByID(ctx context.Context, id string) (*model.Room, error)
	UpdateStatus(ctx context.Context, id string, update *model.RoomStatusUpdate) (*model.UpdateResult, error)
}

type roomService struct {
	repo      repository.RoomRepository
	validate  *validator.Validate
	publisher events.Publisher
	log       *logger.Logger
}

func NewRoomService(
	repo repository.RoomRepository,
	validate *validator.Validate,
	publisher events.Publisher,
	log *logger.Logger,
) RoomService {
	return &roomService{
		repo:      repo,
		validate:  validate,
		publisher: publisher,
		log:       log,
	}
}

func (s *roomService) List(ctx context.Context, priceRange string) ([]*model.Room, error) {
	rooms, err := s.repo.FindAll(ctx, sanitizer.NormalizePriceRange(priceRange))
	if err != nil {
		s.log.Error("Failed to list rooms", "price_range", priceRange, "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}
	return rooms, nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate("Failed to retrieve room", id, err)
	}
	return room, nil
}

func (s *roomService) UpdateStatus(ctx context.Context, id string, update *model.RoomStatusUpdate) (*model.UpdateResult, error) {
	update.Status = sanitizer.TrimAndNormalize(update.Status)
	if err := s.validate.Struct(update); err != nil {
		verr := validation.Translate(err)
		s.log.Warn("Room status update validation failed", "id", id, "error", verr)
		return nil, validationError("Invalid room status update", verr)
	}

	result, err := s.repo.UpdateStatus(ctx, id, update.Status)
	if err != nil {
		return nil, s.translate("Failed to update room status", id, err)
	}

	s.log.Info("Room status updated",
		"id", id,
		"status", update.Status,
		"matched", result.MatchedCount,
	)
	if result.MatchedCount > 0 {
		s.publisher.Publish(ctx, events.Event{
			Type:    events.RoomStatusUpdated,
			Key:     id,
			Payload: map[string]string{"id": id, "status": update.Status},
		})
	}
	return result, nil
}

func (s *roomService) translate(message, id string, err error) error {
	switch {
	case errors.Is(err, roomserrors.ErrNotFound):
		return apperrors.NotFoundWithID("room", id)
	case errors.Is(err, roomserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid room ID format")
	default:
		s.log.Error(message, "id", id, "error", err)
		return apperrors.Internal(message, err)
	}
}

func validationError(message string, err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(message, verrs.Details())
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}
