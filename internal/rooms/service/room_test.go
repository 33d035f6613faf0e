package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"hotelluxury/internal/events"
	roomserrors "hotelluxury/internal/rooms/errors"
	apperrors "hotelluxury/pkg/errors"
	"hotelluxury/pkg/logger"
	"hotelluxury/pkg/model"
	"hotelluxury/pkg/validation"
)

// fakeRoomRepository filters in memory the way the store does.
type fakeRoomRepository struct {
	rooms        []*model.Room
	findErr      error
	updateResult *model.UpdateResult
	updatedWith  string
}

func (f *fakeRoomRepository) FindAll(_ context.Context, priceRange string) ([]*model.Room, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := make([]*model.Room, 0)
	for _, r := range f.rooms {
		if priceRange == "" || r.PriceRange == priceRange {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRoomRepository) FindByID(_ context.Context, id string) (*model.Room, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, r := range f.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, roomserrors.ErrNotFound
}

func (f *fakeRoomRepository) UpdateStatus(_ context.Context, _ string, status string) (*model.UpdateResult, error) {
	f.updatedWith = status
	return f.updateResult, nil
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) {
	p.events = append(p.events, e)
}

func newTestService(t *testing.T, repo *fakeRoomRepository, pub events.Publisher) RoomService {
	t.Helper()
	v, err := validation.New()
	if err != nil {
		t.Fatalf("validation.New() error: %v", err)
	}
	return NewRoomService(repo, v, pub, logger.NewNop())
}

func sampleRooms() []*model.Room {
	return []*model.Room{
		{ID: "65f000000000000000000001", PriceRange: "100-200", Status: "available"},
		{ID: "65f000000000000000000002", PriceRange: "200-300", Status: "booked"},
		{ID: "65f000000000000000000003", PriceRange: "100-200", Status: "available"},
	}
}

func TestList_FilteredIsSubsetOfAll(t *testing.T) {
	svc := newTestService(t, &fakeRoomRepository{rooms: sampleRooms()}, events.NopPublisher{})
	ctx := context.Background()

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	for _, bucket := range []string{"100-200", " 200-300 ", "999"} {
		filtered, err := svc.List(ctx, bucket)
		if err != nil {
			t.Fatalf("List(%q) error: %v", bucket, err)
		}

		ids := make(map[string]bool, len(all))
		for _, r := range all {
			ids[r.ID] = true
		}
		for _, r := range filtered {
			if !ids[r.ID] {
				t.Errorf("filtered room %s missing from unfiltered list", r.ID)
			}
			if r.PriceRange != strings.TrimSpace(bucket) {
				t.Errorf("room %s has price_range %q, want %q", r.ID, r.PriceRange, bucket)
			}
		}
	}
}

func TestList_EmptyIsNotNil(t *testing.T) {
	svc := newTestService(t, &fakeRoomRepository{}, events.NopPublisher{})

	rooms, err := svc.List(context.Background(), "none")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if rooms == nil {
		t.Error("expected an empty slice, got nil")
	}
}

func TestGetByID_Errors(t *testing.T) {
	tests := []struct {
		name       string
		repo       *fakeRoomRepository
		id         string
		wantStatus int
	}{
		{"not found", &fakeRoomRepository{}, "65f000000000000000000009", http.StatusNotFound},
		{"invalid id", &fakeRoomRepository{findErr: roomserrors.ErrInvalidID}, "zzz", http.StatusBadRequest},
		{"store failure", &fakeRoomRepository{findErr: errors.New("socket closed")}, "65f000000000000000000001", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestService(t, tt.repo, events.NopPublisher{}).GetByID(context.Background(), tt.id)
			if got := apperrors.AsAppError(err).StatusCode(); got != tt.wantStatus {
				t.Errorf("status = %d, want %d (err %v)", got, tt.wantStatus, err)
			}
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := &fakeRoomRepository{updateResult: &model.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}}
	pub := &recordingPublisher{}
	svc := newTestService(t, repo, pub)

	result, err := svc.UpdateStatus(context.Background(), "65f000000000000000000001", &model.RoomStatusUpdate{Status: "  booked "})
	if err != nil {
		t.Fatalf("UpdateStatus() error: %v", err)
	}
	if result.ModifiedCount != 1 || repo.updatedWith != "booked" {
		t.Errorf("unexpected result %+v, stored %q", result, repo.updatedWith)
	}
	if len(pub.events) != 1 || pub.events[0].Type != events.RoomStatusUpdated {
		t.Errorf("expected one room.status_updated event, got %+v", pub.events)
	}
}

func TestUpdateStatus_NoMatchStillReportsResult(t *testing.T) {
	repo := &fakeRoomRepository{updateResult: &model.UpdateResult{Acknowledged: true}}
	pub := &recordingPublisher{}

	result, err := newTestService(t, repo, pub).UpdateStatus(context.Background(), "65f000000000000000000009", &model.RoomStatusUpdate{Status: "booked"})
	if err != nil {
		t.Fatalf("UpdateStatus() error: %v", err)
	}
	if result.MatchedCount != 0 {
		t.Errorf("MatchedCount = %d, want 0", result.MatchedCount)
	}
	if len(pub.events) != 0 {
		t.Errorf("no event expected for a missed update, got %+v", pub.events)
	}
}

func TestUpdateStatus_RequiresStatus(t *testing.T) {
	svc := newTestService(t, &fakeRoomRepository{}, events.NopPublisher{})

	_, err := svc.UpdateStatus(context.Background(), "65f000000000000000000001", &model.RoomStatusUpdate{Status: "   "})
	if got := apperrors.AsAppError(err).StatusCode(); got != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", got)
	}
}
