package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"hotelluxury/pkg/model"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hotel api: %d %s", e.StatusCode, e.Message)
}

// HotelClient calls the booking API as one signed-in guest.
type HotelClient struct {
	httpClient *HttpClient
}

func NewHotelClient(baseURL string) (*HotelClient, error) {
	httpClient, err := NewHttpClient(baseURL)
	if err != nil {
		return nil, err
	}
	return &HotelClient{httpClient: httpClient}, nil
}

func (c *HotelClient) SignIn(ctx context.Context, email string) error {
	resp, err := c.httpClient.POST(ctx, "/jwt", map[string]string{"email": email})
	return expectOK(resp, err, nil)
}

func (c *HotelClient) Logout(ctx context.Context) error {
	resp, err := c.httpClient.GET(ctx, "/logout")
	return expectOK(resp, err, nil)
}

func (c *HotelClient) ListRooms(ctx context.Context, priceRange string) ([]*model.Room, error) {
	path := "/all-rooms"
	if priceRange != "" {
		path += "?" + url.Values{"filter": {priceRange}}.Encode()
	}

	var rooms []*model.Room
	resp, err := c.httpClient.GET(ctx, path)
	if err := expectOK(resp, err, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *HotelClient) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	resp, err := c.httpClient.GET(ctx, "/all-rooms/"+url.PathEscape(id))
	if err := expectOK(resp, err, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *HotelClient) UpdateRoomStatus(ctx context.Context, id, status string) (*model.UpdateResult, error) {
	var result model.UpdateResult
	resp, err := c.httpClient.PATCH(ctx, "/status/"+url.PathEscape(id), model.RoomStatusUpdate{Status: status})
	if err := expectOK(resp, err, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateBooking sends key when non-empty as the Idempotency-Key header.
func (c *HotelClient) CreateBooking(ctx context.Context, booking *model.Booking, key string) (*model.InsertResult, error) {
	headers := map[string]string{}
	if key != "" {
		headers["Idempotency-Key"] = key
	}

	var result model.InsertResult
	resp, err := c.httpClient.POSTWithHeaders(ctx, "/booking", booking, headers)
	if err := expectOK(resp, err, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HotelClient) ListBookings(ctx context.Context, email string) ([]*model.Booking, error) {
	var bookings []*model.Booking
	resp, err := c.httpClient.GET(ctx, "/booking/"+url.PathEscape(email))
	if err := expectOK(resp, err, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *HotelClient) UpdateBooking(ctx context.Context, id string, update map[string]any) (*model.UpdateResult, error) {
	var result model.UpdateResult
	resp, err := c.httpClient.PATCH(ctx, "/bookings/"+url.PathEscape(id), update)
	if err := expectOK(resp, err, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HotelClient) DeleteBooking(ctx context.Context, id string) (*model.DeleteResult, error) {
	var result model.DeleteResult
	resp, err := c.httpClient.DELETE(ctx, "/bookings/"+url.PathEscape(id))
	if err := expectOK(resp, err, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func expectOK(resp *Response, err error, target any) error {
	if err != nil {
		return err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{StatusCode: resp.StatusCode, Message: GetErrorMessage(resp)}
	}
	if target == nil {
		return nil
	}
	if err := resp.DecodeJSON(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
