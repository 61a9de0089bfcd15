package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"reservas/internal/db"
	"reservas/internal/entities"
)

// APIError is a non-2xx answer from the reservations API.
type APIError struct {
	StatusCode int
	Code       string `json:"error"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to the reservations REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (c *Client) ListReservations(ctx context.Context) ([]db.Reservation, error) {
	var out []db.Reservation
	if err := c.do(ctx, http.MethodGet, "/reservations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetReservation(ctx context.Context, id int64) (*db.Reservation, error) {
	var out db.Reservation
	if err := c.do(ctx, http.MethodGet, reservationPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateReservation(ctx context.Context, req entities.CreateReservationRequest) (*db.Reservation, error) {
	var out db.Reservation
	if err := c.do(ctx, http.MethodPost, "/reservations", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateReservation(ctx context.Context, id int64, req entities.UpdateReservationRequest) (*db.Reservation, error) {
	var out db.Reservation
	if err := c.do(ctx, http.MethodPut, reservationPath(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteReservation(ctx context.Context, id int64) (*db.Reservation, error) {
	var out db.Reservation
	if err := c.do(ctx, http.MethodDelete, reservationPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func reservationPath(id int64) string {
	return "/reservations/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if len(data) > 0 && json.Unmarshal(data, apiErr) != nil {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
