package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"reservas/internal/api"
	"reservas/internal/db"
	"reservas/internal/entities"
	"reservas/internal/repository"
	"reservas/internal/service"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	store, err := repository.Open(context.Background(), repository.DBConfig{
		Driver: "sqlite",
		URL:    filepath.Join(t.TempDir(), "client.db"),
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	svc := service.NewReservationService(repository.NewReservationRepository(store), nil, time.UTC)
	srv := httptest.NewServer(api.NewRouter(api.RouterDeps{Reservations: svc, DB: store}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client())
}

func strPtr(s string) *string { return &s }

func TestClientLifecycle(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateReservation(ctx, entities.CreateReservationRequest{
		ClientName: "Ana", PartySize: 2, Date: "2024-05-01T19:00",
	})
	if err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}
	if created.ID <= 0 || created.Status != db.StatusPending {
		t.Fatalf("created = %+v", created)
	}

	list, err := c.ListReservations(ctx)
	if err != nil {
		t.Fatalf("ListReservations() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("list = %+v", list)
	}

	updated, err := c.UpdateReservation(ctx, created.ID, entities.UpdateReservationRequest{Status: strPtr("CONFIRMADA")})
	if err != nil {
		t.Fatalf("UpdateReservation() error = %v", err)
	}
	if updated.Status != db.StatusConfirmed {
		t.Errorf("status = %s, want CONFIRMADA", updated.Status)
	}

	if _, err := c.DeleteReservation(ctx, created.ID); err != nil {
		t.Fatalf("DeleteReservation() error = %v", err)
	}
	_, err = c.GetReservation(ctx, created.ID)
	if !IsNotFound(err) {
		t.Fatalf("GetReservation() after delete error = %v, want 404", err)
	}
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	c := newTestClient(t)

	_, err := c.CreateReservation(context.Background(), entities.CreateReservationRequest{ClientName: "Ana"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Code != "validation_error" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if apiErr.Message == "" {
		t.Error("message is empty")
	}
}

func TestClientNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).ListReservations(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway || apiErr.Message != "bad gateway" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).ListReservations(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("network failure reported as API error: %v", err)
	}
}
