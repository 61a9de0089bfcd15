package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"reservas/internal/db"
	"reservas/internal/entities"
	apperrors "reservas/internal/errors"
	"reservas/internal/repository"

	"github.com/go-playground/validator/v10"
)

// MaxPartySize is the largest party the INTEGER column holds on every driver.
const MaxPartySize = math.MaxInt32

type ReservationService struct {
	Repo     repository.ReservationRepository
	notifier Notifier
	loc      *time.Location
	validate *validator.Validate
}

func NewReservationService(repo repository.ReservationRepository, notifier Notifier, loc *time.Location) *ReservationService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ReservationService{
		Repo:     repo,
		notifier: notifier,
		loc:      loc,
		validate: newValidator(),
	}
}

// ListReservations returns every reservation. statusFilter is optional and matched
// ignoring case; "all" and "" disable filtering.
func (s *ReservationService) ListReservations(ctx context.Context, statusFilter string) ([]db.Reservation, error) {
	filter := strings.TrimSpace(statusFilter)
	if filter == "" || strings.EqualFold(filter, "all") {
		return s.Repo.List(ctx, nil)
	}
	status, ok := db.ParseStatusFold(filter)
	if !ok {
		return nil, apperrors.NewValidationError(invalidStatusMessage, "status")
	}
	return s.Repo.List(ctx, &status)
}

func (s *ReservationService) GetReservation(ctx context.Context, id int64) (*db.Reservation, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *ReservationService) CreateReservation(ctx context.Context, req entities.CreateReservationRequest) (*db.Reservation, error) {
	req.ClientName = strings.TrimSpace(req.ClientName)
	req.Date = strings.TrimSpace(req.Date)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationFromValidator(err)
	}

	date, err := ParseDate(req.Date, s.loc)
	if err != nil {
		return nil, apperrors.NewValidationError("date is not a valid date-time", "date")
	}

	status := db.StatusPending
	if req.Status != "" {
		status = db.Status(req.Status)
	}

	reservation := &db.Reservation{
		ClientName: req.ClientName,
		PartySize:  req.PartySize,
		Date:       date,
		Status:     status,
	}
	if err := s.Repo.Create(ctx, reservation); err != nil {
		log.Printf("Error creating reservation in repository: %v", err)
		return nil, err
	}

	s.notifier.ReservationChanged(ReservationEvent{Type: EventCreated, Reservation: *reservation})
	return reservation, nil
}

// UpdateReservation applies the supplied fields only.
func (s *ReservationService) UpdateReservation(ctx context.Context, id int64, req entities.UpdateReservationRequest) (*db.Reservation, error) {
	patch, err := s.buildPatch(req)
	if err != nil {
		return nil, err
	}

	updated, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		if !errors.Is(err, repository.ErrReservationNotFound) && !apperrors.IsValidation(err) {
			log.Printf("Error updating reservation %d: %v", id, err)
		}
		return nil, err
	}

	s.notifier.ReservationChanged(ReservationEvent{Type: EventUpdated, Reservation: *updated, StatusChanged: patch.Status != nil})
	return updated, nil
}

func (s *ReservationService) DeleteReservation(ctx context.Context, id int64) (*db.Reservation, error) {
	deleted, err := s.Repo.Delete(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrReservationNotFound) {
			log.Printf("Error deleting reservation %d: %v", id, err)
		}
		return nil, err
	}

	s.notifier.ReservationChanged(ReservationEvent{Type: EventDeleted, Reservation: *deleted})
	return deleted, nil
}

// buildPatch treats empty strings and zero as absent, the same way a form that
// leaves a field blank would.
func (s *ReservationService) buildPatch(req entities.UpdateReservationRequest) (db.ReservationPatch, error) {
	var patch db.ReservationPatch

	if req.ClientName != nil {
		if name := strings.TrimSpace(*req.ClientName); name != "" {
			patch.ClientName = &name
		}
	}
	if req.PartySize != nil && *req.PartySize != 0 {
		size := *req.PartySize
		if size < 1 {
			return patch, apperrors.NewValidationError("partySize must be at least 1", "partySize")
		}
		if size > MaxPartySize {
			return patch, apperrors.NewValidationError(fmt.Sprintf("partySize must be at most %d", MaxPartySize), "partySize")
		}
		patch.PartySize = &size
	}
	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		date, err := ParseDate(*req.Date, s.loc)
		if err != nil {
			return patch, apperrors.NewValidationError("date is not a valid date-time", "date")
		}
		patch.Date = &date
	}
	if req.Status != nil && *req.Status != "" {
		status := db.Status(*req.Status)
		if !status.Valid() {
			return patch, apperrors.NewValidationError(invalidStatusMessage, "status")
		}
		patch.Status = &status
	}

	if patch.Empty() {
		return patch, apperrors.NewValidationError("at least one field must be provided: clientName, partySize, date or status")
	}
	return patch, nil
}

var invalidStatusMessage = fmt.Sprintf("status must be one of %s", joinStatuses())

func joinStatuses() string {
	names := make([]string, 0, len(db.Statuses))
	for _, st := range db.Statuses {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}
