package service

import "reservas/internal/db"

type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// ReservationEvent describes a change that already reached the store.
type ReservationEvent struct {
	Type          EventType
	Reservation   db.Reservation
	StatusChanged bool
}

// Notifier is told about reservation changes. Implementations must not block the caller.
type Notifier interface {
	ReservationChanged(event ReservationEvent)
}

type NopNotifier struct{}

func (NopNotifier) ReservationChanged(ReservationEvent) {}
