package db

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "PENDIENTE"
	StatusConfirmed Status = "CONFIRMADA"
	StatusCancelled Status = "CANCELADA"
	StatusCompleted Status = "COMPLETADA"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

// Valid reports whether s is one of the four wire values. The match is case-sensitive.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// ParseStatusFold matches s against the enum ignoring case.
func ParseStatusFold(s string) (Status, bool) {
	for _, st := range Statuses {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return "", false
}

type Reservation struct {
	ID         int64     `json:"id" db:"id"`
	ClientName string    `json:"clientName" db:"client_name"`
	PartySize  int       `json:"partySize" db:"party_size"`
	Date       time.Time `json:"date" db:"reservation_date"`
	Status     Status    `json:"status" db:"status"`
}

// ReservationPatch carries the fields of a partial update. Nil means unchanged.
type ReservationPatch struct {
	ClientName *string
	PartySize  *int
	Date       *time.Time
	Status     *Status
}

func (p ReservationPatch) Empty() bool {
	return p.ClientName == nil && p.PartySize == nil && p.Date == nil && p.Status == nil
}
