package views

import (
	"strings"

	"reservas/internal/db"
)

// FilterByStatus keeps reservations whose status matches ignoring case.
// An empty filter or "all" keeps everything.
func FilterByStatus(reservations []db.Reservation, status string) []db.Reservation {
	status = strings.TrimSpace(status)
	if status == "" || strings.EqualFold(status, "all") {
		return reservations
	}
	out := make([]db.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if strings.EqualFold(string(r.Status), status) {
			out = append(out, r)
		}
	}
	return out
}
