package entities

// CreateReservationRequest is the body of POST /reservations.
type CreateReservationRequest struct {
	ClientName string `json:"clientName" validate:"required"`
	PartySize  int    `json:"partySize" validate:"required,gte=1,lte=2147483647"`
	Date       string `json:"date" validate:"required"`
	Status     string `json:"status" validate:"omitempty,oneof=PENDIENTE CONFIRMADA CANCELADA COMPLETADA"`
}

// UpdateReservationRequest is the body of PUT /reservations/{id}. Every field is
// optional; empty strings and zero are treated as not supplied.
type UpdateReservationRequest struct {
	ClientName *string `json:"clientName,omitempty"`
	PartySize  *int    `json:"partySize,omitempty"`
	Date       *string `json:"date,omitempty"`
	Status     *string `json:"status,omitempty"`
}
