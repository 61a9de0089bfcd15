package entities

// ReservationEmailData feeds the staff notification email template.
type ReservationEmailData struct {
	Event         string
	ReservationID int64
	ClientName    string
	PartySize     int
	DateFormatted string
	Status        string
	CurrentYear   int
}
