package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"reservas/internal/db"
)

type sentEmail struct {
	to, subject, plain, html string
}

func newTestSender(cfg SenderConfig) (*SenderService, *[]sentEmail, *[]string) {
	s := NewSenderService(cfg)
	var emails []sentEmail
	var sms []string
	s.dispatch = func(f func()) { f() }
	s.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	s.sendEmail = func(to, name, subject, plain, html string) error {
		emails = append(emails, sentEmail{to, subject, plain, html})
		return nil
	}
	s.sendSMS = func(to, body string) error {
		sms = append(sms, to+": "+body)
		return nil
	}
	return s, &emails, &sms
}

func configuredSender() SenderConfig {
	return SenderConfig{
		SendGrid:   SendGridConfig{APIKey: "key", FromEmail: "no-reply@reservas.test"},
		Twilio:     TwilioConfig{AccountSID: "AC1", AuthToken: "tok", FromNumber: "+15550000000"},
		StaffEmail: "staff@reservas.test",
		StaffPhone: "+5491100000000",
	}
}

var anaReservation = db.Reservation{
	ID:         12,
	ClientName: "Ana",
	PartySize:  2,
	Date:       time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC),
	Status:     db.StatusPending,
}

func TestSenderServiceCreatedEvent(t *testing.T) {
	s, emails, sms := newTestSender(configuredSender())

	s.ReservationChanged(ReservationEvent{Type: EventCreated, Reservation: anaReservation})

	if len(*emails) != 1 {
		t.Fatalf("emails = %d, want 1", len(*emails))
	}
	email := (*emails)[0]
	if email.to != "staff@reservas.test" {
		t.Errorf("to = %q", email.to)
	}
	if !strings.Contains(email.subject, "#12") {
		t.Errorf("subject = %q, want reservation id", email.subject)
	}
	if !strings.Contains(email.html, "Ana") || !strings.Contains(email.html, "2024") {
		t.Errorf("html body missing reservation data: %s", email.html)
	}
	if len(*sms) != 1 || !strings.HasPrefix((*sms)[0], "+5491100000000") {
		t.Errorf("sms = %v", *sms)
	}
}

func TestSenderServiceSkipsUpdatesWithoutStatusChange(t *testing.T) {
	s, emails, sms := newTestSender(configuredSender())

	s.ReservationChanged(ReservationEvent{Type: EventUpdated, Reservation: anaReservation})
	if len(*emails) != 0 || len(*sms) != 0 {
		t.Fatalf("notified a plain update: emails=%d sms=%d", len(*emails), len(*sms))
	}

	s.ReservationChanged(ReservationEvent{Type: EventUpdated, Reservation: anaReservation, StatusChanged: true})
	if len(*emails) != 1 || len(*sms) != 1 {
		t.Fatalf("status change: emails=%d sms=%d, want 1 each", len(*emails), len(*sms))
	}
}

func TestSenderServiceUnconfigured(t *testing.T) {
	s, emails, sms := newTestSender(SenderConfig{})

	s.ReservationChanged(ReservationEvent{Type: EventDeleted, Reservation: anaReservation})
	if len(*emails) != 0 || len(*sms) != 0 {
		t.Fatalf("sent without credentials: emails=%d sms=%d", len(*emails), len(*sms))
	}
}

func TestSenderServiceSwallowsFailures(t *testing.T) {
	s, _, _ := newTestSender(configuredSender())
	s.sendEmail = func(to, name, subject, plain, html string) error { return errors.New("sendgrid down") }
	s.sendSMS = func(to, body string) error { return errors.New("twilio down") }

	s.ReservationChanged(ReservationEvent{Type: EventDeleted, Reservation: anaReservation})
}

func TestTransportsRequireCredentials(t *testing.T) {
	if err := SendEmailWithSendGrid(SendGridConfig{}, "a@b.c", "A", "s", "p", "h"); err == nil {
		t.Error("SendEmailWithSendGrid() expected error without API key")
	}
	if err := SendSMS(TwilioConfig{}, "+1555", "hola"); err == nil {
		t.Error("SendSMS() expected error without credentials")
	}
}

func TestEventTitle(t *testing.T) {
	tests := []struct {
		event ReservationEvent
		want  string
	}{
		{ReservationEvent{Type: EventCreated, Reservation: anaReservation}, "Nueva reserva #12 (PENDIENTE)"},
		{ReservationEvent{Type: EventUpdated, Reservation: anaReservation, StatusChanged: true}, "Reserva #12 ahora PENDIENTE"},
		{ReservationEvent{Type: EventDeleted, Reservation: anaReservation}, "Reserva #12 eliminada"},
	}
	for _, tt := range tests {
		if got := eventTitle(tt.event); got != tt.want {
			t.Errorf("eventTitle(%s) = %q, want %q", tt.event.Type, got, tt.want)
		}
	}
}
