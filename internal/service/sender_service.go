package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"time"

	"reservas/internal/entities"
)

//go:embed templates/reservation_email.html
var emailTemplates embed.FS

var reservationEmailTmpl = template.Must(template.ParseFS(emailTemplates, "templates/reservation_email.html"))

type SenderConfig struct {
	SendGrid   SendGridConfig
	Twilio     TwilioConfig
	StaffEmail string
	StaffPhone string
	Location   *time.Location
}

// SenderService notifies restaurant staff by email and SMS. It implements Notifier.
type SenderService struct {
	cfg SenderConfig

	sendEmail func(to, name, subject, plain, html string) error
	sendSMS   func(to, body string) error
	dispatch  func(func())
	now       func() time.Time
}

func NewSenderService(cfg SenderConfig) *SenderService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	s := &SenderService{
		cfg: cfg,
		sendEmail: func(to, name, subject, plain, html string) error {
			return SendEmailWithSendGrid(cfg.SendGrid, to, name, subject, plain, html)
		},
		sendSMS: func(to, body string) error {
			return SendSMS(cfg.Twilio, to, body)
		},
		dispatch: func(f func()) { go f() },
		now:      time.Now,
	}
	if !s.emailEnabled() && !s.smsEnabled() {
		log.Println("ADVERTENCIA: ni SendGrid ni Twilio están configurados, no se enviarán avisos al personal.")
	}
	return s
}

func (s *SenderService) emailEnabled() bool {
	return s.cfg.SendGrid.configured() && s.cfg.StaffEmail != ""
}

func (s *SenderService) smsEnabled() bool {
	return s.cfg.Twilio.configured() && s.cfg.StaffPhone != ""
}

// ReservationChanged sends the staff email and SMS on background goroutines.
// Updates that leave the status alone are not announced.
func (s *SenderService) ReservationChanged(event ReservationEvent) {
	if event.Type == EventUpdated && !event.StatusChanged {
		return
	}
	r := event.Reservation
	title := eventTitle(event)

	if s.emailEnabled() {
		data := entities.ReservationEmailData{
			Event:         title,
			ReservationID: r.ID,
			ClientName:    r.ClientName,
			PartySize:     r.PartySize,
			DateFormatted: r.Date.In(s.cfg.Location).Format("02 Jan 2006 15:04 MST"),
			Status:        string(r.Status),
			CurrentYear:   s.now().In(s.cfg.Location).Year(),
		}
		plain := fmt.Sprintf("%s\n\nCliente: %s\nComensales: %d\nFecha: %s\nEstado: %s\n",
			title, data.ClientName, data.PartySize, data.DateFormatted, data.Status)

		var html bytes.Buffer
		if err := reservationEmailTmpl.Execute(&html, data); err != nil {
			log.Printf("ALERTA: error al ejecutar la plantilla de correo para la reserva %d: %v", r.ID, err)
		}

		to, subject, htmlBody := s.cfg.StaffEmail, title, html.String()
		s.dispatch(func() {
			if err := s.sendEmail(to, "Staff", subject, plain, htmlBody); err != nil {
				log.Printf("ALERTA (asíncrono): falló el envío de correo para la reserva %d: %v", r.ID, err)
			}
		})
	}

	if s.smsEnabled() {
		body := fmt.Sprintf("Reservas: %s\n%s, %d pers., %s",
			title, r.ClientName, r.PartySize, r.Date.In(s.cfg.Location).Format("02/01 15:04"))
		to := s.cfg.StaffPhone
		s.dispatch(func() {
			if err := s.sendSMS(to, body); err != nil {
				log.Printf("ALERTA (asíncrono): falló el envío del SMS para la reserva %d: %v", r.ID, err)
			}
		})
	}
}

func eventTitle(event ReservationEvent) string {
	r := event.Reservation
	switch event.Type {
	case EventCreated:
		return fmt.Sprintf("Nueva reserva #%d (%s)", r.ID, r.Status)
	case EventDeleted:
		return fmt.Sprintf("Reserva #%d eliminada", r.ID)
	default:
		return fmt.Sprintf("Reserva #%d ahora %s", r.ID, r.Status)
	}
}
