package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

func (c SendGridConfig) configured() bool {
	return c.APIKey != "" && c.FromEmail != ""
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

func (c TwilioConfig) configured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

func SendEmailWithSendGrid(cfg SendGridConfig, toEmailAddress, toName, subject, plainTextContent, htmlContent string) error {
	if !cfg.configured() {
		return fmt.Errorf("SendGrid no está configurado (SENDGRID_API_KEY / SENDGRID_FROM_EMAIL)")
	}
	fromName := cfg.FromName
	if fromName == "" {
		fromName = "Reservas"
	}

	from := mail.NewEmail(fromName, cfg.FromEmail)
	to := mail.NewEmail(toName, toEmailAddress)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(cfg.APIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("falló el envío del correo a través de SendGrid: %w", err)
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		log.Printf("Correo enviado a %s (Asunto: %s). Estado: %d", toEmailAddress, subject, response.StatusCode)
		return nil
	}
	return fmt.Errorf("SendGrid devolvió un estado no exitoso %d: %s", response.StatusCode, response.Body)
}

func SendSMS(cfg TwilioConfig, toNumber, messageBody string) error {
	if !cfg.configured() {
		return fmt.Errorf("credenciales de Twilio no configuradas completamente")
	}
	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("ADVERTENCIA: el número '%s' no está en formato E.164. El SMS podría fallar.", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   cfg.AccountSID,
		Password:   cfg.AuthToken,
		AccountSid: cfg.AccountSID,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(cfg.FromNumber)
	params.SetBody(messageBody)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("falló el envío del SMS: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		log.Printf("SMS enviado a %s. SID: %s", toNumber, *resp.Sid)
	}
	return nil
}
