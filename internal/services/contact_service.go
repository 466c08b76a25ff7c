package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/koordynuj/koordynuj-api/config"
	"github.com/koordynuj/koordynuj-api/internal/models"
	"github.com/koordynuj/koordynuj-api/pkg/apperrors"
	"github.com/koordynuj/koordynuj-api/pkg/logger"
	"github.com/koordynuj/koordynuj-api/pkg/metrics"
	"github.com/koordynuj/koordynuj-api/pkg/resend"
	"github.com/koordynuj/koordynuj-api/pkg/strapi"
	"go.uber.org/zap"
)

// minElapsedMS is the minimum time a human plausibly spends in the form
const minElapsedMS = 3000

// contactStatusNew is the initial workflow status of a persisted submission
const contactStatusNew = "nowa"

// User-facing messages, matching the website's language
const (
	msgSpamRejected  = "Błąd weryfikacji anty-spam."
	msgTooFast       = "Formularz wypełniono zbyt szybko."
	msgMissingFields = "Proszę wypełnić wszystkie wymagane pola."
	msgSent          = "Wiadomość wysłana pomyślnie!"
	msgServerError   = "Wystąpił błąd po stronie serwera."
)

// ContactService handles contact form submissions: validate, notify by
// email, then persist to Strapi for follow-up
type ContactService struct {
	emailSender   EmailSender
	contactWriter ContactWriter
	config        *config.Config
}

// NewContactService creates a new contact service instance
func NewContactService(emailSender EmailSender, contactWriter ContactWriter, cfg *config.Config) *ContactService {
	return &ContactService{
		emailSender:   emailSender,
		contactWriter: contactWriter,
		config:        cfg,
	}
}

// Submit runs the submission pipeline. Validation failures return ErrInvalidInput
// with no side effects. A failed email send is fatal (ErrUpstream); a failed
// Strapi write is logged only, since the notification already reached the team.
func (s *ContactService) Submit(ctx context.Context, req *models.ContactRequest, meta models.RequestMeta) (*models.ContactResponse, error) {
	if req.Honeypot != "" {
		metrics.ContactFormSubmissions.WithLabelValues("spam").Inc()
		logger.Warn("Contact submission rejected: honeypot triggered",
			zap.String("client_ip", meta.IPAddress))
		return &models.ContactResponse{Message: msgSpamRejected},
			apperrors.InvalidInputError("hp", "honeypot triggered")
	}

	if req.ElapsedMS < minElapsedMS {
		metrics.ContactFormSubmissions.WithLabelValues("too_fast").Inc()
		logger.Warn("Contact submission rejected: form filled too quickly",
			zap.Int64("elapsed_ms", req.ElapsedMS),
			zap.String("client_ip", meta.IPAddress))
		return &models.ContactResponse{Message: msgTooFast},
			apperrors.InvalidInputError("t", "form submitted too quickly")
	}

	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Message == "" {
		metrics.ContactFormSubmissions.WithLabelValues("missing_fields").Inc()
		return &models.ContactResponse{Message: msgMissingFields},
			apperrors.InvalidInputError("body", "missing required fields")
	}

	// Notify. The recipient is fixed server-side, never taken from the request.
	email := s.composeEmail(req, meta)
	if err := s.emailSender.Send(email); err != nil {
		metrics.ContactFormSubmissions.WithLabelValues("email_error").Inc()
		logger.Error("Failed to send contact notification email", zap.Error(err))
		return &models.ContactResponse{Message: msgServerError, Error: err.Error()},
			apperrors.UpstreamError("resend", err)
	}

	// Persist. Failure here never fails the request: the email is out.
	record := &strapi.ContactRecord{
		ImieNazwisko:     req.Name,
		Email:            req.Email,
		Wiadomosc:        req.Message,
		StatusWiadomosci: contactStatusNew,
		IPAddress:        meta.IPAddress,
		UserAgent:        meta.UserAgent,
	}
	if s.config.Contact.PersistPhone {
		record.Telefon = req.Phone
	}

	if err := s.contactWriter.CreateContact(ctx, record); err != nil {
		metrics.ContactFormSubmissions.WithLabelValues("persist_error").Inc()
		logger.Error("Failed to save contact to Strapi, email already delivered",
			zap.Error(err),
			zap.String("email", req.Email))
	} else {
		metrics.ContactFormSubmissions.WithLabelValues("success").Inc()
	}

	return &models.ContactResponse{Message: msgSent}, nil
}

// composeEmail renders the notification email sent to the team
func (s *ContactService) composeEmail(req *models.ContactRequest, meta models.RequestMeta) *resend.Message {
	name := html.EscapeString(req.Name)
	emailAddr := html.EscapeString(req.Email)
	phone := html.EscapeString(req.Phone)
	message := strings.ReplaceAll(html.EscapeString(req.Message), "\n", "<br>")

	var b strings.Builder
	b.WriteString("<h2>Nowa wiadomość z formularza kontaktowego</h2>")
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString(`<table style="width: 100%; border-collapse: collapse;">`)
	writeEmailRow(&b, "Imię i nazwisko:", name)
	writeEmailRow(&b, "Email:", fmt.Sprintf(`<a href="mailto:%s">%s</a>`, emailAddr, emailAddr))
	writeEmailRow(&b, "Telefon:", fmt.Sprintf(`<a href="tel:%s">%s</a>`, phone, phone))
	writeEmailRow(&b, "Wiadomość:", message)
	b.WriteString("</table>")
	b.WriteString(`<hr style="margin: 20px 0; border: none; border-top: 1px solid #ddd;">`)
	b.WriteString(fmt.Sprintf(`<p style="font-size: 12px; color: #666;"><strong>Metadata:</strong><br>IP: %s<br>Przeglądarka: %s</p>`,
		html.EscapeString(meta.IPAddress), html.EscapeString(meta.UserAgent)))
	b.WriteString("</div>")

	return &resend.Message{
		From:    s.config.Contact.FromAddress,
		To:      []string{s.config.Contact.ToAddress},
		Subject: fmt.Sprintf("Nowa wiadomość od %s", req.Name),
		ReplyTo: req.Email,
		HTML:    b.String(),
	}
}

func writeEmailRow(b *strings.Builder, label, value string) {
	b.WriteString(`<tr><td style="padding: 10px; background: #f5f5f5; font-weight: bold; vertical-align: top;">`)
	b.WriteString(label)
	b.WriteString(`</td><td style="padding: 10px;">`)
	b.WriteString(value)
	b.WriteString("</td></tr>")
}
