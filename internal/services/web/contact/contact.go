// Package contact validates contact-form submissions and forwards them to
// the email collaborator.
package contact

import (
	"context"
	"log"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/sinhaparth5/portfolio/internal/services/web/integration/emailjs"
	apperrors "github.com/sinhaparth5/portfolio/internal/services/web/platform/errors"
)

// Form field names.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

// Field length caps in runes.
const (
	MaxNameRunes    = 100
	MaxEmailRunes   = 254
	MaxSubjectRunes = 200
	MaxMessageRunes = 5000
)

// Localization keys for submission failures.
const (
	KeyFieldRequired = "error.contact_field_required"
	KeyEmailInvalid  = "error.contact_email_invalid"
	KeyFieldTooLong  = "error.contact_field_too_long"
	KeyEmailFailed   = "error.email_failed"
)

// Form is one submission.
type Form struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ParseForm reads and trims the contact fields from a parsed request body.
func ParseForm(r *http.Request) Form {
	return Form{
		Name:    strings.TrimSpace(r.PostFormValue(FieldName)),
		Email:   strings.TrimSpace(r.PostFormValue(FieldEmail)),
		Subject: strings.TrimSpace(r.PostFormValue(FieldSubject)),
		Message: strings.TrimSpace(r.PostFormValue(FieldMessage)),
	}
}

// Validate reports the first problem with the form as an invalid-input error.
func (f Form) Validate() error {
	if f.Name == "" || f.Email == "" || f.Subject == "" || f.Message == "" {
		return apperrors.EK(apperrors.KindInvalidInput, KeyFieldRequired, "Please fill in every field.")
	}
	if tooLong(f.Name, MaxNameRunes) || tooLong(f.Email, MaxEmailRunes) ||
		tooLong(f.Subject, MaxSubjectRunes) || tooLong(f.Message, MaxMessageRunes) {
		return apperrors.EK(apperrors.KindInvalidInput, KeyFieldTooLong, "One of the fields is too long.")
	}
	addr, err := mail.ParseAddress(f.Email)
	if err != nil || addr.Name != "" || addr.Address != f.Email {
		return apperrors.EK(apperrors.KindInvalidInput, KeyEmailInvalid, "Please enter a valid email address.")
	}
	return nil
}

func tooLong(value string, limit int) bool {
	return utf8.RuneCountInString(value) > limit
}

// Mailer delivers a message.
type Mailer interface {
	Send(context.Context, emailjs.Message) error
}

// Service handles submissions.
type Service struct {
	mailer Mailer
}

// NewService builds a Service. A nil mailer makes every submission fail as
// unavailable.
func NewService(mailer Mailer) *Service {
	return &Service{mailer: mailer}
}

// Submit validates form and sends it once.
func (s *Service) Submit(ctx context.Context, form Form) error {
	if err := form.Validate(); err != nil {
		return err
	}
	if s == nil || s.mailer == nil {
		return apperrors.Wrap(apperrors.KindUnavailable, KeyEmailFailed, "Failed to send email", emailjs.ErrNotConfigured)
	}
	err := s.mailer.Send(ctx, emailjs.Message{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	})
	if err != nil {
		log.Printf("contact send failed err=%v", err)
		return apperrors.Wrap(apperrors.KindUnavailable, KeyEmailFailed, "Failed to send email", err)
	}
	return nil
}
