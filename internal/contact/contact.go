// Package contact handles the contact/sponsorship intake funnel: validation,
// record persistence and a best-effort email notification. The email path
// must never block or fail the record save.
package contact

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
)

// Submission is the user-provided form payload.
type Submission struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Subject     string `json:"subject" validate:"required,max=200"`
	Message     string `json:"message" validate:"required,min=10,max=5000"`
	InquiryType string `json:"inquiryType" validate:"required,oneof=general sponsoring partnership media"`
}

// Record is a persisted submission.
type Record struct {
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submittedAt"`
	Submission
}

// Repository is the contract the submission store must satisfy.
type Repository interface {
	Append(rec Record)
	All() []Record
}

// Service validates and persists submissions and notifies by email when a
// Resend key is configured.
type Service struct {
	repo     Repository
	emails   *resend.Client
	sender   string
	receiver string
	validate *validator.Validate
}

// NewService creates a contact Service. An empty apiKey disables email
// notification; submissions are still accepted and stored.
func NewService(repo Repository, apiKey, sender, receiver string) *Service {
	s := &Service{
		repo:     repo,
		sender:   sender,
		receiver: receiver,
		validate: validator.New(),
	}
	if apiKey != "" {
		s.emails = resend.NewClient(apiKey)
	}
	return s
}

// Submit validates the submission, persists it and fires the notification
// email in the background. Validation is the only error path; everything
// after the save is best-effort.
func (s *Service) Submit(ctx context.Context, sub Submission) (Record, error) {
	if err := s.validate.Struct(sub); err != nil {
		return Record{}, err
	}

	rec := Record{
		ID:          uuid.NewString(),
		SubmittedAt: time.Now().UTC(),
		Submission:  sub,
	}
	s.repo.Append(rec)

	// Detached from the request context on purpose: the response must not
	// wait for the mail provider.
	go s.notify(rec)

	return rec, nil
}

func (s *Service) notify(rec Record) {
	if s.emails == nil {
		return
	}

	body := fmt.Sprintf(
		"<h2>New Contact Form Submission</h2>"+
			"<p><strong>Name:</strong> %s</p>"+
			"<p><strong>Email:</strong> %s</p>"+
			"<p><strong>Inquiry Type:</strong> %s</p>"+
			"<p><strong>Subject:</strong> %s</p>"+
			"<p><strong>Message:</strong></p><p>%s</p>"+
			"<hr><p><em>This email was sent from the Surf au Maroc contact form.</em></p>",
		rec.Name, rec.Email, rec.InquiryType, rec.Subject,
		strings.ReplaceAll(rec.Message, "\n", "<br>"),
	)

	_, err := s.emails.Emails.Send(&resend.SendEmailRequest{
		From:    s.sender,
		To:      []string{s.receiver},
		Subject: "[Surf au Maroc] " + rec.Subject,
		Html:    body,
	})
	if err != nil {
		log.Printf("contact: notification email failed for %s: %v", rec.ID, err)
	}
}
