// Package contact forwards contact form submissions to the site owner
// through a transactional email provider.
package contact

import (
	"context"
	"errors"
)

// ErrProviderRejected indicates the provider answered but refused the message.
var ErrProviderRejected = errors.New("email provider rejected message")

// Submission is what the contact form posts.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Email is one outbound message.
type Email struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Sender abstracts the email provider.
type Sender interface {
	Send(ctx context.Context, msg Email) error
}

// Result is reported back to the form.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type Logger interface {
	Infow(msg string, kv ...any)
	Warnw(msg string, kv ...any)
}

// Relay sends exactly one email per Submit call. It never retries and keeps
// no record of past submissions.
type Relay struct {
	sender Sender
	from   string
	to     string
	log    Logger
}

func NewRelay(sender Sender, from, to string, log Logger) *Relay {
	return &Relay{sender: sender, from: from, to: to, log: log}
}

// Submit forwards s to the configured recipient. Fields are passed through
// as given; the provider is the only validator.
func (r *Relay) Submit(ctx context.Context, s Submission) Result {
	subject, text, html, err := render(s)
	if err != nil {
		return r.fail(err)
	}

	msg := Email{
		From:    r.from,
		To:      r.to,
		ReplyTo: s.Email,
		Subject: subject,
		Text:    text,
		HTML:    html,
	}
	if err := r.sender.Send(ctx, msg); err != nil {
		return r.fail(err)
	}

	if r.log != nil {
		r.log.Infow("contact message accepted", "from_name", s.Name)
	}
	return Result{Success: true}
}

func (r *Relay) fail(err error) Result {
	if r.log != nil {
		r.log.Warnw("contact message failed", "error", err)
	}
	return Result{Success: false, Error: err.Error()}
}
