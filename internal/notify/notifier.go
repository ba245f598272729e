// Package notify provides the outbound notification collaborator. Delivery
// failures are returned to the caller but must always be treated as
// best-effort by the engine.
package notify

import (
	"context"
	"sync"
)

// Notifier is the delivery contract the engine sends email and SMS through.
type Notifier interface {
	SendEmail(ctx context.Context, recipient, subject, body string) error
	SendSMS(ctx context.Context, recipient, body string) error
}

// Recorder is a Notifier that records every delivery attempt in memory.
// Used in tests and as the default when no gateway is configured.
type Recorder struct {
	mu     sync.Mutex
	emails []RecordedMessage
	sms    []RecordedMessage

	// FailEmail and FailSMS force the corresponding send to return this error.
	FailEmail error
	FailSMS   error
}

// RecordedMessage is one captured delivery attempt.
type RecordedMessage struct {
	Recipient string
	Subject   string
	Body      string
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// SendEmail records the email, or fails if FailEmail is set.
func (r *Recorder) SendEmail(ctx context.Context, recipient, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailEmail != nil {
		return r.FailEmail
	}
	r.emails = append(r.emails, RecordedMessage{Recipient: recipient, Subject: subject, Body: body})
	return nil
}

// SendSMS records the SMS, or fails if FailSMS is set.
func (r *Recorder) SendSMS(ctx context.Context, recipient, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailSMS != nil {
		return r.FailSMS
	}
	r.sms = append(r.sms, RecordedMessage{Recipient: recipient, Body: body})
	return nil
}

// Emails returns a copy of the recorded emails.
func (r *Recorder) Emails() []RecordedMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedMessage, len(r.emails))
	copy(out, r.emails)
	return out
}

// SMS returns a copy of the recorded SMS messages.
func (r *Recorder) SMS() []RecordedMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedMessage, len(r.sms))
	copy(out, r.sms)
	return out
}
