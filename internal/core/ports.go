package core

import (
	"context"
	"time"
)

// AttemptStore defines the interface for the submission audit log. It is
// both the pipeline's sink and the rate limiter's data source.
type AttemptStore interface {
	// LogAttempt appends one immutable attempt record
	LogAttempt(ctx context.Context, attempt *SubmissionAttempt) error

	// CountByIPSince counts attempts from an IP created at or after the cutoff
	CountByIPSince(ctx context.Context, ipAddress string, since time.Time) (int, error)
}

// SubmissionStore defines the interface for persisting accepted business records
type SubmissionStore interface {
	// SaveContactSupport stores a contact-support request
	SaveContactSupport(ctx context.Context, c *ContactSupport) error

	// SaveAppointment stores an appointment request
	SaveAppointment(ctx context.Context, a *Appointment) error

	// SaveFacebookLead stores an ad lead
	SaveFacebookLead(ctx context.Context, l *FacebookLead) error
}

// Store combines the audit log and the business-record store; every
// storage backend implements both against the same database.
type Store interface {
	AttemptStore
	SubmissionStore
}

// CaptchaVerifier defines the interface for the external challenge-verification service
type CaptchaVerifier interface {
	// Verify checks a client-presented token, optionally pinned to an IP
	Verify(ctx context.Context, token, remoteIP string) CaptchaResult
}

// Notifier defines the interface for post-acceptance email dispatch.
// Implementations report errors; callers treat dispatch as best-effort.
type Notifier interface {
	NotifyContactSupport(ctx context.Context, c *ContactSupport) error
	NotifyAppointment(ctx context.Context, a *Appointment) error
	NotifyFacebookLead(ctx context.Context, l *FacebookLead) error
}
