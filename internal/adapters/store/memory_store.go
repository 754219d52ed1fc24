package store

import (
	"context"
	"sync"
	"time"

	"github.com/aquashield/lead-intake/internal/core"
	"go.uber.org/zap"
)

// MemoryStore is an in-memory implementation of the AttemptStore and
// SubmissionStore interfaces. Suitable for development and tests; counts
// are lost on restart, so the rate limiter resets with the process.
type MemoryStore struct {
	attempts     []*core.SubmissionAttempt
	contacts     []*core.ContactSupport
	appointments []*core.Appointment
	leads        []*core.FacebookLead
	mu           sync.RWMutex
	logger       *zap.Logger
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		logger: logger,
	}
}

// LogAttempt appends one immutable attempt record
func (s *MemoryStore) LogAttempt(ctx context.Context, attempt *core.SubmissionAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *attempt
	s.attempts = append(s.attempts, &copied)
	return nil
}

// CountByIPSince counts attempts from an IP created at or after the cutoff
func (s *MemoryStore) CountByIPSince(ctx context.Context, ipAddress string, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, attempt := range s.attempts {
		if attempt.IPAddress == ipAddress && !attempt.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// SaveContactSupport stores a contact-support request
func (s *MemoryStore) SaveContactSupport(ctx context.Context, c *core.ContactSupport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *c
	s.contacts = append(s.contacts, &copied)
	return nil
}

// SaveAppointment stores an appointment request
func (s *MemoryStore) SaveAppointment(ctx context.Context, a *core.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *a
	s.appointments = append(s.appointments, &copied)
	return nil
}

// SaveFacebookLead stores an ad lead
func (s *MemoryStore) SaveFacebookLead(ctx context.Context, l *core.FacebookLead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *l
	s.leads = append(s.leads, &copied)
	return nil
}

// Attempts returns a snapshot of the logged attempts, newest last.
func (s *MemoryStore) Attempts() []*core.SubmissionAttempt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*core.SubmissionAttempt, len(s.attempts))
	copy(out, s.attempts)
	return out
}

// Contacts returns a snapshot of the stored contact-support records.
func (s *MemoryStore) Contacts() []*core.ContactSupport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*core.ContactSupport, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// Appointments returns a snapshot of the stored appointment records.
func (s *MemoryStore) Appointments() []*core.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*core.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}

// Leads returns a snapshot of the stored lead records.
func (s *MemoryStore) Leads() []*core.FacebookLead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*core.FacebookLead, len(s.leads))
	copy(out, s.leads)
	return out
}
