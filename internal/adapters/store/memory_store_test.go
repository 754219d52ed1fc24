package store

import (
	"context"
	"testing"
	"time"

	"github.com/aquashield/lead-intake/internal/core"
	"go.uber.org/zap"
)

func TestMemoryStore_CountByIPSince(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()
	now := time.Now()

	attempts := []*core.SubmissionAttempt{
		{IPAddress: "1.2.3.4", CreatedAt: now.Add(-30 * time.Minute)},
		{IPAddress: "1.2.3.4", CreatedAt: now.Add(-5 * time.Minute)},
		{IPAddress: "1.2.3.4", CreatedAt: now.Add(-2 * time.Hour)},
		{IPAddress: "5.6.7.8", CreatedAt: now.Add(-5 * time.Minute)},
	}
	for _, a := range attempts {
		if err := s.LogAttempt(ctx, a); err != nil {
			t.Fatalf("LogAttempt: %v", err)
		}
	}

	count, err := s.CountByIPSince(ctx, "1.2.3.4", now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountByIPSince: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2 inside the window", count)
	}

	count, err = s.CountByIPSince(ctx, "9.9.9.9", now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountByIPSince: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d for unseen IP, want 0", count)
	}
}

func TestMemoryStore_LogAttemptCopies(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	attempt := &core.SubmissionAttempt{IPAddress: "1.2.3.4", SpamScore: 55, CreatedAt: time.Now()}
	if err := s.LogAttempt(ctx, attempt); err != nil {
		t.Fatalf("LogAttempt: %v", err)
	}
	attempt.SpamScore = 0

	got := s.Attempts()
	if len(got) != 1 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].SpamScore != 55 {
		t.Error("stored record shares memory with the caller's struct")
	}
}

func TestMemoryStore_SaveRecords(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	if err := s.SaveContactSupport(ctx, &core.ContactSupport{ID: "c1"}); err != nil {
		t.Fatalf("SaveContactSupport: %v", err)
	}
	if err := s.SaveAppointment(ctx, &core.Appointment{ID: "a1"}); err != nil {
		t.Fatalf("SaveAppointment: %v", err)
	}
	if err := s.SaveFacebookLead(ctx, &core.FacebookLead{ID: "l1"}); err != nil {
		t.Fatalf("SaveFacebookLead: %v", err)
	}

	if got := s.Contacts(); len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("Contacts = %+v", got)
	}
	if got := s.Appointments(); len(got) != 1 || got[0].ID != "a1" {
		t.Errorf("Appointments = %+v", got)
	}
	if got := s.Leads(); len(got) != 1 || got[0].ID != "l1" {
		t.Errorf("Leads = %+v", got)
	}
}
