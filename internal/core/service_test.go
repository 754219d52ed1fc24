package core

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

const (
	cleanMessage = "Hello, my basement flooded yesterday and I need help"
	spamMessage  = "BUY CHEAP VIAGRA NOW!!!! www.pharma-deals.biz"
)

func newTestService(store *fakeAttemptStore) *SpamCheckService {
	limiter := NewRateLimiter(store, zap.NewNop(), 3, time.Hour, FailOpen)
	return NewSpamCheckService(store, limiter, zap.NewNop(), 50)
}

// The verdict must satisfy: isSpam == (total >= 50) OR rate-limited OR
// honeypot flagged, across every combination of the four signals and
// the limiter.
func TestEvaluate_VerdictProperty(t *testing.T) {
	// Per-signal scores for the toggled inputs below.
	const (
		honeypotScore = 100
		contentScore  = 55
		testDataScore = 40
		agentScore    = 90
	)

	for mask := 0; mask < 16; mask++ {
		for _, limited := range []bool{false, true} {
			honeypot := mask&1 != 0
			spammyMsg := mask&2 != 0
			fakeData := mask&4 != 0
			botAgent := mask&8 != 0

			in := &SubmissionInput{
				IPAddress: "1.2.3.4",
				UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36",
				FormType:  FormTypeContactSupport,
				Message:   cleanMessage,
				Email:     "maria@gmail.com",
				FirstName: "Maria",
				LastName:  "Santos",
				Phone:     "(312) 478-9642",
			}
			wantScore := 0
			if honeypot {
				in.Honeypot = "http://spam.biz"
				wantScore += honeypotScore
			}
			if spammyMsg {
				in.Message = spamMessage
				wantScore += contentScore
			}
			if fakeData {
				in.Email = "test@example.org"
				wantScore += testDataScore
			}
			if botAgent {
				in.UserAgent = "curl/8.4.0"
				wantScore += agentScore
			}

			count := 0
			if limited {
				count = 3
			}
			store := &fakeAttemptStore{counts: map[string]int{"1.2.3.4": count}}
			svc := newTestService(store)

			verdict := svc.Evaluate(context.Background(), in)

			if verdict.TotalScore != wantScore {
				t.Errorf("mask=%d limited=%v: TotalScore = %d, want %d", mask, limited, verdict.TotalScore, wantScore)
			}
			wantSpam := wantScore >= 50 || limited || honeypot
			if verdict.IsSpam != wantSpam {
				t.Errorf("mask=%d limited=%v: IsSpam = %v, want %v", mask, limited, verdict.IsSpam, wantSpam)
			}
			if verdict.RateLimit.Allowed == limited {
				t.Errorf("mask=%d limited=%v: RateLimit.Allowed = %v", mask, limited, verdict.RateLimit.Allowed)
			}
		}
	}
}

func TestEvaluate_HoneypotShortCircuit(t *testing.T) {
	store := &fakeAttemptStore{counts: map[string]int{}}
	svc := newTestService(store)

	verdict := svc.Evaluate(context.Background(), &SubmissionInput{
		IPAddress: "1.2.3.4",
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36",
		FormType:  FormTypeContactSupport,
		Honeypot:  "http://spam.biz",
	})

	if !verdict.IsSpam {
		t.Error("filled honeypot must force a spam verdict")
	}
	if verdict.TotalScore != 100 {
		t.Errorf("TotalScore = %d, want 100", verdict.TotalScore)
	}
}

// Every evaluation writes exactly one audit record, accepted or not.
func TestEvaluate_AlwaysLogsAttempt(t *testing.T) {
	store := &fakeAttemptStore{counts: map[string]int{}}
	svc := newTestService(store)

	svc.Evaluate(context.Background(), &SubmissionInput{
		IPAddress: "1.2.3.4",
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36",
		FormType:  FormTypeAppointment,
		Message:   cleanMessage,
		Email:     "maria@gmail.com",
	})
	svc.Evaluate(context.Background(), &SubmissionInput{
		IPAddress: "1.2.3.4",
		FormType:  FormTypeContactSupport,
		Honeypot:  "bot was here",
	})

	if len(store.logged) != 2 {
		t.Fatalf("logged %d attempts, want 2", len(store.logged))
	}

	accepted := store.logged[0]
	if accepted.IsSpam {
		t.Error("clean submission logged as spam")
	}
	if accepted.FormType != FormTypeAppointment {
		t.Errorf("FormType = %s, want %s", accepted.FormType, FormTypeAppointment)
	}
	if accepted.Email != "maria@gmail.com" {
		t.Errorf("Email = %q", accepted.Email)
	}
	if accepted.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	rejected := store.logged[1]
	if !rejected.IsSpam {
		t.Error("honeypot submission logged as clean")
	}
	if rejected.SpamScore < 100 {
		t.Errorf("SpamScore = %d, want >= 100", rejected.SpamScore)
	}
	if rejected.SpamReason == "" {
		t.Error("SpamReason empty for rejected attempt")
	}
}

func TestEvaluate_LogFailureDoesNotAbort(t *testing.T) {
	store := &fakeAttemptStore{counts: map[string]int{}, logErr: errors.New("disk full")}
	svc := newTestService(store)

	verdict := svc.Evaluate(context.Background(), &SubmissionInput{
		IPAddress: "1.2.3.4",
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36",
		Message:   cleanMessage,
		FormType:  FormTypeContactSupport,
	})

	if verdict.IsSpam {
		t.Error("audit write failure must not change the verdict")
	}
}

func TestEvaluate_RateLimitReason(t *testing.T) {
	store := &fakeAttemptStore{counts: map[string]int{"1.2.3.4": 3}}
	svc := newTestService(store)

	verdict := svc.Evaluate(context.Background(), &SubmissionInput{
		IPAddress: "1.2.3.4",
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36",
		Message:   cleanMessage,
		FormType:  FormTypeContactSupport,
	})

	if !verdict.IsSpam {
		t.Error("rate-limited submission must be rejected")
	}
	found := false
	for _, reason := range verdict.Reasons {
		if reason == rateLimitReason {
			found = true
		}
	}
	if !found {
		t.Errorf("Reasons = %v, want %q included", verdict.Reasons, rateLimitReason)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"cloudflare header wins", map[string]string{
			"CF-Connecting-IP": "1.1.1.1",
			"X-Real-IP":        "2.2.2.2",
			"X-Forwarded-For":  "3.3.3.3, 4.4.4.4",
		}, "1.1.1.1"},
		{"real ip next", map[string]string{
			"X-Real-IP":       "2.2.2.2",
			"X-Forwarded-For": "3.3.3.3",
		}, "2.2.2.2"},
		{"first forwarded entry", map[string]string{
			"X-Forwarded-For": " 3.3.3.3 , 4.4.4.4",
		}, "3.3.3.3"},
		{"no headers", map[string]string{}, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
