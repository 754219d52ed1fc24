package core

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// rateLimitReason is the literal appended to the verdict when the
// limiter disallows; it is stored in the audit log with the rest.
const rateLimitReason = "Rate limit exceeded"

// SpamCheckService composes the scoring rules and the rate limiter into
// one verdict per submission and audits every attempt.
type SpamCheckService struct {
	store          AttemptStore
	limiter        *RateLimiter
	logger         *zap.Logger
	rules          []ScoreRule
	scoreThreshold int
}

// NewSpamCheckService creates a new spam check service
func NewSpamCheckService(
	store AttemptStore,
	limiter *RateLimiter,
	logger *zap.Logger,
	scoreThreshold int,
) *SpamCheckService {
	return &SpamCheckService{
		store:          store,
		limiter:        limiter,
		logger:         logger,
		rules:          ScoringRules(),
		scoreThreshold: scoreThreshold,
	}
}

// Evaluate runs every scoring rule and the rate limiter over one
// submission and returns the aggregate verdict. Exactly one audit record
// is written per call, on the accept path too, so the limiter has data
// to count against next time. A write failure is logged and swallowed.
func (s *SpamCheckService) Evaluate(ctx context.Context, in *SubmissionInput) SpamVerdict {
	totalScore := 0
	var reasons []string
	honeypotFlagged := false

	for _, rule := range s.rules {
		signal := rule.Check(in)
		totalScore += signal.Score
		if signal.Reason != "" {
			reasons = append(reasons, signal.Reason)
		}
		if rule.Name == "honeypot" && signal.IsSpam {
			honeypotFlagged = true
		}
	}

	rateLimit := s.limiter.Check(ctx, in.IPAddress)
	if !rateLimit.Allowed {
		reasons = append(reasons, rateLimitReason)
	}

	isSpam := totalScore >= s.scoreThreshold || !rateLimit.Allowed || honeypotFlagged

	verdict := SpamVerdict{
		IsSpam:     isSpam,
		TotalScore: totalScore,
		Reasons:    reasons,
		RateLimit:  rateLimit,
	}

	if isSpam {
		s.logger.Warn("Spam detected",
			zap.String("ip", in.IPAddress),
			zap.String("form_type", string(in.FormType)),
			zap.Int("score", totalScore),
			zap.Strings("reasons", reasons))
	} else {
		s.logger.Debug("Submission passed spam check",
			zap.String("ip", in.IPAddress),
			zap.String("form_type", string(in.FormType)),
			zap.Int("score", totalScore))
	}

	attempt := &SubmissionAttempt{
		IPAddress:  in.IPAddress,
		UserAgent:  in.UserAgent,
		FormType:   in.FormType,
		IsSpam:     isSpam,
		SpamScore:  totalScore,
		SpamReason: strings.Join(reasons, "; "),
		Email:      in.Email,
		CreatedAt:  time.Now(),
	}
	if err := s.store.LogAttempt(ctx, attempt); err != nil {
		s.logger.Error("Failed to log submission attempt",
			zap.Error(err),
			zap.String("ip", in.IPAddress))
	}

	return verdict
}

// ClientIP derives the originating IP from edge-proxy headers, most
// trusted first, falling back to "unknown".
func ClientIP(r *http.Request) string {
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	return "unknown"
}
