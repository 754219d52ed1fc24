package core

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// FailurePolicy states how a dependent-call wrapper behaves when its
// dependency is unavailable.
type FailurePolicy int

const (
	// FailOpen proceeds as if the call had permitted the request
	FailOpen FailurePolicy = iota
	// FailClosed treats the request as denied
	FailClosed
)

func (p FailurePolicy) String() string {
	if p == FailClosed {
		return "fail-closed"
	}
	return "fail-open"
}

// RateLimiter enforces a sliding-window submission quota per IP, backed
// by the attempt log. The limiter is advisory: concurrent submissions
// racing the count may over-admit by a few requests, which is tolerated.
type RateLimiter struct {
	store          AttemptStore
	logger         *zap.Logger
	maxSubmissions int
	window         time.Duration
	policy         FailurePolicy
}

// NewRateLimiter creates a new sliding-window rate limiter. The form
// must stay reachable when the data layer is degraded, so the standard
// policy is FailOpen.
func NewRateLimiter(
	store AttemptStore,
	logger *zap.Logger,
	maxSubmissions int,
	window time.Duration,
	policy FailurePolicy,
) *RateLimiter {
	return &RateLimiter{
		store:          store,
		logger:         logger,
		maxSubmissions: maxSubmissions,
		window:         window,
		policy:         policy,
	}
}

// Check counts attempts from the IP within the window and decides
// whether another submission is allowed.
func (l *RateLimiter) Check(ctx context.Context, ipAddress string) RateLimitStatus {
	now := time.Now()
	windowStart := now.Add(-l.window)

	count, err := l.store.CountByIPSince(ctx, ipAddress, windowStart)
	if err != nil {
		l.logger.Error("Rate limit check failed",
			zap.Error(err),
			zap.String("ip", ipAddress),
			zap.String("policy", l.policy.String()))

		if l.policy == FailClosed {
			return RateLimitStatus{Allowed: false, Remaining: 0, ResetAt: now.Add(l.window)}
		}
		return RateLimitStatus{Allowed: true, Remaining: l.maxSubmissions, ResetAt: now.Add(l.window)}
	}

	remaining := l.maxSubmissions - count
	if remaining < 0 {
		remaining = 0
	}

	return RateLimitStatus{
		Allowed:   count < l.maxSubmissions,
		Remaining: remaining,
		ResetAt:   now.Add(l.window),
	}
}
