package factory

import (
	"github.com/aquashield/lead-intake/internal/adapters/notify"
	"github.com/aquashield/lead-intake/internal/adapters/turnstile"
	"github.com/aquashield/lead-intake/internal/config"
	"github.com/aquashield/lead-intake/internal/core"
	"go.uber.org/zap"
)

// PipelineFactory creates the spam pipeline collaborators from
// configuration
type PipelineFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewPipelineFactory creates a new pipeline factory
func NewPipelineFactory(cfg *config.Config, logger *zap.Logger) *PipelineFactory {
	return &PipelineFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateRateLimiter creates the sliding-window rate limiter. The limiter
// fails open so a degraded data layer never blocks legitimate visitors.
func (f *PipelineFactory) CreateRateLimiter(attempts core.AttemptStore) (*core.RateLimiter, error) {
	rlCfg, err := f.cfg.GetRateLimit()
	if err != nil {
		return nil, err
	}
	return core.NewRateLimiter(attempts, f.logger, rlCfg.MaxSubmissions, rlCfg.Window, core.FailOpen), nil
}

// CreateSpamCheckService creates the spam orchestrator
func (f *PipelineFactory) CreateSpamCheckService(attempts core.AttemptStore, limiter *core.RateLimiter) *core.SpamCheckService {
	return core.NewSpamCheckService(attempts, limiter, f.logger, f.cfg.GetSpam().ScoreThreshold)
}

// CreateCaptchaVerifier creates the Turnstile verifier
func (f *PipelineFactory) CreateCaptchaVerifier() (core.CaptchaVerifier, error) {
	tsCfg, err := f.cfg.GetTurnstile()
	if err != nil {
		return nil, err
	}
	return turnstile.NewVerifier(tsCfg, f.logger), nil
}

// CreateNotifier creates the SMTP notifier
func (f *PipelineFactory) CreateNotifier() core.Notifier {
	return notify.NewSMTPNotifier(f.cfg.GetEmail(), f.logger)
}
