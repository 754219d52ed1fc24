package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/aquashield/lead-intake/internal/adapters/httpapi"
	"github.com/aquashield/lead-intake/internal/config"
	"github.com/aquashield/lead-intake/internal/core"
	"github.com/aquashield/lead-intake/internal/factory"
	"github.com/aquashield/lead-intake/internal/logging"
	"github.com/aquashield/lead-intake/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewPipelineFactory); err != nil {
		return nil, err
	}

	// Register storage; one backend serves both the audit log and the
	// business records
	if err := container.Provide(func(f *factory.StoreFactory) (core.Store, error) {
		return f.CreateStore()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(s core.Store) core.AttemptStore { return s }); err != nil {
		return nil, err
	}
	if err := container.Provide(func(s core.Store) core.SubmissionStore { return s }); err != nil {
		return nil, err
	}

	// Register the spam pipeline
	if err := container.Provide(func(f *factory.PipelineFactory, attempts core.AttemptStore) (*core.RateLimiter, error) {
		return f.CreateRateLimiter(attempts)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.PipelineFactory, attempts core.AttemptStore, limiter *core.RateLimiter) *core.SpamCheckService {
		return f.CreateSpamCheckService(attempts, limiter)
	}); err != nil {
		return nil, err
	}

	// Register the CAPTCHA verifier
	if err := container.Provide(func(f *factory.PipelineFactory) (core.CaptchaVerifier, error) {
		return f.CreateCaptchaVerifier()
	}); err != nil {
		return nil, err
	}

	// Register the notifier
	if err := container.Provide(func(f *factory.PipelineFactory) core.Notifier {
		return f.CreateNotifier()
	}); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register the HTTP server
	if err := container.Provide(func(
		cfg *config.Config,
		spam *core.SpamCheckService,
		captcha core.CaptchaVerifier,
		submissions core.SubmissionStore,
		notifier core.Notifier,
		text *utils.TextProcessor,
		logger *zap.Logger,
	) (*httpapi.Server, error) {
		serverCfg, err := cfg.GetServer()
		if err != nil {
			return nil, err
		}
		return httpapi.NewServer(serverCfg, spam, captcha, submissions, notifier, text, logger), nil
	}); err != nil {
		return nil, err
	}

	return container, nil
}
