package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/aquashield/lead-intake/internal/config"
	"github.com/aquashield/lead-intake/internal/core"
	"github.com/aquashield/lead-intake/internal/utils"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Server exposes the public form-intake API.
type Server struct {
	spam         *core.SpamCheckService
	captcha      core.CaptchaVerifier
	submissions  core.SubmissionStore
	notifier     core.Notifier
	text         *utils.TextProcessor
	logger       *zap.Logger
	listenAddr   string
	maxBodyBytes int64
	httpServer   *http.Server
}

// NewServer creates a new intake API server
func NewServer(
	cfg config.ServerConfig,
	spam *core.SpamCheckService,
	captcha core.CaptchaVerifier,
	submissions core.SubmissionStore,
	notifier core.Notifier,
	text *utils.TextProcessor,
	logger *zap.Logger,
) *Server {
	s := &Server{
		spam:         spam,
		captcha:      captcha,
		submissions:  submissions,
		notifier:     notifier,
		text:         text,
		logger:       logger,
		listenAddr:   cfg.ListenAddress,
		maxBodyBytes: cfg.MaxBodyBytes,
	}

	r := chi.NewRouter()
	r.Use(s.recoverer)
	r.Use(securityHeaders)
	r.Get("/healthz", s.handleHealth)
	r.Post("/api/contact-support", s.handleContactSupport)
	r.Post("/api/appointment", s.handleAppointment)
	r.Post("/api/facebook-lead", s.handleFacebookLead)

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Intake API starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("HTTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
