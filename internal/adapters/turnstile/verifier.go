package turnstile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aquashield/lead-intake/internal/config"
	"github.com/aquashield/lead-intake/internal/core"
	"go.uber.org/zap"
)

// Verifier checks Cloudflare Turnstile tokens against the siteverify
// endpoint. The CAPTCHA gate fails closed: a missing secret, a missing
// token, or a transport failure all produce a failed result, never a
// bypass and never an unhandled error.
type Verifier struct {
	secretKey  string
	verifyURL  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewVerifier creates a new Turnstile verifier
func NewVerifier(cfg config.TurnstileConfig, logger *zap.Logger) *Verifier {
	return &Verifier{
		secretKey: cfg.SecretKey,
		verifyURL: cfg.VerifyURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks a client-presented token, optionally pinned to an IP.
// No outbound call is made when the secret or the token is absent.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) core.CaptchaResult {
	if v.secretKey == "" {
		v.logger.Error("Turnstile secret key is not configured")
		return core.CaptchaResult{Success: false, Message: "Server configuration error"}
	}

	if token == "" {
		return core.CaptchaResult{Success: false, Message: "CAPTCHA token is missing"}
	}

	form := url.Values{}
	form.Set("secret", v.secretKey)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		v.logger.Error("Failed to build Turnstile request", zap.Error(err))
		return core.CaptchaResult{Success: false, Message: "CAPTCHA verification request failed"}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		v.logger.Error("Turnstile request failed", zap.Error(err))
		return core.CaptchaResult{Success: false, Message: "CAPTCHA verification request failed"}
	}
	defer resp.Body.Close()

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		v.logger.Error("Failed to decode Turnstile response", zap.Error(err))
		return core.CaptchaResult{Success: false, Message: "CAPTCHA verification request failed"}
	}

	v.logger.Debug("Turnstile verification result",
		zap.Bool("success", result.Success),
		zap.Strings("error_codes", result.ErrorCodes))

	if !result.Success {
		return core.CaptchaResult{
			Success: false,
			Message: fmt.Sprintf("Verification failed: %s", strings.Join(result.ErrorCodes, ", ")),
		}
	}

	return core.CaptchaResult{Success: true, Message: "Verification successful"}
}
