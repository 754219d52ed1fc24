package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aquashield/lead-intake/internal/core"
	"github.com/aquashield/lead-intake/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgValidationErrors = "Validation errors"
	msgSpamFlagged      = "Your submission has been flagged. Please contact us directly by phone if this is an error."
	msgCaptchaFailed    = "CAPTCHA verification failed. Please try again."
	msgDatabaseError    = "Database error occurred"
	msgUnexpectedError  = "An unexpected error occurred. Please try again later."
)

// apiResponse is the JSON envelope returned by every endpoint.
type apiResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// decode reads the JSON body into dst, honoring the body size limit.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, apiResponse{
			Success: false,
			Message: msgValidationErrors,
			Errors:  map[string][]string{"body": {"Invalid request body"}},
		})
		return false
	}
	return true
}

// gate runs the spam check then the CAPTCHA verification and writes the
// rejection response itself when either fails. Schema validation happens
// before this, so the cheapest checks run first and the external CAPTCHA
// call is only made for submissions that already look legitimate.
func (s *Server) gate(w http.ResponseWriter, r *http.Request, in *core.SubmissionInput, token string) bool {
	verdict := s.spam.Evaluate(r.Context(), in)
	if verdict.IsSpam {
		s.writeJSON(w, http.StatusUnprocessableEntity, apiResponse{
			Success: false,
			Message: msgSpamFlagged,
		})
		return false
	}

	remoteIP := in.IPAddress
	if remoteIP == "unknown" {
		remoteIP = ""
	}
	captcha := s.captcha.Verify(r.Context(), token, remoteIP)
	if !captcha.Success {
		s.writeJSON(w, http.StatusUnprocessableEntity, apiResponse{
			Success: false,
			Message: msgCaptchaFailed,
			Errors:  map[string][]string{"captcha": {captcha.Message}},
		})
		return false
	}
	return true
}

// handleContactSupport processes the contact form.
func (s *Server) handleContactSupport(w http.ResponseWriter, r *http.Request) {
	var req validation.ContactSupportRequest
	if !s.decode(w, r, &req) {
		return
	}

	if errs := req.Validate(); !errs.Empty() {
		s.writeJSON(w, http.StatusUnprocessableEntity, apiResponse{
			Success: false,
			Message: msgValidationErrors,
			Errors:  errs,
		})
		return
	}

	in := &core.SubmissionInput{
		IPAddress: core.ClientIP(r),
		UserAgent: r.UserAgent(),
		FormType:  core.FormTypeContactSupport,
		Honeypot:  req.Website,
		Message:   s.text.SanitizeUTF8(req.Message),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if !s.gate(w, r, in, req.TurnstileToken) {
		return
	}

	subject := req.Service
	if subject == "" {
		subject = "General Inquiry"
	}
	contact := &core.ContactSupport{
		ID:        uuid.NewString(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     validation.NormalizeE164(req.Phone),
		Subject:   subject,
		Message:   in.Message,
		CreatedAt: time.Now(),
	}
	if err := s.submissions.SaveContactSupport(r.Context(), contact); err != nil {
		s.logger.Error("Failed to save contact record", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, apiResponse{
			Success: false,
			Message: msgDatabaseError,
		})
		return
	}

	if err := s.notifier.NotifyContactSupport(r.Context(), contact); err != nil {
		s.logger.Error("Failed to send contact notification", zap.Error(err))
	}

	s.writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: "Thank you for contacting us! We will get back to you shortly.",
	})
}

// handleAppointment processes the free-inspection form.
func (s *Server) handleAppointment(w http.ResponseWriter, r *http.Request) {
	var req validation.AppointmentRequest
	if !s.decode(w, r, &req) {
		return
	}

	if errs := req.Validate(); !errs.Empty() {
		s.writeJSON(w, http.StatusUnprocessableEntity, apiResponse{
			Success: false,
			Message: msgValidationErrors,
			Errors:  errs,
		})
		return
	}

	in := &core.SubmissionInput{
		IPAddress: core.ClientIP(r),
		UserAgent: r.UserAgent(),
		FormType:  core.FormTypeAppointment,
		Message:   s.text.SanitizeUTF8(req.Message),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
	}
	if !s.gate(w, r, in, req.TurnstileToken) {
		return
	}

	country := req.Country
	if country == "" {
		country = "US"
	}
	appointment := &core.Appointment{
		ID:                uuid.NewString(),
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             validation.NormalizeE164(req.Phone),
		Address:           req.Address,
		Address2:          req.Address2,
		City:              req.City,
		State:             req.State,
		Zipcode:           req.Zipcode,
		Country:           country,
		InsuranceProperty: req.InsuranceProperty,
		Message:           in.Message,
		SMSConsent:        bool(req.SMSConsent),
		CreatedAt:         time.Now(),
	}
	if err := s.submissions.SaveAppointment(r.Context(), appointment); err != nil {
		s.logger.Error("Failed to save appointment record", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, apiResponse{
			Success: false,
			Message: msgDatabaseError,
		})
		return
	}

	if err := s.notifier.NotifyAppointment(r.Context(), appointment); err != nil {
		s.logger.Error("Failed to send appointment notification", zap.Error(err))
	}

	s.writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: "Thank you! Your free inspection has been scheduled. We will contact you shortly.",
	})
}

// handleFacebookLead processes the ad lead form.
func (s *Server) handleFacebookLead(w http.ResponseWriter, r *http.Request) {
	var req validation.FacebookLeadRequest
	if !s.decode(w, r, &req) {
		return
	}

	if errs := req.Validate(); !errs.Empty() {
		s.writeJSON(w, http.StatusUnprocessableEntity, apiResponse{
			Success: false,
			Message: msgValidationErrors,
			Errors:  errs,
		})
		return
	}

	in := &core.SubmissionInput{
		IPAddress: core.ClientIP(r),
		UserAgent: r.UserAgent(),
		FormType:  core.FormTypeFacebookLead,
		Honeypot:  req.Website,
		Message:   s.text.SanitizeUTF8(req.Message),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
	}
	if !s.gate(w, r, in, req.TurnstileToken) {
		return
	}

	country := req.Country
	if country == "" {
		country = "US"
	}
	leadSource := req.LeadSource
	if leadSource == "" {
		leadSource = "Facebook Ads"
	}
	lead := &core.FacebookLead{
		ID:                uuid.NewString(),
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             validation.NormalizeE164(req.Phone),
		Address:           req.Address,
		Address2:          req.Address2,
		City:              req.City,
		State:             req.State,
		Zipcode:           req.Zipcode,
		Country:           country,
		InsuranceProperty: req.InsuranceProperty,
		Message:           in.Message,
		LeadSource:        leadSource,
		SMSConsent:        bool(req.SMSConsent),
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		CreatedAt:         time.Now(),
	}
	if err := s.submissions.SaveFacebookLead(r.Context(), lead); err != nil {
		s.logger.Error("Failed to save lead record", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, apiResponse{
			Success: false,
			Message: msgDatabaseError,
		})
		return
	}

	if err := s.notifier.NotifyFacebookLead(r.Context(), lead); err != nil {
		s.logger.Error("Failed to send lead notification", zap.Error(err))
	}

	s.writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: "Thank you! We received your information and will reach out shortly.",
	})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
