package core

import (
	"time"
)

// FormType identifies which public form produced a submission.
type FormType string

const (
	FormTypeContactSupport FormType = "contact_support"
	FormTypeAppointment    FormType = "appointment"
	FormTypeFacebookLead   FormType = "facebook_lead"
)

// Valid reports whether the form type is one of the known forms.
func (t FormType) Valid() bool {
	switch t {
	case FormTypeContactSupport, FormTypeAppointment, FormTypeFacebookLead:
		return true
	}
	return false
}

// SubmissionAttempt is one audited form POST, spam or not. Attempts are
// append-only; the rate limiter counts them per IP.
type SubmissionAttempt struct {
	IPAddress  string
	UserAgent  string
	FormType   FormType
	IsSpam     bool
	SpamScore  int
	SpamReason string
	Email      string
	CreatedAt  time.Time
}

// SpamSignal is the result of a single scoring rule.
type SpamSignal struct {
	IsSpam bool
	Reason string
	Score  int
}

// RateLimitStatus is the rate limiter's decision for one IP.
type RateLimitStatus struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// SpamVerdict is the aggregate decision for one submission.
type SpamVerdict struct {
	IsSpam     bool
	TotalScore int
	Reasons    []string
	RateLimit  RateLimitStatus
}

// CaptchaResult is the outcome of one CAPTCHA verification call.
type CaptchaResult struct {
	Success bool
	Message string
}

// SubmissionInput carries everything the spam pipeline inspects about
// one inbound submission. Identity fields are optional; empty means the
// form did not collect them.
type SubmissionInput struct {
	IPAddress string
	UserAgent string
	FormType  FormType
	Honeypot  string
	Message   string
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

// ContactSupport is the business record for the contact form.
type ContactSupport struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

// Appointment is the business record for the free-inspection form.
type Appointment struct {
	ID                string
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	Address           string
	Address2          string
	City              string
	State             string
	Zipcode           string
	Country           string
	InsuranceProperty string
	Message           string
	SMSConsent        bool
	CreatedAt         time.Time
}

// FacebookLead is the business record for the ad lead form.
type FacebookLead struct {
	ID                string
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	Address           string
	Address2          string
	City              string
	State             string
	Zipcode           string
	Country           string
	InsuranceProperty string
	Message           string
	LeadSource        string
	SMSConsent        bool
	Latitude          *float64
	Longitude         *float64
	CreatedAt         time.Time
}
