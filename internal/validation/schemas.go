package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var (
	namePattern      = regexp.MustCompile(`^[A-Za-z\s'\-]+$`)
	fakeNamePattern  = regexp.MustCompile(`(?i)test|asdf|qwerty|fake|dummy`)
	fakeEmailPattern = regexp.MustCompile(`(?i)test@|example@|fake@|sample@|temp@|mailinator|guerrilla`)
	fakePhonePattern = regexp.MustCompile(`123|555|0000|1234567890`)
	shortFakePhone   = regexp.MustCompile(`123|555|0000`)
	fakeAddrPattern  = regexp.MustCompile(`(?i)test|example|fake|asdf`)
	fakeCityPattern  = regexp.MustCompile(`(?i)test|example|fake`)
	urlPattern       = regexp.MustCompile(`(?i)https?://|www\.`)
	leadPhonePattern = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)
	nonDigitPattern  = regexp.MustCompile(`\D`)
)

// Errors maps a field path to the messages recorded against it.
type Errors map[string][]string

// Add records a message against a field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Empty reports whether no messages were recorded.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// structErrors runs the tag-based validator and folds its findings into
// the error map.
func structErrors(s any, errs Errors) {
	err := validate.Struct(s)
	if err == nil {
		return
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		errs.Add("general", "invalid payload")
		return
	}
	for _, fe := range ve {
		errs.Add(fe.Field(), messageFor(fe))
	}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must be numeric", fe.Field())
	case "latitude":
		return "Invalid latitude"
	case "longitude":
		return "Invalid longitude"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// ContactSupportRequest is the contact form payload.
type ContactSupportRequest struct {
	FirstName      string   `json:"first_name" validate:"required,min=2,max=50"`
	LastName       string   `json:"last_name" validate:"required,min=2,max=50"`
	Email          string   `json:"email" validate:"required,email,min=5,max=100"`
	Phone          string   `json:"phone" validate:"required,min=10,max=20"`
	Service        string   `json:"service" validate:"omitempty"`
	Address        string   `json:"address" validate:"omitempty,min=5,max=200"`
	Message        string   `json:"message" validate:"required,min=10,max=1000"`
	SMSConsent     FlexBool `json:"sms_consent"`
	Consent        FlexBool `json:"consent"`
	Website        string   `json:"website"`
	TurnstileToken string   `json:"cf-turnstile-response" validate:"required"`
}

// Validate checks the payload shape and returns per-field messages.
func (r *ContactSupportRequest) Validate() Errors {
	errs := Errors{}
	structErrors(r, errs)

	checkName(errs, "first_name", r.FirstName, true)
	checkName(errs, "last_name", r.LastName, true)

	if r.Email != "" && fakeEmailPattern.MatchString(r.Email) {
		errs.Add("email", "Invalid email address")
	}
	if r.Phone != "" {
		if len(DigitsOnly(r.Phone)) < 10 {
			errs.Add("phone", "Invalid phone number")
		}
		if fakePhonePattern.MatchString(r.Phone) {
			errs.Add("phone", "Invalid phone number")
		}
	}
	if r.Message != "" && urlPattern.MatchString(r.Message) {
		errs.Add("message", "URLs are not allowed in the message")
	}
	if !bool(r.Consent) {
		errs.Add("consent", "You must agree to the terms")
	}
	return errs
}

// AppointmentRequest is the free-inspection form payload.
type AppointmentRequest struct {
	FirstName         string   `json:"first_name" validate:"required,min=2,max=50"`
	LastName          string   `json:"last_name" validate:"required,min=2,max=50"`
	Phone             string   `json:"phone" validate:"required,min=10,max=20"`
	Email             string   `json:"email" validate:"omitempty,email,max=100"`
	Address           string   `json:"address" validate:"required,min=5,max=200"`
	Address2          string   `json:"address_2" validate:"omitempty,max=100"`
	City              string   `json:"city" validate:"required,min=2,max=100"`
	State             string   `json:"state" validate:"required,len=2"`
	Zipcode           string   `json:"zipcode" validate:"required,len=5,numeric"`
	Country           string   `json:"country" validate:"omitempty,min=2"`
	InsuranceProperty string   `json:"insurance_property" validate:"required,oneof=yes no"`
	Message           string   `json:"message" validate:"omitempty,max=1000"`
	SMSConsent        FlexBool `json:"sms_consent"`
	TurnstileToken    string   `json:"cf-turnstile-response" validate:"required"`
}

// Validate checks the payload shape and returns per-field messages.
func (r *AppointmentRequest) Validate() Errors {
	errs := Errors{}
	structErrors(r, errs)

	checkName(errs, "first_name", r.FirstName, false)
	checkName(errs, "last_name", r.LastName, false)

	if r.Phone != "" && len(DigitsOnly(r.Phone)) < 10 {
		errs.Add("phone", "Invalid phone number")
	}
	return errs
}

// FacebookLeadRequest is the ad lead form payload.
type FacebookLeadRequest struct {
	FirstName         string   `json:"first_name" validate:"required,min=2,max=50"`
	LastName          string   `json:"last_name" validate:"required,min=2,max=50"`
	Email             string   `json:"email" validate:"required,email,min=5,max=100"`
	Phone             string   `json:"phone" validate:"required"`
	Address           string   `json:"address" validate:"required,min=5,max=200"`
	Address2          string   `json:"address_2" validate:"omitempty,max=100"`
	City              string   `json:"city" validate:"required,min=2,max=100"`
	State             string   `json:"state" validate:"required,len=2"`
	Zipcode           string   `json:"zipcode" validate:"required,len=5,numeric"`
	Country           string   `json:"country" validate:"omitempty,min=2"`
	InsuranceProperty string   `json:"insurance_property" validate:"required,oneof=yes no"`
	Message           string   `json:"message" validate:"omitempty,min=10,max=1000"`
	SMSConsent        FlexBool `json:"sms_consent"`
	Latitude          *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude         *float64 `json:"longitude" validate:"omitempty,longitude"`
	LeadSource        string   `json:"lead_source" validate:"omitempty,oneof='Facebook Ads' Website Reference 'Retell AI'"`
	Website           string   `json:"website"`
	TurnstileToken    string   `json:"cf-turnstile-response" validate:"required"`
}

// Validate checks the payload shape and returns per-field messages.
func (r *FacebookLeadRequest) Validate() Errors {
	errs := Errors{}
	structErrors(r, errs)

	checkName(errs, "first_name", r.FirstName, true)
	checkName(errs, "last_name", r.LastName, true)

	if r.Email != "" && fakeEmailPattern.MatchString(r.Email) {
		errs.Add("email", "Invalid email address")
	}
	if r.Phone != "" {
		if !leadPhonePattern.MatchString(r.Phone) {
			errs.Add("phone", "Phone must be in format (XXX) XXX-XXXX")
		}
		if shortFakePhone.MatchString(r.Phone) {
			errs.Add("phone", "Invalid phone number")
		}
	}
	if r.Address != "" && fakeAddrPattern.MatchString(r.Address) {
		errs.Add("address", "Invalid address")
	}
	if r.City != "" && fakeCityPattern.MatchString(r.City) {
		errs.Add("city", "Invalid city")
	}
	if r.Message != "" && urlPattern.MatchString(r.Message) {
		errs.Add("message", "URLs are not allowed")
	}
	return errs
}

// checkName applies the shared name constraints; rejectFake additionally
// refuses placeholder names on the forms that filter them at the schema
// layer.
func checkName(errs Errors, field, value string, rejectFake bool) {
	if value == "" {
		return
	}
	if !namePattern.MatchString(value) {
		errs.Add(field, fieldLabel(field)+" contains invalid characters")
	}
	if rejectFake && fakeNamePattern.MatchString(value) {
		errs.Add(field, "Invalid "+strings.ReplaceAll(field, "_", " "))
	}
}

func fieldLabel(field string) string {
	switch field {
	case "first_name":
		return "First name"
	case "last_name":
		return "Last name"
	default:
		return field
	}
}
