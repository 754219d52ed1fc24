package validation

import (
	"encoding/json"
	"testing"
)

func validContact() ContactSupportRequest {
	return ContactSupportRequest{
		FirstName:      "Maria",
		LastName:       "Santos",
		Email:          "maria.santos@gmail.com",
		Phone:          "(312) 478-9642",
		Message:        "My basement flooded after the storm and I need an inspection.",
		Consent:        true,
		TurnstileToken: "tok-abc",
	}
}

func validAppointment() AppointmentRequest {
	return AppointmentRequest{
		FirstName:         "Maria",
		LastName:          "Santos",
		Phone:             "(312) 478-9642",
		Email:             "maria.santos@gmail.com",
		Address:           "742 Evergreen Terrace",
		City:              "Chicago",
		State:             "IL",
		Zipcode:           "60614",
		InsuranceProperty: "yes",
		TurnstileToken:    "tok-abc",
	}
}

func validLead() FacebookLeadRequest {
	return FacebookLeadRequest{
		FirstName:         "Maria",
		LastName:          "Santos",
		Email:             "maria.santos@gmail.com",
		Phone:             "(312) 478-9642",
		Address:           "742 Evergreen Terrace",
		City:              "Chicago",
		State:             "IL",
		Zipcode:           "60614",
		InsuranceProperty: "no",
		TurnstileToken:    "tok-abc",
	}
}

func TestContactSupportRequest_Valid(t *testing.T) {
	r := validContact()
	if errs := r.Validate(); !errs.Empty() {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestContactSupportRequest_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ContactSupportRequest)
		field  string
	}{
		{"missing first name", func(r *ContactSupportRequest) { r.FirstName = "" }, "first_name"},
		{"single letter name", func(r *ContactSupportRequest) { r.FirstName = "M" }, "first_name"},
		{"digits in name", func(r *ContactSupportRequest) { r.LastName = "S4ntos" }, "last_name"},
		{"placeholder name", func(r *ContactSupportRequest) { r.FirstName = "Test" }, "first_name"},
		{"bad email", func(r *ContactSupportRequest) { r.Email = "not-an-email" }, "email"},
		{"throwaway email", func(r *ContactSupportRequest) { r.Email = "bob@mailinator.com" }, "email"},
		{"short phone", func(r *ContactSupportRequest) { r.Phone = "(312) 478" }, "phone"},
		{"fake phone", func(r *ContactSupportRequest) { r.Phone = "(555) 867-5309" }, "phone"},
		{"short message", func(r *ContactSupportRequest) { r.Message = "hi" }, "message"},
		{"url in message", func(r *ContactSupportRequest) { r.Message = "Visit https://spam.biz for deals today" }, "message"},
		{"no consent", func(r *ContactSupportRequest) { r.Consent = false }, "consent"},
		{"missing captcha token", func(r *ContactSupportRequest) { r.TurnstileToken = "" }, "cf-turnstile-response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validContact()
			tt.mutate(&r)
			errs := r.Validate()
			if len(errs[tt.field]) == 0 {
				t.Errorf("no error recorded for %q, got %v", tt.field, errs)
			}
		})
	}
}

func TestAppointmentRequest_Valid(t *testing.T) {
	r := validAppointment()
	if errs := r.Validate(); !errs.Empty() {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestAppointmentRequest_OptionalEmail(t *testing.T) {
	r := validAppointment()
	r.Email = ""
	if errs := r.Validate(); !errs.Empty() {
		t.Errorf("empty email must be allowed, got %v", errs)
	}
}

func TestAppointmentRequest_PlaceholderNameAllowed(t *testing.T) {
	// The inspection form leaves placeholder names to the scoring
	// pipeline instead of refusing them outright.
	r := validAppointment()
	r.FirstName = "Test"
	if errs := r.Validate(); !errs.Empty() {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestAppointmentRequest_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppointmentRequest)
		field  string
	}{
		{"missing address", func(r *AppointmentRequest) { r.Address = "" }, "address"},
		{"long state", func(r *AppointmentRequest) { r.State = "Illinois" }, "state"},
		{"alpha zipcode", func(r *AppointmentRequest) { r.Zipcode = "6O614" }, "zipcode"},
		{"short zipcode", func(r *AppointmentRequest) { r.Zipcode = "606" }, "zipcode"},
		{"bad insurance answer", func(r *AppointmentRequest) { r.InsuranceProperty = "maybe" }, "insurance_property"},
		{"short phone", func(r *AppointmentRequest) { r.Phone = "312-4789" }, "phone"},
		{"missing captcha token", func(r *AppointmentRequest) { r.TurnstileToken = "" }, "cf-turnstile-response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validAppointment()
			tt.mutate(&r)
			errs := r.Validate()
			if len(errs[tt.field]) == 0 {
				t.Errorf("no error recorded for %q, got %v", tt.field, errs)
			}
		})
	}
}

func TestFacebookLeadRequest_Valid(t *testing.T) {
	r := validLead()
	if errs := r.Validate(); !errs.Empty() {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestFacebookLeadRequest_Invalid(t *testing.T) {
	lat := 95.0
	tests := []struct {
		name   string
		mutate func(*FacebookLeadRequest)
		field  string
	}{
		{"unformatted phone", func(r *FacebookLeadRequest) { r.Phone = "3124789642" }, "phone"},
		{"fake phone", func(r *FacebookLeadRequest) { r.Phone = "(555) 478-9642" }, "phone"},
		{"fake address", func(r *FacebookLeadRequest) { r.Address = "123 Test Street" }, "address"},
		{"fake city", func(r *FacebookLeadRequest) { r.City = "Faketown" }, "city"},
		{"url in message", func(r *FacebookLeadRequest) { r.Message = "Check out www.spam.biz right now" }, "message"},
		{"unknown lead source", func(r *FacebookLeadRequest) { r.LeadSource = "Billboard" }, "lead_source"},
		{"latitude out of range", func(r *FacebookLeadRequest) { r.Latitude = &lat }, "latitude"},
		{"missing email", func(r *FacebookLeadRequest) { r.Email = "" }, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validLead()
			tt.mutate(&r)
			errs := r.Validate()
			if len(errs[tt.field]) == 0 {
				t.Errorf("no error recorded for %q, got %v", tt.field, errs)
			}
		})
	}
}

func TestFlexBoolUnmarshal(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{`true`, true, false},
		{`false`, false, false},
		{`"true"`, true, false},
		{`"on"`, true, false},
		{`"false"`, false, false},
		{`""`, false, false},
		{`null`, false, false},
		{`42`, false, true},
	}

	for _, tt := range tests {
		var b FlexBool
		err := json.Unmarshal([]byte(tt.in), &b)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Unmarshal(%s): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unmarshal(%s): %v", tt.in, err)
			continue
		}
		if bool(b) != tt.want {
			t.Errorf("Unmarshal(%s) = %v, want %v", tt.in, b, tt.want)
		}
	}
}

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(312) 478-9642", "+13124789642"},
		{"312.478.9642", "+13124789642"},
		{"+44 20 7946 0818", "+442079460818"},
	}
	for _, tt := range tests {
		if got := NormalizeE164(tt.in); got != tt.want {
			t.Errorf("NormalizeE164(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDigitsOnly(t *testing.T) {
	if got := DigitsOnly("(312) 478-9642"); got != "3124789642" {
		t.Errorf("DigitsOnly = %q", got)
	}
}
