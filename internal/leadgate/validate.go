package leadgate

import (
	"regexp"
	"strings"
)

// Field names used as FieldErrors keys.
const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldPhone = "phone"
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{7,}$`)
)

// Lead is the contact information collected by the gate form.
type Lead struct {
	Name  string
	Email string
	Phone string
}

// Trimmed returns the lead with surrounding whitespace removed from every field.
func (l Lead) Trimmed() Lead {
	return Lead{
		Name:  strings.TrimSpace(l.Name),
		Email: strings.TrimSpace(l.Email),
		Phone: strings.TrimSpace(l.Phone),
	}
}

// FieldErrors maps a field name to its message. Any entry blocks submission.
type FieldErrors map[string]string

// Empty reports whether the lead passed validation.
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Validate checks every field and reports all problems at once.
func Validate(lead Lead) FieldErrors {
	lead = lead.Trimmed()
	errs := FieldErrors{}
	if lead.Name == "" {
		errs[FieldName] = "Name is required."
	}
	switch {
	case lead.Email == "":
		errs[FieldEmail] = "Email is required."
	case !emailPattern.MatchString(lead.Email):
		errs[FieldEmail] = "Email address is invalid."
	}
	switch {
	case lead.Phone == "":
		errs[FieldPhone] = "Phone number is required."
	case !phonePattern.MatchString(lead.Phone):
		errs[FieldPhone] = "Phone number is invalid."
	}
	return errs
}
