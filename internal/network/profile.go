package network

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	MaxSSIDLength       = 32
	MinPSKLength        = 8
	MaxPSKLength        = 63
	MaxPassphraseLength = 255
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("ssid", isSSID)
	_ = validate.RegisterValidation("token", isToken)
	_ = validate.RegisterValidation("notreserved", isNotReserved)
	_ = validate.RegisterValidation("secret", isSecret)
	validate.RegisterStructValidation(authRules, Profile{})
}

// Profile is one wireless network to configure. Build it with New so the
// per-mode invariants hold; a Profile is passed and stored by value.
type Profile struct {
	SSID       string   `json:"ssid" yaml:"ssid" validate:"required,ssid,token"`
	ID         string   `json:"id" yaml:"id" validate:"required,max=64,token,notreserved"`
	Auth       AuthMode `json:"auth" yaml:"auth"`
	Passphrase string   `json:"passphrase,omitempty" yaml:"passphrase,omitempty" validate:"omitempty,max=255,secret"`
	Identity   string   `json:"identity,omitempty" yaml:"identity,omitempty" validate:"omitempty,max=255,secret"`
	Priority   int      `json:"priority" yaml:"priority"`
}

// Option customises a Profile under construction.
type Option func(*Profile)

// WithID sets the profile identifier (id_str). Empty keeps the SSID default.
func WithID(id string) Option {
	return func(p *Profile) {
		if id != "" {
			p.ID = id
		}
	}
}

// WithPSK selects WPA personal authentication.
func WithPSK(passphrase string) Option {
	return func(p *Profile) {
		p.Auth = PSK
		p.Passphrase = passphrase
	}
}

// WithEnterprise selects WPA enterprise (PEAP/MSCHAPv2) authentication.
func WithEnterprise(identity, password string) Option {
	return func(p *Profile) {
		p.Auth = Enterprise
		p.Identity = identity
		p.Passphrase = password
	}
}

// WithAuth sets the mode and credentials together, for callers that hold
// them as separate values (prompts, files). Unused credentials must be empty.
func WithAuth(mode AuthMode, passphrase, identity string) Option {
	return func(p *Profile) {
		p.Auth = mode
		p.Passphrase = passphrase
		p.Identity = identity
	}
}

// WithPriority sets the connection priority. Higher wins.
func WithPriority(n int) Option {
	return func(p *Profile) { p.Priority = n }
}

// New builds and validates a profile. The default is an open network whose
// ID equals its SSID with priority 0.
func New(ssid string, opts ...Option) (Profile, error) {
	p := Profile{SSID: ssid, ID: ssid, Auth: Open}
	for _, o := range opts {
		o(&p)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks the field rules and the auth mode invariants.
func (p Profile) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Reason: reason(fe)})
	}
	return out
}

// ValidateField checks a single candidate value against the rules of the
// named Profile field. The wizard uses it to re-prompt field by field.
func ValidateField(field, value string) error {
	var tag string
	switch field {
	case "SSID":
		tag = "required,ssid,token"
	case "ID":
		tag = "required,max=64,token,notreserved"
	case "Passphrase", "Identity":
		tag = "required,max=255,secret"
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	if err := validate.Var(value, tag); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &ValidationError{Fields: []FieldError{{Field: field, Reason: reason(verrs[0])}}}
		}
		return err
	}
	return nil
}

// ValidatePSK checks the WPA personal passphrase length rule.
func ValidatePSK(passphrase string) error {
	if n := len(passphrase); n < MinPSKLength || n > MaxPSKLength {
		return &ValidationError{Fields: []FieldError{{
			Field:  "Passphrase",
			Reason: fmt.Sprintf("must be %d to %d characters for WPA personal", MinPSKLength, MaxPSKLength),
		}}}
	}
	for _, r := range passphrase {
		if r < 0x20 || r > 0x7e {
			return &ValidationError{Fields: []FieldError{{Field: "Passphrase", Reason: "must be printable ASCII for WPA personal"}}}
		}
	}
	return nil
}

// authRules enforces that credentials are present if and only if the mode needs them.
func authRules(sl validator.StructLevel) {
	p := sl.Current().Interface().(Profile)
	if !p.Auth.Valid() {
		sl.ReportError(p.Auth, "Auth", "Auth", "authmode", "")
		return
	}
	switch {
	case p.Auth.NeedsPassphrase() && p.Passphrase == "":
		sl.ReportError(p.Passphrase, "Passphrase", "Passphrase", "required_for_mode", p.Auth.String())
	case !p.Auth.NeedsPassphrase() && p.Passphrase != "":
		sl.ReportError(p.Passphrase, "Passphrase", "Passphrase", "excluded_for_mode", p.Auth.String())
	case p.Auth == PSK && ValidatePSK(p.Passphrase) != nil:
		sl.ReportError(p.Passphrase, "Passphrase", "Passphrase", "psk", "")
	}
	switch {
	case p.Auth.NeedsIdentity() && p.Identity == "":
		sl.ReportError(p.Identity, "Identity", "Identity", "required_for_mode", p.Auth.String())
	case !p.Auth.NeedsIdentity() && p.Identity != "":
		sl.ReportError(p.Identity, "Identity", "Identity", "excluded_for_mode", p.Auth.String())
	}
}

// ReservedIDs are the interface names the interfaces preamble already
// declares; a profile named after one would redefine it.
var ReservedIDs = []string{"lo", "eth0", "wlan0"}

// IsReservedID reports whether id collides with a built-in interface.
func IsReservedID(id string) bool {
	for _, r := range ReservedIDs {
		if id == r {
			return true
		}
	}
	return false
}

// isSSID limits the SSID to MaxSSIDLength bytes of valid UTF-8, which is
// what wpa_supplicant accepts in a quoted ssid.
func isSSID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return utf8.ValidString(s) && len(s) <= MaxSSIDLength
}

func isNotReserved(fl validator.FieldLevel) bool {
	return !IsReservedID(fl.Field().String())
}

// isToken accepts values that can be written inside a quoted
// wpa_supplicant string and used as an ifupdown logical name.
func isToken(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r == '"' || r == '\\' {
			return false
		}
	}
	return true
}

func isSecret(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) || r == '"' {
			return false
		}
	}
	return true
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "ssid":
		return fmt.Sprintf("must be valid UTF-8 of at most %d bytes", MaxSSIDLength)
	case "token":
		return "must be valid UTF-8 without whitespace, quotes, backslashes or control characters"
	case "secret":
		return "must be valid UTF-8 without quotes or control characters"
	case "notreserved":
		return fmt.Sprintf("must not be one of %s", strings.Join(ReservedIDs, ", "))
	case "required_for_mode":
		return fmt.Sprintf("is required for %s networks", fe.Param())
	case "excluded_for_mode":
		return fmt.Sprintf("must be empty for %s networks", fe.Param())
	case "psk":
		return fmt.Sprintf("must be %d to %d printable ASCII characters for WPA personal", MinPSKLength, MaxPSKLength)
	case "authmode":
		return "must be OPEN, PSK or ENTERPRISE"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// FieldError describes one invalid Profile field.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError collects every invalid field of a profile.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, strings.ToLower(f.Field)+" "+f.Reason)
	}
	return "invalid network profile: " + strings.Join(parts, "; ")
}

// Has reports whether field is among the failures.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
