package config

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds the settings shared by every command.
type Config struct {
	// Country is the wpa_supplicant regulatory domain.
	Country string `validate:"required,iso3166_1_alpha2"`
	// OutDir is where generated files are written.
	OutDir string `validate:"required"`
	// Owner is a chown(1) owner spec applied to written files; empty skips chown.
	Owner string

	SupplicantName string `validate:"required,excludes=/"`
	InterfacesName string `validate:"required,excludes=/"`
	SupplicantMode fs.FileMode
	InterfacesMode fs.FileMode
}

// Defaults mirrors a stock Raspbian install: US domain, files written to
// the working directory for the operator to install, owned by root.
func Defaults() Config {
	return Config{
		Country:        "US",
		OutDir:         ".",
		Owner:          "root:",
		SupplicantName: "wpa_supplicant.conf",
		InterfacesName: "interfaces",
		SupplicantMode: 0o600,
		InterfacesMode: 0o644,
	}
}

// Load returns the defaults with WIFI_SETUP_* environment overrides applied.
// Flags are applied on top by the command layer.
func Load() Config {
	cfg := Defaults()
	if v := os.Getenv("WIFI_SETUP_COUNTRY"); v != "" {
		cfg.Country = v
	}
	if v := os.Getenv("WIFI_SETUP_OUT_DIR"); v != "" {
		cfg.OutDir = v
	}
	// An explicitly empty WIFI_SETUP_OWNER disables chown.
	if v, ok := os.LookupEnv("WIFI_SETUP_OWNER"); ok {
		cfg.Owner = v
	}
	cfg.Country = strings.ToUpper(strings.TrimSpace(cfg.Country))
	return cfg
}

var validate = validator.New()

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Field() == "Country" {
				return fmt.Errorf("invalid country code %q (want ISO 3166-1 alpha-2, e.g. US, GB, DE)", c.Country)
			}
			return fmt.Errorf("invalid config %s: failed %q check", strings.ToLower(fe.Field()), fe.Tag())
		}
		return err
	}
	if c.SupplicantMode&0o077 != 0 {
		return fmt.Errorf("supplicant file mode %#o exposes secrets to other users", c.SupplicantMode)
	}
	return nil
}
