package network

import (
	"fmt"
	"strings"
)

// AuthMode is the authentication scheme of a wireless network.
type AuthMode int

const (
	Open AuthMode = iota
	PSK
	Enterprise
)

var authNames = map[AuthMode]string{
	Open:       "OPEN",
	PSK:        "PSK",
	Enterprise: "ENTERPRISE",
}

var keyMgmt = map[AuthMode]string{
	Open:       "NONE",
	PSK:        "WPA-PSK",
	Enterprise: "WPA-EAP",
}

func (m AuthMode) String() string {
	if s, ok := authNames[m]; ok {
		return s
	}
	return fmt.Sprintf("AuthMode(%d)", int(m))
}

// Valid reports whether m is one of the known modes.
func (m AuthMode) Valid() bool {
	_, ok := authNames[m]
	return ok
}

// KeyMgmt returns the wpa_supplicant key_mgmt value for m.
func (m AuthMode) KeyMgmt() string {
	return keyMgmt[m]
}

// NeedsPassphrase reports whether profiles using m must carry a passphrase.
func (m AuthMode) NeedsPassphrase() bool { return m == PSK || m == Enterprise }

// NeedsIdentity reports whether profiles using m must carry an identity.
func (m AuthMode) NeedsIdentity() bool { return m == Enterprise }

// ParseAuthMode accepts mode names (OPEN, PSK, ENTERPRISE), their key_mgmt
// spellings (NONE, WPA-PSK, WPA-EAP) and the aliases "personal" and
// "enterprise". Matching is case-insensitive.
func ParseAuthMode(s string) (AuthMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OPEN", "NONE", "":
		return Open, nil
	case "PSK", "WPA-PSK", "PERSONAL", "WPA-PERSONAL":
		return PSK, nil
	case "ENTERPRISE", "EAP", "WPA-EAP", "WPA-ENTERPRISE":
		return Enterprise, nil
	default:
		return Open, fmt.Errorf("unknown auth mode %q (use open|psk|enterprise)", s)
	}
}

// AuthModeFromKeyMgmt maps a key_mgmt value back to an AuthMode.
func AuthModeFromKeyMgmt(v string) (AuthMode, error) {
	for m, k := range keyMgmt {
		if strings.EqualFold(k, strings.TrimSpace(v)) {
			return m, nil
		}
	}
	return Open, fmt.Errorf("unsupported key_mgmt %q", v)
}

// MarshalText renders the mode name, so YAML and JSON carry "PSK" rather than 1.
func (m AuthMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid auth mode %d", int(m))
	}
	return []byte(strings.ToLower(m.String())), nil
}

// UnmarshalText is the inverse of MarshalText and accepts every ParseAuthMode spelling.
func (m *AuthMode) UnmarshalText(b []byte) error {
	v, err := ParseAuthMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
