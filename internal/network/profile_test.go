package network

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_OpenDefaults(t *testing.T) {
	p, err := New("CoffeeShop")
	require.NoError(t, err)
	assert.Equal(t, "CoffeeShop", p.ID)
	assert.Equal(t, Open, p.Auth)
	assert.Equal(t, 0, p.Priority)
	assert.Empty(t, p.Passphrase)
	assert.Empty(t, p.Identity)
}

func TestNew_Options(t *testing.T) {
	p, err := New("HomeNet", WithID("home"), WithPSK("hunter2hunter2"), WithPriority(-3))
	require.NoError(t, err)
	assert.Equal(t, "home", p.ID)
	assert.Equal(t, PSK, p.Auth)
	assert.Equal(t, "hunter2hunter2", p.Passphrase)
	assert.Equal(t, -3, p.Priority)

	p, err = New("campus", WithEnterprise("jdoe@example.edu", "s3cret"))
	require.NoError(t, err)
	assert.Equal(t, Enterprise, p.Auth)
	assert.Equal(t, "jdoe@example.edu", p.Identity)
	assert.Equal(t, "s3cret", p.Passphrase)
}

func TestNew_EmptyIDKeepsSSID(t *testing.T) {
	p, err := New("lab", WithID(""))
	require.NoError(t, err)
	assert.Equal(t, "lab", p.ID)
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		ssid  string
		opts  []Option
		field string
	}{
		{"empty ssid", "", nil, "SSID"},
		{"ssid with space", "my net", nil, "SSID"},
		{"ssid with quote", `a"b`, nil, "SSID"},
		{"ssid too long", strings.Repeat("x", 33), nil, "SSID"},
		{"ssid over 32 bytes in 17 runes", strings.Repeat("é", 17), nil, "SSID"},
		{"ssid invalid utf8", "ab\xffcd", nil, "SSID"},
		{"id reserved by preamble", "net", []Option{WithID("wlan0")}, "ID"},
		{"ssid doubling as reserved id", "eth0", nil, "ID"},
		{"identity invalid utf8", "net", []Option{WithEnterprise("me\xff", "pw")}, "Identity"},
		{"id with tab", "net", []Option{WithID("a\tb")}, "ID"},
		{"psk without passphrase", "net", []Option{WithPSK("")}, "Passphrase"},
		{"psk too short", "net", []Option{WithPSK("short")}, "Passphrase"},
		{"psk too long", "net", []Option{WithPSK(strings.Repeat("p", 64))}, "Passphrase"},
		{"enterprise without identity", "net", []Option{WithEnterprise("", "pw")}, "Identity"},
		{"enterprise without password", "net", []Option{WithEnterprise("me", "")}, "Passphrase"},
		{"open with passphrase", "net", []Option{WithAuth(Open, "secret", "")}, "Passphrase"},
		{"psk with identity", "net", []Option{WithAuth(PSK, "longenough", "me")}, "Identity"},
		{"unknown mode", "net", []Option{WithAuth(AuthMode(9), "", "")}, "Auth"},
		{"passphrase with newline", "net", []Option{WithEnterprise("me", "a\nb")}, "Passphrase"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.ssid, tt.opts...)
			require.Error(t, err)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "want *ValidationError, got %T", err)
			assert.True(t, verr.Has(tt.field), "expected %s in %v", tt.field, verr)
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	_, err := New("", WithPSK(""))
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "invalid network profile")
	assert.Contains(t, msg, "ssid is required")
	assert.Contains(t, msg, "passphrase is required for PSK networks")
}

func TestValidateField(t *testing.T) {
	assert.NoError(t, ValidateField("SSID", "Guest-5G"))
	assert.Error(t, ValidateField("SSID", ""))
	assert.Error(t, ValidateField("ID", "two words"))
	assert.NoError(t, ValidateField("Identity", "user name with spaces"))
	assert.Error(t, ValidateField("Passphrase", `quote"inside`))
	assert.Error(t, ValidateField("Priority", "1"))
	assert.NoError(t, ValidateField("SSID", strings.Repeat("é", 16)))
	assert.Error(t, ValidateField("SSID", strings.Repeat("é", 17)))
	assert.Error(t, ValidateField("SSID", "ab\xffcd"))
	for _, id := range ReservedIDs {
		assert.Error(t, ValidateField("ID", id), id)
	}
	assert.NoError(t, ValidateField("ID", "wlan1"))
}

func TestValidatePSK(t *testing.T) {
	assert.NoError(t, ValidatePSK("12345678"))
	assert.NoError(t, ValidatePSK(strings.Repeat("a", 63)))
	assert.Error(t, ValidatePSK("1234567"))
	assert.Error(t, ValidatePSK("pässwörter"))
}

func TestParseAuthMode(t *testing.T) {
	tests := []struct {
		in   string
		want AuthMode
	}{
		{"open", Open},
		{"NONE", Open},
		{"", Open},
		{"psk", PSK},
		{"WPA-PSK", PSK},
		{"Personal", PSK},
		{"enterprise", Enterprise},
		{"wpa-eap", Enterprise},
	}
	for _, tt := range tests {
		got, err := ParseAuthMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := ParseAuthMode("wep")
	assert.Error(t, err)
}

func TestAuthMode_KeyMgmt(t *testing.T) {
	assert.Equal(t, "NONE", Open.KeyMgmt())
	assert.Equal(t, "WPA-PSK", PSK.KeyMgmt())
	assert.Equal(t, "WPA-EAP", Enterprise.KeyMgmt())

	for _, m := range []AuthMode{Open, PSK, Enterprise} {
		back, err := AuthModeFromKeyMgmt(m.KeyMgmt())
		require.NoError(t, err)
		assert.Equal(t, m, back)
	}
	_, err := AuthModeFromKeyMgmt("SAE")
	assert.Error(t, err)
}

func TestAuthMode_Text(t *testing.T) {
	b, err := PSK.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "psk", string(b))

	var m AuthMode
	require.NoError(t, m.UnmarshalText([]byte("ENTERPRISE")))
	assert.Equal(t, Enterprise, m)
	assert.Error(t, m.UnmarshalText([]byte("wep")))

	_, err = AuthMode(7).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "AuthMode(7)", AuthMode(7).String())
}
