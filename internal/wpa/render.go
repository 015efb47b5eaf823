// Package wpa renders and parses wpa_supplicant.conf documents.
package wpa

import (
	"fmt"
	"strings"

	"github.com/rklebes/wifi-setup/internal/network"
)

const (
	// DefaultCountry is used when no regulatory domain is configured.
	DefaultCountry = "US"

	ctrlInterface = "DIR=/var/run/wpa_supplicant GROUP=netdev"
	eapMethod     = "PEAP"
	phase1        = "peaplabel=auto peapver=0"
	phase2        = "MSCHAPV2"
	indent        = "    "
)

// Render produces a wpa_supplicant.conf with one network block per profile,
// in input order. An empty country falls back to DefaultCountry.
func Render(profiles []network.Profile, country string) string {
	if country == "" {
		country = DefaultCountry
	}
	var b strings.Builder
	fmt.Fprintf(&b, "country=%s\n", country)
	fmt.Fprintf(&b, "ctrl_interface=%s\n", ctrlInterface)
	b.WriteString("update_config=1\n")
	for _, p := range profiles {
		b.WriteString("\n")
		writeBlock(&b, p)
	}
	return b.String()
}

func writeBlock(b *strings.Builder, p network.Profile) {
	b.WriteString("network={\n")
	line(b, "ssid", quote(p.SSID))
	line(b, "scan_ssid", "1")
	line(b, "key_mgmt", p.Auth.KeyMgmt())
	switch p.Auth {
	case network.Enterprise:
		line(b, "eap", eapMethod)
		line(b, "identity", quote(p.Identity))
		line(b, "password", quote(p.Passphrase))
		line(b, "phase1", quote(phase1))
		line(b, "phase2", quote(phase2))
	case network.PSK:
		line(b, "psk", quote(p.Passphrase))
	}
	line(b, "id_str", quote(p.ID))
	line(b, "priority", fmt.Sprintf("%d", p.Priority))
	b.WriteString("}\n")
}

func line(b *strings.Builder, key, value string) {
	b.WriteString(indent)
	b.WriteString(key)
	b.WriteString("=")
	b.WriteString(value)
	b.WriteString("\n")
}

func quote(s string) string { return `"` + s + `"` }
