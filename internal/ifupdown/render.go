// Package ifupdown renders /etc/network/interfaces for a wpa_supplicant
// managed wireless interface.
package ifupdown

import (
	"strings"

	"github.com/rklebes/wifi-setup/internal/network"
)

// SupplicantPath is where the generated wpa_supplicant.conf is expected to
// be installed; the interfaces file references it by this path.
const SupplicantPath = "/etc/wpa_supplicant/wpa_supplicant.conf"

const preamble = `# interfaces(5) file used by ifup(8) and ifdown(8)

# Please note that this file is written to be used with dhcpcd
# For static IP, consult /etc/dhcpcd.conf and 'man dhcpcd.conf'

# Include files from /etc/network/interfaces.d:
source-directory /etc/network/interfaces.d

auto lo
iface lo inet loopback

auto eth0
allow-hotplug eth0
iface eth0 inet dhcp

auto wlan0
allow-hotplug wlan0
iface wlan0 inet manual
`

// Render returns the interfaces document. With profiles, wlan0 roams
// between them and each id_str gets a dhcp logical interface, in input
// order. Without profiles, wlan0 uses the supplicant file directly.
func Render(profiles []network.Profile) string {
	var b strings.Builder
	b.WriteString(preamble)
	if len(profiles) == 0 {
		b.WriteString("wpa-conf " + SupplicantPath + "\n")
		return b.String()
	}
	b.WriteString("wpa-roam " + SupplicantPath + "\n")
	for _, p := range profiles {
		b.WriteString("iface " + p.ID + " inet dhcp\n")
	}
	return b.String()
}
