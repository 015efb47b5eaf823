package ifupdown

import (
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rklebes/wifi-setup/internal/network"
)

var ifaceDHCP = regexp.MustCompile(`(?m)^iface (\S+) inet dhcp$`)

func TestRender_NoProfiles(t *testing.T) {
	out := Render(nil)
	if !strings.Contains(out, "wpa-conf /etc/wpa_supplicant/wpa_supplicant.conf\n") {
		t.Fatalf("missing wpa-conf line:\n%s", out)
	}
	if strings.Contains(out, "wpa-roam") {
		t.Fatalf("unexpected wpa-roam line:\n%s", out)
	}
	if !strings.HasSuffix(out, "iface wlan0 inet manual\nwpa-conf /etc/wpa_supplicant/wpa_supplicant.conf\n") {
		t.Fatalf("wpa-conf should follow the wlan0 stanza:\n%s", out)
	}
}

func TestRender_Profiles(t *testing.T) {
	a, _ := network.New("HomeNet", network.WithID("home"))
	b, _ := network.New("Office")
	out := Render([]network.Profile{a, b})

	if !strings.Contains(out, "wpa-roam /etc/wpa_supplicant/wpa_supplicant.conf\n") {
		t.Fatalf("missing wpa-roam line:\n%s", out)
	}
	if strings.Contains(out, "wpa-conf") {
		t.Fatalf("unexpected wpa-conf line:\n%s", out)
	}

	var got []string
	for _, m := range ifaceDHCP.FindAllStringSubmatch(out, -1) {
		got = append(got, m[1])
	}
	// eth0 is the only dhcp stanza of the preamble.
	want := []string{"eth0", "home", "Office"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dhcp stanzas mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_Preamble(t *testing.T) {
	out := Render(nil)
	for _, want := range []string{
		"\nsource-directory /etc/network/interfaces.d\n",
		"auto lo\niface lo inet loopback\n",
		"auto eth0\nallow-hotplug eth0\niface eth0 inet dhcp\n",
		"auto wlan0\nallow-hotplug wlan0\niface wlan0 inet manual\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("preamble missing %q", want)
		}
	}
}
