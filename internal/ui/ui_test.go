package ui

import (
	"bytes"
	"strings"
	"testing"
)

func plainColors() *ColorConfig {
	return &ColorConfig{Enabled: false, EmojiEnabled: false, Theme: DefaultTheme()}
}

func TestPrinter_WritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	p := Printer{format: "text", Colors: plainColors()}.WithOutput(&buf)

	p.Success("wrote wpa_supplicant.conf")
	p.Warn("careful")
	p.Status("unchanged", "interfaces")

	want := "[OK] wrote wpa_supplicant.conf\n[WARN] careful\n[--] interfaces\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrinter_Structured(t *testing.T) {
	tests := []struct {
		format  string
		handled bool
		want    string
	}{
		{"json", true, "{\n  \"ssid\": \"home\"\n}\n"},
		{"yaml", true, "ssid: home\n"},
		{"text", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			p := Printer{format: tt.format, Colors: plainColors()}.WithOutput(&buf)
			handled, err := p.Structured(map[string]string{"ssid": "home"})
			if err != nil {
				t.Fatal(err)
			}
			if handled != tt.handled {
				t.Errorf("handled = %v, want %v", handled, tt.handled)
			}
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestTable_AlignsAndTruncates(t *testing.T) {
	out := Table(plainColors(), []string{"SSID", "AUTH"}, [][]string{
		{"home", "psk"},
		{strings.Repeat("x", 60), "open"},
	}, nil)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[2], "home  ") {
		t.Errorf("row not padded: %q", lines[2])
	}
	if !strings.Contains(lines[3], "…") {
		t.Errorf("long cell not truncated: %q", lines[3])
	}
	if visibleLen(lines[2]) != visibleLen(lines[3]) {
		t.Errorf("rows differ in width:\n%s", out)
	}
}

func TestPrinter_ErrorAndSection(t *testing.T) {
	var buf bytes.Buffer
	p := Printer{format: "text", Colors: plainColors()}.WithOutput(&buf)

	p.Error("chown failed")
	p.Header("2 network(s)")
	p.Section("interfaces")

	want := "[ERR] chown failed\n 2 network(s) \n\ninterfaces\n" + strings.Repeat("─", 40) + "\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestColorConfig_PromptFlagMasked(t *testing.T) {
	c := &ColorConfig{Enabled: true, Theme: DefaultTheme()}
	if got := c.Prompt("SSID?"); got != Bold+BrightMagenta+"SSID?"+Reset {
		t.Errorf("Prompt() = %q", got)
	}
	if got := c.Masked("****"); got != Dim+"****"+Reset {
		t.Errorf("Masked() = %q", got)
	}
	if got := plainColors().FormatFlagAligned("--yes", "no questions", 8); got != "  --yes   no questions" {
		t.Errorf("FormatFlagAligned() = %q", got)
	}
	if got := c.FormatFlagAligned("-o, --output", "format", 4); !strings.Contains(got, BrightYellow+"-o, --output"+Reset+" ") {
		t.Errorf("FormatFlagAligned() should color the flag: %q", got)
	}
}

func TestTable_StyledCellsKeepWidth(t *testing.T) {
	c := &ColorConfig{Enabled: true, Theme: DefaultTheme()}
	out := Table(c, []string{"PASSPHRASE", "ID"}, [][]string{
		{c.Masked("********"), "home"},
		{"plain", "work"},
	}, nil)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if strings.Contains(out, "…") {
		t.Errorf("styled cell within width must not be truncated:\n%s", out)
	}
	if visibleLen(lines[2]) != visibleLen(lines[3]) {
		t.Errorf("rows differ in width:\n%s", out)
	}
}

func TestErrorMessage_Format(t *testing.T) {
	msg := ErrorMessage{
		Problem: "cannot chown wpa_supplicant.conf",
		Causes:  []string{"not running as root"},
		Actions: []string{"rerun with sudo"},
	}
	got := msg.Format(plainColors())
	for _, want := range []string{"[ERR] Error", "Problem: cannot chown", "Possible causes:", "   • not running as root", "Try:", "   → rerun with sudo"} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Hints") {
		t.Errorf("empty hints should be omitted:\n%s", got)
	}
}
