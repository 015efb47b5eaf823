package main

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rklebes/wifi-setup/internal/exitcodes"
	"github.com/rklebes/wifi-setup/internal/files"
	"github.com/rklebes/wifi-setup/internal/network"
	ui "github.com/rklebes/wifi-setup/internal/ui"
	"github.com/rklebes/wifi-setup/internal/wpa"
)

const secretMask = "********"

type inspectOptions struct {
	showSecrets bool
	export      string
}

// inspectResult models what `inspect` reports, for text and structured output.
type inspectResult struct {
	File     string         `json:"file" yaml:"file"`
	Country  string         `json:"country,omitempty" yaml:"country,omitempty"`
	Networks []inspectEntry `json:"networks" yaml:"networks"`
}

type inspectEntry struct {
	SSID       string `json:"ssid" yaml:"ssid"`
	ID         string `json:"id" yaml:"id"`
	Auth       string `json:"auth" yaml:"auth"`
	KeyMgmt    string `json:"key_mgmt" yaml:"key_mgmt"`
	Identity   string `json:"identity,omitempty" yaml:"identity,omitempty"`
	Passphrase string `json:"passphrase,omitempty" yaml:"passphrase,omitempty"`
	Priority   int    `json:"priority" yaml:"priority"`
}

func newInspectCmd() *cobra.Command {
	var opts inspectOptions
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "List the networks in a wpa_supplicant.conf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleInspect(newDeps(), args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.showSecrets, "show-secrets", false, "Print passphrases instead of masking them")
	cmd.Flags().StringVar(&opts.export, "export", "", "Also write the networks as a YAML profile file usable by generate")
	return cmd
}

func handleInspect(d *Deps, path string, opts inspectOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return fileErr("supplicant file", path, err)
	}
	defer f.Close()

	conf, err := wpa.Parse(f)
	if err != nil {
		return fileErr("supplicant file", path, err)
	}

	res := inspectResult{File: path, Country: conf.Country, Networks: make([]inspectEntry, 0, len(conf.Profiles))}
	for _, p := range conf.Profiles {
		res.Networks = append(res.Networks, newInspectEntry(p, opts.showSecrets))
	}

	if opts.export != "" {
		if err := exportProfiles(opts.export, conf); err != nil {
			return err
		}
	}

	if handled, err := d.Printer.Structured(res); handled {
		return err
	}
	printInspectText(d.Printer, res)
	if opts.export != "" && !flagQuiet {
		d.Printer.Success(fmt.Sprintf("exported %d network(s) to %s", len(conf.Profiles), opts.export))
	}
	return nil
}

func newInspectEntry(p network.Profile, showSecrets bool) inspectEntry {
	e := inspectEntry{
		SSID:       p.SSID,
		ID:         p.ID,
		Auth:       p.Auth.String(),
		KeyMgmt:    p.Auth.KeyMgmt(),
		Identity:   p.Identity,
		Passphrase: p.Passphrase,
		Priority:   p.Priority,
	}
	if !showSecrets && e.Passphrase != "" {
		e.Passphrase = secretMask
	}
	return e
}

func printInspectText(p ui.Printer, res inspectResult) {
	country := res.Country
	if country == "" {
		country = "(not set)"
	}
	p.KeyValueLine("File", res.File, "dim")
	p.KeyValueLine("Country", country, "blue")
	if len(res.Networks) == 0 {
		p.Info("No networks configured.")
		return
	}
	rows := make([][]string, 0, len(res.Networks))
	for _, n := range res.Networks {
		secret := n.Passphrase
		if secret == secretMask {
			secret = p.Colors.Masked(secret)
		}
		rows = append(rows, []string{n.SSID, n.ID, n.Auth, n.Identity, secret, strconv.Itoa(n.Priority)})
	}
	p.Textf("\n")
	p.Header(fmt.Sprintf("%d network(s)", len(res.Networks)))
	p.Textf("%s", ui.Table(p.Colors, []string{"SSID", "PROFILE", "AUTH", "IDENTITY", "PASSPHRASE", "PRIORITY"}, rows, nil))
}

// exportProfiles writes conf as a profile file. It holds secrets, so it is
// private to the invoking user.
func exportProfiles(path string, conf *wpa.Config) error {
	var buf bytes.Buffer
	if err := network.EncodeFile(&buf, conf.Country, conf.Profiles); err != nil {
		return exitcodes.IOErr("encoding profiles", err)
	}
	if _, err := files.Persist(buf.String(), path, 0o600, ""); err != nil {
		return exitcodes.IOErr(fmt.Sprintf("exporting to %s failed", path), err)
	}
	return nil
}
