package main

import (
	"fmt"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rklebes/wifi-setup/internal/exitcodes"
	"github.com/rklebes/wifi-setup/internal/files"
	"github.com/rklebes/wifi-setup/internal/network"
)

type generateOptions struct {
	profiles string
	stdout   bool
	dryRun   bool
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render configuration files from a YAML profile list",
		Long: `Render wpa_supplicant.conf and interfaces without prompting.

The profile file lists networks:

  country: US
  networks:
    - ssid: HomeNet
      id: home
      auth: psk
      passphrase: "correct horse"
      priority: 10

The file's country is used unless --country is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleGenerate(newDeps(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.profiles, "profiles", "f", "", "YAML profile file")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "Print the files instead of saving them")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Report what would be written without writing")
	_ = cmd.MarkFlagRequired("profiles")
	_ = cmd.MarkFlagFilename("profiles", "yaml", "yml")
	return cmd
}

func handleGenerate(d *Deps, opts generateOptions) error {
	if opts.profiles == "" {
		return exitcodes.InvalidArgsError("--profiles is required")
	}
	if opts.stdout && opts.dryRun {
		return exitcodes.InvalidArgsError("--stdout and --dry-run cannot be combined")
	}

	country, profiles, err := network.LoadFile(opts.profiles)
	if err != nil {
		return fileErr("profile file", opts.profiles, err)
	}
	fromFile := country != "" && flagCountry == ""
	if fromFile {
		d.Cfg.Country = strings.ToUpper(strings.TrimSpace(country))
	}
	if err := d.Cfg.Validate(); err != nil {
		if fromFile {
			return exitcodes.InvalidInputErr(fmt.Sprintf("invalid profile file %s", opts.profiles), err)
		}
		return exitcodes.InvalidArgsError(err.Error())
	}
	log.WithFields(log.Fields{"file": opts.profiles, "networks": len(profiles), "country": d.Cfg.Country}).Debug("profiles loaded")

	docs := renderDocuments(d.Cfg, profiles)
	switch {
	case opts.stdout:
		p := d.Printer.WithOutput(d.Output)
		for _, doc := range docs {
			p.Section(doc.Name)
			p.Textf("%s", doc.Contents)
		}
		return nil
	case opts.dryRun:
		return reportDryRun(d, docs)
	}
	return persistAll(d, docs)
}

type plannedFile struct {
	Path        string `json:"path" yaml:"path"`
	Mode        string `json:"mode" yaml:"mode"`
	Owner       string `json:"owner" yaml:"owner"`
	Bytes       int    `json:"bytes" yaml:"bytes"`
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`
}

func reportDryRun(d *Deps, docs []files.Document) error {
	planned := make([]plannedFile, 0, len(docs))
	for _, doc := range docs {
		planned = append(planned, plannedFile{
			Path:        filepath.Join(d.Store.Dir(), doc.Name),
			Mode:        fmt.Sprintf("%#o", doc.Mode),
			Owner:       d.Cfg.Owner,
			Bytes:       len(doc.Contents),
			Fingerprint: files.Fingerprint(doc.Contents),
		})
	}
	if handled, err := d.Printer.Structured(map[string]any{"dry_run": true, "files": planned}); handled {
		return err
	}
	for _, p := range planned {
		owner := p.Owner
		if owner == "" {
			owner = "unchanged"
		}
		d.Printer.Info(fmt.Sprintf("would write %s (%d bytes, mode %s, owner %s, xxhash %s)", p.Path, p.Bytes, p.Mode, owner, p.Fingerprint))
	}
	return nil
}
