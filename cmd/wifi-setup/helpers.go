package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rklebes/wifi-setup/internal/config"
	"github.com/rklebes/wifi-setup/internal/exitcodes"
	"github.com/rklebes/wifi-setup/internal/files"
	"github.com/rklebes/wifi-setup/internal/ifupdown"
	"github.com/rklebes/wifi-setup/internal/network"
	ui "github.com/rklebes/wifi-setup/internal/ui"
	"github.com/rklebes/wifi-setup/internal/wizard"
	"github.com/rklebes/wifi-setup/internal/wpa"
)

// renderDocuments renders both configuration files for profiles.
func renderDocuments(cfg config.Config, profiles []network.Profile) []files.Document {
	return []files.Document{
		{Name: cfg.SupplicantName, Contents: wpa.Render(profiles, cfg.Country), Mode: cfg.SupplicantMode},
		{Name: cfg.InterfacesName, Contents: ifupdown.Render(profiles), Mode: cfg.InterfacesMode},
	}
}

// savedFile is the structured report for one persisted document.
type savedFile struct {
	Path        string `json:"path" yaml:"path"`
	Status      string `json:"status" yaml:"status"`
	Mode        string `json:"mode" yaml:"mode"`
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`
}

// persistAll writes docs in order and stops at the first failure.
func persistAll(d *Deps, docs []files.Document) error {
	saved := make([]savedFile, 0, len(docs))
	for _, doc := range docs {
		res, err := d.Store.Persist(doc)
		if err != nil {
			return exitcodes.IOErr(fmt.Sprintf("saving %s failed", doc.Name), err)
		}
		status := "written"
		if !res.Changed {
			status = "unchanged"
		}
		saved = append(saved, savedFile{
			Path:        res.Path,
			Status:      status,
			Mode:        fmt.Sprintf("%#o", doc.Mode),
			Fingerprint: res.Fingerprint,
		})
	}

	if handled, err := d.Printer.Structured(map[string]any{"saved": true, "files": saved}); handled {
		return err
	}
	if flagQuiet {
		return nil
	}
	for _, s := range saved {
		d.Printer.Status(s.Status, fmt.Sprintf("%s %s (mode %s, xxhash %s)", s.Status, s.Path, s.Mode, s.Fingerprint))
	}
	return nil
}

// reportNotSaved tells the user nothing was written. Structured formats get
// the same shape persistAll reports, with no files.
func reportNotSaved(d *Deps, networks int, text string) error {
	if handled, err := d.Printer.Structured(map[string]any{"saved": false, "networks": networks, "files": []savedFile{}}); handled {
		return err
	}
	if networks == 0 {
		d.Printer.Textf("%s\n", text)
	} else {
		d.Printer.Info(text)
	}
	return nil
}

// wizardPrinter is where menus and re-prompt warnings go. With json or yaml
// output they move to the prompt stream so stdout stays parseable.
func wizardPrinter(d *Deps) ui.Printer {
	if d.Printer.Format() == "text" || d.Prompts == nil {
		return d.Printer
	}
	return d.Printer.WithOutput(d.Prompts)
}

// confirm asks question unless --yes was given.
func confirm(d *Deps, w *wizard.Wizard, question string) (bool, error) {
	if d.AssumeYes {
		return true, nil
	}
	ok, err := w.Confirm(question)
	if err != nil {
		return false, promptErr(err)
	}
	return ok, nil
}

// promptErr maps a prompt failure to the no-input exit code.
func promptErr(err error) error {
	if errors.Is(err, wizard.ErrNoInput) {
		return exitcodes.NoInputErr("input ended before setup finished", err)
	}
	return err
}

// fileErr classifies a failure to load a user-supplied file: unreadable
// files are I/O errors, bad contents are invalid input.
func fileErr(what, path string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return exitcodes.IOErr(fmt.Sprintf("reading %s %s", what, path), err)
	}
	return exitcodes.InvalidInputErr(fmt.Sprintf("invalid %s %s", what, path), err)
}

// persistFailure explains a failed save with likely causes and remedies.
func persistFailure(perr *files.PersistError) ui.ErrorMessage {
	msg := ui.ErrorMessage{Problem: perr.Error()}
	switch {
	case errors.Is(perr, fs.ErrPermission):
		msg.Causes = []string{"wifi-setup is not running as root", "the output directory is not writable"}
		msg.Actions = []string{"Run with sudo", "Write elsewhere with --out-dir and install the files yourself"}
	case perr.Step == files.StepLookup:
		msg.Causes = []string{"the user or group in --owner does not exist on this system"}
		msg.Actions = []string{"Pass an existing owner, e.g. --owner root:", "Skip chown with --owner \"\""}
	case errors.Is(perr, fs.ErrNotExist):
		msg.Causes = []string{"the output directory does not exist"}
		msg.Actions = []string{"Create it first or choose another --out-dir"}
	}
	if perr.Step == files.StepChown && os.Geteuid() != 0 {
		msg.Hints = []string{"Changing ownership needs root; use --owner \"\" to leave ownership alone"}
	}
	return msg
}
