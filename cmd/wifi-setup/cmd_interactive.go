package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/rklebes/wifi-setup/internal/exitcodes"
	"github.com/rklebes/wifi-setup/internal/wizard"
)

// handleInteractive collects networks, optionally shows the generated
// files and saves them when the user agrees.
func handleInteractive(d *Deps) error {
	if err := validCfg(d.Cfg); err != nil {
		return err
	}
	w := wizard.New(d.Prompter, wizardPrinter(d))

	profiles, err := w.Collect()
	if err != nil {
		return promptErr(err)
	}
	if len(profiles) == 0 {
		return reportNotSaved(d, 0, "Bye!")
	}
	log.WithField("networks", len(profiles)).Debug("rendering configuration")
	docs := renderDocuments(d.Cfg, profiles)

	show, err := confirm(d, w, "Would you like to see the new configuration files?")
	if err != nil {
		return err
	}
	if show {
		if err := d.Preview(docs); err != nil {
			return exitcodes.IOErr("showing configuration files", err)
		}
	}

	save, err := confirm(d, w, "Would you like to save the new configuration files?")
	if err != nil {
		return err
	}
	if !save {
		return reportNotSaved(d, len(profiles), "Configuration files were not saved.")
	}
	return persistAll(d, docs)
}
