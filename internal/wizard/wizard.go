// Package wizard asks for wireless network profiles one field at a time.
package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/rklebes/wifi-setup/internal/network"
	"github.com/rklebes/wifi-setup/internal/ui"
)

// Prompter abstracts interactive terminal I/O for testability.
type Prompter interface {
	// ReadLine displays the prompt and reads a line of input.
	ReadLine(prompt string) (string, error)
	// ReadSecret is ReadLine without echo when the terminal allows it.
	ReadSecret(prompt string) (string, error)
}

// ErrNoInput is returned when input ends before a question is answered.
var ErrNoInput = errors.New("no more input")

const (
	firstQuestion   = "Would you like to add a wireless network?"
	anotherQuestion = "Would you like to add another network?"
)

// Wizard drives the question sequence. Menus and re-prompt reasons go to
// the printer; answers come from the prompter.
type Wizard struct {
	p   Prompter
	out ui.Printer
}

func New(p Prompter, out ui.Printer) *Wizard {
	return &Wizard{p: p, out: out}
}

// Collect asks whether to add a network and keeps collecting profiles until
// the user declines another one. Declining the first question returns an
// empty slice and a nil error.
func (w *Wizard) Collect() ([]network.Profile, error) {
	ok, err := w.Confirm(firstQuestion)
	if err != nil || !ok {
		return nil, err
	}
	var profiles []network.Profile
	taken := make(map[string]bool)
	for {
		p, err := w.profile(taken)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
		taken[p.ID] = true
		log.WithFields(log.Fields{"ssid": p.SSID, "id": p.ID, "auth": p.Auth}).Debug("network profile collected")

		more, err := w.Confirm(anotherQuestion)
		if err != nil {
			return nil, err
		}
		if !more {
			return profiles, nil
		}
	}
}

// Confirm asks a yes/no question until the answer is recognised.
func (w *Wizard) Confirm(question string) (bool, error) {
	for {
		answer, err := w.read(question + " (Y/N)\n> ")
		if err != nil {
			return false, err
		}
		if yes, ok := ParseAnswer(answer); ok {
			return yes, nil
		}
		w.out.Warn("Please answer yes or no.")
	}
}

// ParseAnswer maps y/yes and n/no, in any case, to true and false. ok is
// false for anything else.
func ParseAnswer(s string) (yes, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

// Profile asks for every field of one network. A combination rejected by
// network.New starts the profile over.
func (w *Wizard) Profile() (network.Profile, error) {
	return w.profile(nil)
}

// profile is Profile with the IDs already used in this session, which the
// profile name must not repeat.
func (w *Wizard) profile(taken map[string]bool) (network.Profile, error) {
	for {
		ssid, err := w.field("SSID", "Please enter the desired SSID (spaces not supported)\n> ")
		if err != nil {
			return network.Profile{}, err
		}
		mode, err := w.authMode()
		if err != nil {
			return network.Profile{}, err
		}
		id, err := w.profileName(ssid, taken)
		if err != nil {
			return network.Profile{}, err
		}
		var identity, passphrase string
		if mode.NeedsIdentity() {
			identity, err = w.field("Identity", "Please input your username. This will usually be either your account username or the full email address associated with your account\n> ")
			if err != nil {
				return network.Profile{}, err
			}
		}
		if mode.NeedsPassphrase() {
			passphrase, err = w.passphrase(mode)
			if err != nil {
				return network.Profile{}, err
			}
		}
		priority, err := w.priority()
		if err != nil {
			return network.Profile{}, err
		}

		p, err := network.New(ssid,
			network.WithID(id),
			network.WithAuth(mode, passphrase, identity),
			network.WithPriority(priority),
		)
		if err == nil {
			return p, nil
		}
		w.out.Warn(describe(err))
		w.out.Warn("Let's start this network over.")
	}
}

func (w *Wizard) authMode() (network.AuthMode, error) {
	w.out.Textf("Network encryption is supported:\n")
	for {
		w.out.Textf("1) Non-secure\n2) WPA Personal (such as a home router)\n3) WPA Enterprise (such as university wifi)\n")
		answer, err := w.read("What type of encryption will this network use? (Default: Non-secure)\n> ")
		if err != nil {
			return network.Open, err
		}
		switch strings.TrimSpace(answer) {
		case "", "1":
			return network.Open, nil
		case "2":
			return network.PSK, nil
		case "3":
			return network.Enterprise, nil
		}
		w.out.Warn("Please choose 1, 2 or 3.")
	}
}

func (w *Wizard) profileName(ssid string, taken map[string]bool) (string, error) {
	prompt := fmt.Sprintf("What would you like to name this profile? (Default is %s; spaces not supported)\n> ", ssid)
	for {
		name, err := w.read(prompt)
		if err != nil {
			return "", err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			name = ssid
		}
		if err := network.ValidateField("ID", name); err != nil {
			w.out.Warn(describe(err))
			continue
		}
		if taken[name] {
			w.out.Warn(fmt.Sprintf("Profile name %q is already used by another network.", name))
			continue
		}
		return name, nil
	}
}

func (w *Wizard) passphrase(mode network.AuthMode) (string, error) {
	for {
		secret, err := w.p.ReadSecret("Please input the passphrase for this network / account\n> ")
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrNoInput, err)
		}
		err = network.ValidateField("Passphrase", secret)
		if err == nil && mode == network.PSK {
			err = network.ValidatePSK(secret)
		}
		if err != nil {
			w.out.Warn(describe(err))
			continue
		}
		return secret, nil
	}
}

func (w *Wizard) priority() (int, error) {
	w.out.Textf("A priority can be assigned to this network. Negative and positive values are supported. " +
		"The device will attempt to connect to the network with the highest value currently available.\n")
	for {
		answer, err := w.read("Please set a priority, or leave blank for neutral (0)\n> ")
		if err != nil {
			return 0, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(answer)
		if err != nil {
			w.out.Warn(fmt.Sprintf("%q is not a whole number.", answer))
			continue
		}
		return n, nil
	}
}

// field reads a required free-text value, re-asking until it validates.
func (w *Wizard) field(name, prompt string) (string, error) {
	for {
		v, err := w.read(prompt)
		if err != nil {
			return "", err
		}
		v = strings.TrimSpace(v)
		if err := network.ValidateField(name, v); err != nil {
			w.out.Warn(describe(err))
			continue
		}
		return v, nil
	}
}

func (w *Wizard) read(prompt string) (string, error) {
	s, err := w.p.ReadLine(prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoInput, err)
	}
	return s, nil
}

var fieldLabels = map[string]string{
	"SSID":       "SSID",
	"ID":         "Profile name",
	"Auth":       "Encryption",
	"Passphrase": "Passphrase",
	"Identity":   "Username",
}

// describe turns validation failures into sentences for a re-prompt.
func describe(err error) string {
	var verr *network.ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}
	parts := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		label, ok := fieldLabels[f.Field]
		if !ok {
			label = f.Field
		}
		parts = append(parts, label+" "+f.Reason+".")
	}
	return strings.Join(parts, " ")
}
