package network

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk YAML description of a set of networks.
type File struct {
	Country  string        `yaml:"country,omitempty"`
	Networks []FileNetwork `yaml:"networks"`
}

// FileNetwork is one entry of File. Fields mirror Profile but every
// credential is optional so that New can report what is missing.
type FileNetwork struct {
	SSID       string `yaml:"ssid"`
	ID         string `yaml:"id,omitempty"`
	Auth       string `yaml:"auth,omitempty"`
	Passphrase string `yaml:"passphrase,omitempty"`
	Identity   string `yaml:"identity,omitempty"`
	Priority   int    `yaml:"priority,omitempty"`
}

// EntryError points at the invalid entry of a profile file.
type EntryError struct {
	Index int
	SSID  string
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("networks[%d] (ssid %q): %v", e.Index, e.SSID, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// LoadFile reads and validates a profile file.
func LoadFile(path string) (string, []Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return DecodeFile(bytes.NewReader(b))
}

// DecodeFile decodes a profile file and builds every profile through New.
// It returns the file's country (possibly empty) and the profiles in order.
func DecodeFile(r io.Reader) (string, []Profile, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("decode profiles: %w", err)
	}
	profiles := make([]Profile, 0, len(f.Networks))
	for i, n := range f.Networks {
		p, err := n.Profile()
		if err != nil {
			return "", nil, &EntryError{Index: i, SSID: n.SSID, Err: err}
		}
		profiles = append(profiles, p)
	}
	if err := CheckUniqueIDs(profiles); err != nil {
		return "", nil, err
	}
	return f.Country, profiles, nil
}

// CheckUniqueIDs rejects a set in which two profiles share an ID; each ID
// becomes one logical interface in the interfaces file.
func CheckUniqueIDs(profiles []Profile) error {
	seen := make(map[string]int, len(profiles))
	for i, p := range profiles {
		if first, ok := seen[p.ID]; ok {
			return &EntryError{Index: i, SSID: p.SSID, Err: fmt.Errorf("id %q already used by networks[%d]", p.ID, first)}
		}
		seen[p.ID] = i
	}
	return nil
}

// Profile converts the entry into a validated Profile.
func (n FileNetwork) Profile() (Profile, error) {
	mode, err := ParseAuthMode(n.Auth)
	if err != nil {
		return Profile{}, err
	}
	return New(n.SSID, WithID(n.ID), WithAuth(mode, n.Passphrase, n.Identity), WithPriority(n.Priority))
}

// EncodeFile writes profiles in the File format.
func EncodeFile(w io.Writer, country string, profiles []Profile) error {
	f := File{Country: country, Networks: make([]FileNetwork, 0, len(profiles))}
	for _, p := range profiles {
		n := FileNetwork{
			SSID:       p.SSID,
			Auth:       string(mustText(p.Auth)),
			Passphrase: p.Passphrase,
			Identity:   p.Identity,
			Priority:   p.Priority,
		}
		if p.ID != p.SSID {
			n.ID = p.ID
		}
		f.Networks = append(f.Networks, n)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}

func mustText(m AuthMode) []byte {
	b, err := m.MarshalText()
	if err != nil {
		return []byte("open")
	}
	return b
}
