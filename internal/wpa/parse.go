package wpa

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/rklebes/wifi-setup/internal/network"
)

// Config is the subset of a wpa_supplicant.conf this tool understands.
type Config struct {
	Country  string
	Profiles []network.Profile
}

// ParseError reports a malformed line or block.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseString is Parse over an in-memory document.
func ParseString(s string) (*Config, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads a wpa_supplicant.conf. Top-level keys other than country and
// block keys this tool does not emit are skipped. Every network block is
// rebuilt through network.New, so invalid credentials are reported.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
	sc := bufio.NewScanner(r)
	var (
		lineNo int
		block  map[string]rawValue
		start  int
	)
	for sc.Scan() {
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if block == nil {
			if text == "network={" {
				block = map[string]rawValue{}
				start = lineNo
				continue
			}
			key, val, ok := strings.Cut(text, "=")
			if !ok {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("expected key=value, got %q", text)}
			}
			if key == "country" {
				cfg.Country = strings.TrimSpace(val)
			}
			continue
		}
		if text == "}" {
			p, err := blockProfile(block)
			if err != nil {
				return nil, &ParseError{Line: start, Msg: "invalid network block", Err: err}
			}
			cfg.Profiles = append(cfg.Profiles, p)
			block = nil
			continue
		}
		key, val, ok := strings.Cut(text, "=")
		if !ok {
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("expected key=value inside network block, got %q", text)}
		}
		rv, err := parseValue(val)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: "bad value for " + key, Err: err}
		}
		block[strings.TrimSpace(key)] = rv
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if block != nil {
		return nil, &ParseError{Line: start, Msg: "unterminated network block"}
	}
	return cfg, nil
}

type rawValue struct {
	s      string
	quoted bool
}

func parseValue(v string) (rawValue, error) {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, `"`) {
		if len(v) < 2 || !strings.HasSuffix(v, `"`) {
			return rawValue{}, fmt.Errorf("unterminated quoted string %s", v)
		}
		return rawValue{s: v[1 : len(v)-1], quoted: true}, nil
	}
	return rawValue{s: v}, nil
}

func blockProfile(kv map[string]rawValue) (network.Profile, error) {
	ssid, ok := kv["ssid"]
	if !ok {
		return network.Profile{}, fmt.Errorf("missing ssid")
	}
	if !ssid.quoted {
		return network.Profile{}, fmt.Errorf("hex-encoded ssid is not supported")
	}

	mode := network.Open
	if km, ok := kv["key_mgmt"]; ok {
		m, err := network.AuthModeFromKeyMgmt(km.s)
		if err != nil {
			return network.Profile{}, err
		}
		mode = m
	} else if _, ok := kv["identity"]; ok {
		mode = network.Enterprise
	} else if _, ok := kv["psk"]; ok {
		mode = network.PSK
	}

	var secret, identity string
	switch mode {
	case network.PSK:
		psk := kv["psk"]
		if psk.s != "" && !psk.quoted {
			return network.Profile{}, fmt.Errorf("raw hex psk is not supported")
		}
		secret = psk.s
	case network.Enterprise:
		secret = kv["password"].s
		identity = kv["identity"].s
		if eap, ok := kv["eap"]; ok && eap.s != eapMethod {
			log.WithField("ssid", ssid.s).Debugf("eap=%s will be rewritten as %s", eap.s, eapMethod)
		}
	}

	priority := 0
	if pr, ok := kv["priority"]; ok {
		n, err := strconv.Atoi(pr.s)
		if err != nil {
			return network.Profile{}, fmt.Errorf("priority: %w", err)
		}
		priority = n
	}

	return network.New(ssid.s,
		network.WithID(kv["id_str"].s),
		network.WithAuth(mode, secret, identity),
		network.WithPriority(priority),
	)
}
