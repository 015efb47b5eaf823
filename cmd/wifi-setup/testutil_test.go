package main

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"

	"github.com/rklebes/wifi-setup/internal/config"
	"github.com/rklebes/wifi-setup/internal/files"
	ui "github.com/rklebes/wifi-setup/internal/ui"
)

// errMock is a generic error for test assertions.
var errMock = errors.New("mock error")

// mockPrompter is a configurable prompter for testing.
// It returns responses in order and reports io.EOF when they run out.
type mockPrompter struct {
	responses []string
	callIndex int
}

func (p *mockPrompter) ReadLine(prompt string) (string, error) {
	if p.callIndex >= len(p.responses) {
		return "", io.EOF
	}
	resp := p.responses[p.callIndex]
	p.callIndex++
	return resp, nil
}

func (p *mockPrompter) ReadSecret(prompt string) (string, error) { return p.ReadLine(prompt) }

// mockStore records persisted documents instead of writing them.
type mockStore struct {
	dir       string
	persisted []files.Document
	unchanged map[string]bool
	err       error
}

func (s *mockStore) Dir() string { return s.dir }

func (s *mockStore) Persist(doc files.Document) (files.Result, error) {
	path := filepath.Join(s.dir, doc.Name)
	if s.err != nil {
		return files.Result{Path: path}, &files.PersistError{Path: path, Step: files.StepChown, Err: s.err}
	}
	s.persisted = append(s.persisted, doc)
	return files.Result{Path: path, Changed: !s.unchanged[doc.Name], Fingerprint: files.Fingerprint(doc.Contents)}, nil
}

// testDeps bundles Deps with the fakes behind it.
type testDeps struct {
	*Deps
	prompter *mockPrompter
	store    *mockStore
	out      *bytes.Buffer
	prompts  *bytes.Buffer
	previews int
}

func newTestDeps(format string, responses ...string) *testDeps {
	out := &bytes.Buffer{}
	printer := ui.NewPrinter(format).WithOutput(out)
	printer.Colors.Enabled = false
	printer.Colors.EmojiEnabled = false

	td := &testDeps{
		prompter: &mockPrompter{responses: responses},
		store:    &mockStore{dir: "/out"},
		out:      out,
		prompts:  &bytes.Buffer{},
	}
	cfg := config.Defaults()
	td.Deps = &Deps{
		Cfg:      cfg,
		Printer:  printer,
		Prompter: td.prompter,
		Store:    td.store,
		Output:   out,
		Prompts:  td.prompts,
		Preview: func(docs []files.Document) error {
			td.previews++
			return nil
		},
	}
	return td
}
