package files

import (
	"errors"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"testing"
)

type chownCall struct {
	path     string
	uid, gid int
}

// stubOwnership replaces the chown and lookup hooks for the duration of a test.
func stubOwnership(t *testing.T, chownErr error) *[]chownCall {
	t.Helper()
	origChown, origUser, origGroup := chown, lookupUser, lookupGroup
	t.Cleanup(func() { chown, lookupUser, lookupGroup = origChown, origUser, origGroup })

	calls := &[]chownCall{}
	chown = func(path string, uid, gid int) error {
		*calls = append(*calls, chownCall{path, uid, gid})
		return chownErr
	}
	lookupUser = func(name string) (*user.User, error) {
		switch name {
		case "root":
			return &user.User{Username: "root", Uid: "0", Gid: "0"}, nil
		case "pi":
			return &user.User{Username: "pi", Uid: "1000", Gid: "1000"}, nil
		}
		return nil, user.UnknownUserError(name)
	}
	lookupGroup = func(name string) (*user.Group, error) {
		if name == "netdev" {
			return &user.Group{Name: "netdev", Gid: "108"}, nil
		}
		return nil, user.UnknownGroupError(name)
	}
	return calls
}

func tempFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var out []string
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			out = append(out, e.Name())
		}
	}
	return out
}

func TestPersist_WritesModeAndOwner(t *testing.T) {
	calls := stubOwnership(t, nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "wpa_supplicant.conf")

	res, err := Persist("country=US\n", path, 0o600, "root:")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Changed {
		t.Error("first write should report Changed")
	}
	if res.Fingerprint != Fingerprint("country=US\n") {
		t.Errorf("fingerprint = %s", res.Fingerprint)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "country=US\n" {
		t.Errorf("contents = %q", b)
	}
	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
	if len(*calls) != 1 || (*calls)[0].uid != 0 || (*calls)[0].gid != 0 {
		t.Errorf("chown calls = %+v", *calls)
	}
	if left := tempFiles(t, dir); len(left) != 0 {
		t.Errorf("temp files left behind: %v", left)
	}
}

func TestPersist_ReplacesAndWidensMode(t *testing.T) {
	stubOwnership(t, nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "interfaces")
	if err := os.WriteFile(path, []byte("old\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	res, err := Persist("new\n", path, 0o644, "")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Changed {
		t.Error("replacing contents should report Changed")
	}
	b, _ := os.ReadFile(path)
	if string(b) != "new\n" {
		t.Errorf("contents = %q", b)
	}
	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}
}

func TestPersist_UnchangedStillEnforcesMode(t *testing.T) {
	calls := stubOwnership(t, nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "wpa_supplicant.conf")
	if err := os.WriteFile(path, []byte("same\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Persist("same\n", path, 0o600, "pi")
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed {
		t.Error("identical contents should not report Changed")
	}
	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
	if len(*calls) != 1 || (*calls)[0] != (chownCall{path, 1000, -1}) {
		t.Errorf("chown calls = %+v", *calls)
	}
}

func TestPersist_ChownFailure(t *testing.T) {
	stubOwnership(t, os.ErrPermission)
	dir := t.TempDir()
	path := filepath.Join(dir, "wpa_supplicant.conf")

	_, err := Persist("secret\n", path, 0o600, "root")
	if err == nil {
		t.Fatal("expected error")
	}
	var perr *PersistError
	if !errors.As(err, &perr) || perr.Step != StepChown {
		t.Fatalf("want chown PersistError, got %v", err)
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Errorf("error should wrap the cause: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("target must not exist after failed persist")
	}
	if left := tempFiles(t, dir); len(left) != 0 {
		t.Errorf("temp files left behind: %v", left)
	}
}

func TestPersist_UnknownOwner(t *testing.T) {
	stubOwnership(t, nil)
	_, err := Persist("x", filepath.Join(t.TempDir(), "f"), 0o644, "nobody-here")
	var perr *PersistError
	if !errors.As(err, &perr) || perr.Step != StepLookup {
		t.Fatalf("want lookup PersistError, got %v", err)
	}
}

func TestPersist_MissingDirectory(t *testing.T) {
	stubOwnership(t, nil)
	_, err := Persist("x", filepath.Join(t.TempDir(), "nope", "f"), 0o644, "")
	var perr *PersistError
	if !errors.As(err, &perr) || perr.Step != StepWrite {
		t.Fatalf("want write PersistError, got %v", err)
	}
}

func TestStore_Persist(t *testing.T) {
	stubOwnership(t, nil)
	dir := t.TempDir()
	s := New(dir, "")
	if s.Dir() != dir {
		t.Errorf("Dir() = %s", s.Dir())
	}
	res, err := s.Persist(Document{Name: "interfaces", Contents: "auto lo\n", Mode: 0o644})
	if err != nil {
		t.Fatal(err)
	}
	if res.Path != filepath.Join(dir, "interfaces") {
		t.Errorf("path = %s", res.Path)
	}
}

func TestResolveOwner(t *testing.T) {
	stubOwnership(t, nil)
	tests := []struct {
		owner    string
		uid, gid int
		wantErr  bool
	}{
		{"", -1, -1, false},
		{"root", 0, -1, false},
		{"root:", 0, 0, false},
		{"pi:", 1000, 1000, false},
		{"pi:netdev", 1000, 108, false},
		{":netdev", -1, 108, false},
		{":", 0, 0, true},
		{"ghost", 0, 0, true},
		{"pi:ghosts", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.owner, func(t *testing.T) {
			uid, gid, err := resolveOwner(tt.owner)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if uid != tt.uid || gid != tt.gid {
				t.Errorf("resolveOwner(%q) = %d:%d, want %d:%d", tt.owner, uid, gid, tt.uid, tt.gid)
			}
		})
	}
}
