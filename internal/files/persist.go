package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	log "github.com/sirupsen/logrus"
)

// Document is a generated file waiting to be written.
type Document struct {
	Name     string      // file name relative to the store directory
	Contents string
	Mode     fs.FileMode // permission bits applied before the file becomes visible
}

// Result describes what Persist did.
type Result struct {
	Path        string
	Changed     bool   // false when the file already held identical contents
	Fingerprint string // xxhash64 of the contents, hex
}

// Store abstracts writing generated documents with atomic replacement.
type Store interface {
	Persist(doc Document) (Result, error)
	Dir() string
}

type store struct {
	dir   string
	owner string
}

// New returns a filesystem-backed store rooted at dir. Every document is
// chowned to owner (chown(1) syntax); an empty owner leaves ownership alone.
func New(dir, owner string) Store { return &store{dir: dir, owner: owner} }

func (s *store) Dir() string { return s.dir }

func (s *store) Persist(doc Document) (Result, error) {
	return Persist(doc.Contents, filepath.Join(s.dir, doc.Name), doc.Mode, s.owner)
}

// Step names the stage of Persist that failed.
type Step string

const (
	StepLookup Step = "lookup owner"
	StepWrite  Step = "write"
	StepChmod  Step = "chmod"
	StepChown  Step = "chown"
	StepRename Step = "rename"
)

// PersistError reports which step of Persist failed for which path.
type PersistError struct {
	Path string
	Step Step
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Step, e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Fingerprint returns the hex xxhash64 of contents.
func Fingerprint(contents string) string {
	return strconv.FormatUint(xxhash.Sum64String(contents), 16)
}

// Persist writes contents to path with mode and owner. The data goes to a
// temporary file in the same directory that is created private, fixed up and
// then renamed over path, so readers never see partial contents or wider
// permissions than mode. If path already holds the same contents only mode
// and owner are enforced.
func Persist(contents, path string, mode fs.FileMode, owner string) (Result, error) {
	res := Result{Path: path, Fingerprint: Fingerprint(contents)}
	logger := log.WithFields(log.Fields{"path": path, "mode": fmt.Sprintf("%#o", mode), "owner": owner})

	uid, gid, err := resolveOwner(owner)
	if err != nil {
		return res, &PersistError{Path: path, Step: StepLookup, Err: err}
	}

	if unchanged(path, contents) {
		logger.Debug("contents unchanged, enforcing mode and owner only")
		if err := os.Chmod(path, mode); err != nil {
			return res, &PersistError{Path: path, Step: StepChmod, Err: err}
		}
		if err := chown(path, uid, gid); err != nil {
			return res, &PersistError{Path: path, Step: StepChown, Err: err}
		}
		return res, nil
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return res, &PersistError{Path: path, Step: StepWrite, Err: err}
	}
	tmpPath := tmp.Name()
	fail := func(step Step, err error) (Result, error) {
		tmp.Close()
		os.Remove(tmpPath)
		logger.WithField("step", step).Debugf("persist failed: %v", err)
		return res, &PersistError{Path: path, Step: step, Err: err}
	}

	if _, err := tmp.WriteString(contents); err != nil {
		return fail(StepWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(StepWrite, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fail(StepChmod, err)
	}
	if err := chown(tmpPath, uid, gid); err != nil {
		return fail(StepChown, err)
	}
	if err := tmp.Close(); err != nil {
		return fail(StepWrite, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return res, &PersistError{Path: path, Step: StepRename, Err: err}
	}
	res.Changed = true
	logger.Debug("written")
	return res, nil
}

func unchanged(path, contents string) bool {
	b, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.WithField("path", path).Debugf("cannot read existing file: %v", err)
		}
		return false
	}
	return len(b) == len(contents) && xxhash.Sum64(b) == xxhash.Sum64String(contents)
}
