package vostest

import (
	"bytes"
	"fmt"
	"os"
	"path"

	"github.com/josephlewis42/jobsh/core/vos"
	"github.com/spf13/afero"
)

// DeterministicPID is the process ID reported by TestOS.
const DeterministicPID = 4242

// TestOS is an in-memory VOS, its working directory and filesystem are
// isolated from the test process.
type TestOS struct {
	*vos.VIOAdapter
	*vos.MapEnv

	Fs  afero.Fs
	Dir string
	PID int

	Out *bytes.Buffer
	Err *bytes.Buffer
}

var _ vos.VOS = (*TestOS)(nil)

// NewDeterministicOS creates a TestOS rooted at "/" with HOME=/root and the
// given directories already created.
func NewDeterministicOS(dirs ...string) *TestOS {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	fs := afero.NewMemMapFs()
	for _, dir := range append([]string{"/root"}, dirs...) {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			panic(err)
		}
	}

	return &TestOS{
		VIOAdapter: vos.NewVIOAdapter(nil, out, errOut),
		MapEnv:     vos.NewMapEnvFromEnvList([]string{"HOME=/root"}),
		Fs:         fs,
		Dir:        "/",
		PID:        DeterministicPID,
		Out:        out,
		Err:        errOut,
	}
}

// Getpid implements VOS.Getpid.
func (t *TestOS) Getpid() int {
	return t.PID
}

// Getwd implements VOS.Getwd.
func (t *TestOS) Getwd() (string, error) {
	return t.Dir, nil
}

// Chdir implements VOS.Chdir.
func (t *TestOS) Chdir(dir string) error {
	if !path.IsAbs(dir) {
		dir = path.Join(t.Dir, dir)
	}
	dir = path.Clean(dir)

	stat, err := t.Stat(dir)
	switch {
	case err != nil:
		return err
	case !stat.IsDir():
		return fmt.Errorf("%s: Not a directory", dir)
	default:
		t.Dir = dir
		return nil
	}
}

// Stat implements VOS.Stat, relative names resolve against Dir.
func (t *TestOS) Stat(name string) (os.FileInfo, error) {
	if !path.IsAbs(name) {
		name = path.Join(t.Dir, name)
	}
	return t.Fs.Stat(name)
}
