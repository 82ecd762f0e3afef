package vos

import (
	"os"

	"github.com/spf13/afero"
)

// HostOS is the VOS of the running interpreter process.
type HostOS struct {
	VIO

	fs afero.Fs
}

var _ VOS = (*HostOS)(nil)

// NewHostOS creates a VOS backed by the real process state and streams.
func NewHostOS() *HostOS {
	return &HostOS{
		VIO: NewOSIO(),
		fs:  afero.NewOsFs(),
	}
}

// Setenv implements VOS.Setenv.
func (*HostOS) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

// Unsetenv implements VOS.Unsetenv.
func (*HostOS) Unsetenv(key string) error {
	return os.Unsetenv(key)
}

// LookupEnv implements VOS.LookupEnv.
func (*HostOS) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Getenv implements VOS.Getenv.
func (*HostOS) Getenv(key string) string {
	return os.Getenv(key)
}

// Environ implements VOS.Environ.
func (*HostOS) Environ() []string {
	return os.Environ()
}

// Getpid implements VOS.Getpid.
func (*HostOS) Getpid() int {
	return os.Getpid()
}

// Getwd implements VOS.Getwd.
func (*HostOS) Getwd() (string, error) {
	return os.Getwd()
}

// Chdir implements VOS.Chdir.
func (*HostOS) Chdir(dir string) error {
	return os.Chdir(dir)
}

// Stat implements VOS.Stat.
func (h *HostOS) Stat(name string) (os.FileInfo, error) {
	return h.fs.Stat(name)
}
