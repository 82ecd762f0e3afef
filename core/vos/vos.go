package vos

import (
	"io"
	"os"
)

// VIO holds the standard streams of a process.
type VIO interface {
	Stdin() io.ReadCloser
	Stdout() io.WriteCloser
	Stderr() io.WriteCloser
}

// VEnv represents an environment.
type VEnv interface {
	// Setenv sets the value of the environment variable named by the key.
	// It returns an error, if any.
	Setenv(key, value string) error

	// Unsetenv unsets a single environment variable.
	Unsetenv(key string) error

	// LookupEnv retrieves the value of the environment variable named by the key.
	// If the variable is present in the environment the value (which may be
	// empty) is returned and the boolean is true. Otherwise the returned value
	// will be empty and the boolean will be false.
	LookupEnv(key string) (string, bool)

	// Getenv retrieves the value of the environment variable named by the key.
	// It returns the value, which will be empty if the variable is not present.
	Getenv(key string) string

	// Environ returns a copy of strings representing the environment, in the
	// form "key=value".
	Environ() []string
}

// VProc is the identity and working directory of the interpreter process.
type VProc interface {
	// Getpid returns the process id of the caller.
	Getpid() int

	// Getwd returns a rooted path name corresponding to the current directory.
	Getwd() (string, error)

	// Chdir changes the current working directory to the named directory.
	Chdir(dir string) error
}

// VFS is the read-only view of the filesystem the interpreter needs.
type VFS interface {
	Stat(name string) (os.FileInfo, error)
}

// VOS is the slice of the operating system the shell talks to directly.
// Anything that has to happen in another process goes through the launcher.
type VOS interface {
	VIO
	VEnv
	VProc
	VFS
}
