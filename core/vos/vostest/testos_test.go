package vostest

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestChdir(t *testing.T) {
	tos := NewDeterministicOS("/tmp/a")
	assert.Nil(t, afero.WriteFile(tos.Fs, "/tmp/file", []byte("x"), 0644))

	assert.Nil(t, tos.Chdir("/tmp"))
	assert.Nil(t, tos.Chdir("a"))
	wd, _ := tos.Getwd()
	assert.Equal(t, "/tmp/a", wd)

	assert.Nil(t, tos.Chdir(".."))
	wd, _ = tos.Getwd()
	assert.Equal(t, "/tmp", wd)

	assert.NotNil(t, tos.Chdir("file"))
	assert.NotNil(t, tos.Chdir("/does/not/exist"))
	wd, _ = tos.Getwd()
	assert.Equal(t, "/tmp", wd)
}

func TestDefaults(t *testing.T) {
	tos := NewDeterministicOS()
	assert.Equal(t, "/root", tos.Getenv("HOME"))
	assert.Equal(t, DeterministicPID, tos.Getpid())

	tos.Stdout().Write([]byte("out"))
	tos.Stderr().Write([]byte("err"))
	assert.Equal(t, "out", tos.Out.String())
	assert.Equal(t, "err", tos.Err.String())
}
