package internal

import (
	"os"
	"os/user"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetroEnviron(t *testing.T) {
	environ := []string{
		"PATH=/usr/bin",
		"RETRO_PORT=9090",
		"RETRO_ORIENTATION=horizontal",
		"RETRO_API_KEY=hunter2",
		"RETRO_BROKEN",
	}

	assert.Equal(t, [][2]string{
		{"RETRO_API_KEY", "********"},
		{"RETRO_ORIENTATION", "horizontal"},
		{"RETRO_PORT", "9090"},
	}, retroEnviron(environ))
}

func TestProcessInfo(t *testing.T) {
	fields := processInfo()

	assert.Equal(t, os.Getpid(), fields["pid"])
	assert.Contains(t, fields, "groups")
	if u, err := user.Current(); err == nil {
		assert.Equal(t, u.Gid, fields["gid"])
	}
}
