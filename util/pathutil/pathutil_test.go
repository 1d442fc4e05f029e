package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XS_TEST_DIR", "/var/tmp")

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/logs/xstatus.log", filepath.Join(home, "logs", "xstatus.log")},
		{"$XS_TEST_DIR/xstatus.log", "/var/tmp/xstatus.log"},
		{"/abs/path", "/abs/path"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Expand(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSamePathFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.yml")
	link := filepath.Join(dir, "xstatus.yml")
	require.NoError(t, os.WriteFile(target, []byte("interval: 1s\n"), 0o600))
	require.NoError(t, os.Symlink(target, link))

	assert.True(t, SamePath(link, target))
	assert.False(t, SamePath(link, filepath.Join(dir, "other.yml")))
}
