package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/grovetools/xstatus/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, time.Second, cfg.PollInterval())
	assert.Equal(t, time.Duration(0), cfg.HelperTimeout())
	assert.Equal(t, "2006-01-02 15:04:05", cfg.TimeFormat)
	assert.Equal(t, "/sys/class/power_supply", cfg.PowerSupplyDir)
	assert.Equal(t, []int{0, 1}, cfg.Batteries)
	assert.Equal(t, MixerConfig{Command: "amixer", Args: []string{"get", "Master"}}, cfg.Mixer)
	assert.Equal(t, BacklightSourceCommand, cfg.Backlight.Source)
	assert.Equal(t, "xbacklight", cfg.Backlight.Command)
	assert.Equal(t, []string{"xbacklight", "amixer"}, cfg.RequiredHelpers())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromBytesYAML(t *testing.T) {
	t.Setenv("XSTATUS_TEST_DIR", "/tmp/ps")
	data := []byte(`
interval: 5s
command_timeout: 2s
power_supply_dir: ${XSTATUS_TEST_DIR}
batteries: [1]
backlight:
  source: sysfs
logging:
  level: debug
`)

	cfg, err := LoadFromBytes(data, FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.PollInterval())
	assert.Equal(t, 2*time.Second, cfg.HelperTimeout())
	assert.Equal(t, "/tmp/ps", cfg.PowerSupplyDir)
	assert.Equal(t, []int{1}, cfg.Batteries)
	assert.Equal(t, []string{"amixer"}, cfg.RequiredHelpers())

	var logCfg struct {
		Level string `yaml:"level"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)
}

func TestLoadFromBytesTOML(t *testing.T) {
	data := []byte(`
interval = "3s"
batteries = [0]

[mixer]
command = "amixer"
args = ["-c", "1", "get", "Master"]

[logging]
level = "warn"
`)

	cfg, err := LoadFromBytes(data, FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.PollInterval())
	assert.Equal(t, []int{0}, cfg.Batteries)
	assert.Equal(t, []string{"-c", "1", "get", "Master"}, cfg.Mixer.Args)

	var logCfg struct {
		Level string `yaml:"level"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "warn", logCfg.Level)
}

func TestMixerArgsDefaults(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{"named amixer", "mixer:\n  command: amixer\n", []string{"get", "Master"}},
		{"absolute amixer", "mixer:\n  command: /usr/bin/amixer\n", []string{"get", "Master"}},
		{"explicit args kept", "mixer:\n  command: amixer\n  args: [get, PCM]\n", []string{"get", "PCM"}},
		{"other mixer", "mixer:\n  command: mixerctl\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFromBytes([]byte(tt.data), FormatYAML)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Mixer.Args)
		})
	}
}

func TestLoadFromBytesInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.ErrorCode
	}{
		{"malformed yaml", "interval: [", errors.ErrCodeConfigInvalid},
		{"schema violation", "backlight:\n  source: ddc\n", errors.ErrCodeConfigInvalid},
		{"bad interval", "interval: soon\n", errors.ErrCodeConfigValidation},
		{"zero interval", "interval: 0s\n", errors.ErrCodeConfigValidation},
		{"empty batteries", "batteries: []\n", errors.ErrCodeConfigValidation},
		{"duplicate battery", "batteries: [0, 0]\n", errors.ErrCodeConfigValidation},
		{"shell in helper", "mixer:\n  command: \"amixer; rm -rf /\"\n", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.data), FormatYAML)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "expected %s, got %v", tt.code, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigNotFound, errors.GetCode(err))
}

func TestLoadWithOverride(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "xstatus.yml")
	require.NoError(t, os.WriteFile(base, []byte("interval: 2s\nbatteries: [0, 1]\nlogging:\n  level: info\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "xstatus.override.yml"),
		[]byte("batteries: [1]\nlogging:\n  report_caller: true\n"), 0644))

	cfg, err := Load(base)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.PollInterval())
	assert.Equal(t, []int{1}, cfg.Batteries)
	assert.Equal(t, map[string]interface{}{"level": "info", "report_caller": true}, cfg.Extensions["logging"])
}

func TestResolve(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XSTATUS_HOME", home)
	t.Setenv("XSTATUS_CONFIG", "")

	cfg, path, err := Resolve("", nil)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)

	configDir := filepath.Join(home, "config")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	want := filepath.Join(configDir, "xstatus.toml")
	require.NoError(t, os.WriteFile(want, []byte("interval = \"4s\"\n"), 0644))

	cfg, path, err = Resolve("", nil)
	require.NoError(t, err)
	assert.Equal(t, want, path)
	assert.Equal(t, 4*time.Second, cfg.PollInterval())

	_, _, err = Resolve(filepath.Join(home, "missing.yml"), nil)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("XSTATUS_SET", "value")
	t.Setenv("XSTATUS_UNSET", "")

	assert.Equal(t, "a value b", expandEnvVars("a ${XSTATUS_SET} b"))
	assert.Equal(t, "fallback", expandEnvVars("${XSTATUS_UNSET:-fallback}"))
	assert.Equal(t, "", expandEnvVars("${XSTATUS_UNSET}"))
}

func TestGenerateSchemaCoversConfig(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	for _, key := range []string{"interval", "batteries", "power_supply_dir", "mixer", "backlight", "sysfs_dir"} {
		assert.Contains(t, string(data), `"`+key+`"`)
	}
}
