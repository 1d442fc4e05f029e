package collector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/grovetools/xstatus/config"
	"github.com/grovetools/xstatus/errors"
	"github.com/grovetools/xstatus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBattery(t *testing.T) {
	dir := testutil.CreatePowerSupply(t, map[int][2]string{
		0: {"Discharging", "80"},
		1: {"Charging", " 54 "},
		2: {"Not charging", "100"},
		3: {"Full", "100"},
	})

	tests := []struct {
		id   int
		want string
	}{
		{0, "0: 80%"},
		{1, "C: 54%"},
		{2, "2: 100%"},
		{3, "3: 100%"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("BAT%d", tt.id), func(t *testing.T) {
			got, err := ReadBattery(dir, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadBatteryMissing(t *testing.T) {
	dir := testutil.CreatePowerSupply(t, map[int][2]string{0: {"Full", "100"}})

	_, err := ReadBattery(dir, 1)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSysfsRead, errors.GetCode(err))

	statusErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "BAT1", "status"), statusErr.Details["path"])
}

func TestBatteryCollectorJoinsUnits(t *testing.T) {
	dir := testutil.CreatePowerSupply(t, map[int][2]string{
		0: {"Discharging", "80"},
		1: {"Charging", "100"},
	})

	c := NewBatteryCollector(dir, []int{0, 1})
	got, err := c.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0: 80% C: 100%", got)
	assert.Equal(t, "battery", c.Name())
}

func TestParseMixer(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{
			name:   "unmuted",
			output: testutil.AmixerOutput("37%", "on"),
			want:   "37%",
		},
		{
			name:   "muted ignores volume",
			output: testutil.AmixerOutput("37%", "off"),
			want:   "MUTED",
		},
		{
			name:   "muted at zero",
			output: testutil.AmixerOutput("0%", "off"),
			want:   "MUTED",
		},
		{
			name:    "too few lines",
			output:  "Simple mixer control 'Master',0\n",
			wantErr: true,
		},
		{
			name:    "too few fields",
			output:  "a\nb\nc\nd\n  Mono: Playback\n",
			wantErr: true,
		},
		{
			name:    "invalid utf8",
			output:  "\xff\xfe",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMixer([]byte(tt.output))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeParse, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAudioCollector(t *testing.T) {
	runner := testutil.NewFakeRunner().Set("amixer get Master", testutil.AmixerOutput("64%", "on"))

	c := NewAudioCollector(runner, "amixer", []string{"get", "Master"})
	got, err := c.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "64%", got)
	assert.Equal(t, []string{"amixer get Master"}, runner.Calls())
}

func TestAudioCollectorCommandError(t *testing.T) {
	cmdErr := errors.CommandFailed("amixer get Master", os.ErrPermission)
	runner := testutil.NewFakeRunner().Fail("amixer get Master", cmdErr)

	c := NewAudioCollector(runner, "amixer", []string{"get", "Master"})
	_, err := c.Read(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCommandFailed, errors.GetCode(err))
}

func TestParseBacklight(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{"fractional", "42.500000\n", "42%", false},
		{"whole", "100.000000\n", "100%", false},
		{"no dot", " 7\n", "7%", false},
		{"empty", "", "", true},
		{"blank", "\n", "", true},
		{"invalid utf8", "\xff", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBacklight([]byte(tt.output))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeParse, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBacklightCollector(t *testing.T) {
	runner := testutil.NewFakeRunner().Set("xbacklight", "42.500000\n")

	c := NewBacklightCollector(runner, "xbacklight", nil)
	got, err := c.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "42%", got)
}

func TestSysfsBacklightCollector(t *testing.T) {
	tests := []struct {
		name       string
		brightness int
		max        int
		want       string
	}{
		{"half", 500, 1000, "50%"},
		{"truncates", 1, 3, "33%"},
		{"full", 852, 852, "100%"},
		{"off", 0, 852, "0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutil.CreateBacklight(t, "intel_backlight", tt.brightness, tt.max)
			got, err := NewSysfsBacklightCollector(dir).Read(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSysfsBacklightCollectorErrors(t *testing.T) {
	t.Run("no device", func(t *testing.T) {
		_, err := NewSysfsBacklightCollector(t.TempDir()).Read(context.Background())
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeSysfsRead, errors.GetCode(err))
	})

	t.Run("zero max", func(t *testing.T) {
		dir := testutil.CreateBacklight(t, "acpi_video0", 5, 0)
		_, err := NewSysfsBacklightCollector(dir).Read(context.Background())
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeParse, errors.GetCode(err))
	})
}

func TestClockCollector(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	c := NewClockCollector(config.DefaultTimeFormat, func() time.Time { return fixed })

	got, err := c.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01 00:00:00", got)
	assert.Equal(t, "time", c.Name())
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	set := FromConfig(cfg, testutil.NewFakeRunner(), nil)

	names := make([]string, 0, 4)
	for _, c := range set.Ordered() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"time", "battery", "audio", "backlight"}, names)
	assert.IsType(t, &BacklightCollector{}, set.Backlight)

	cfg.Backlight.Source = config.BacklightSourceSysfs
	set = FromConfig(cfg, testutil.NewFakeRunner(), nil)
	assert.IsType(t, &SysfsBacklightCollector{}, set.Backlight)
}
