package collector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/xstatus/errors"
)

// BatteryCollector reads charge and charging state of the configured units.
type BatteryCollector struct {
	dir string
	ids []int
}

// NewBatteryCollector creates a BatteryCollector reading <dir>/BAT<id>.
func NewBatteryCollector(dir string, ids []int) *BatteryCollector {
	return &BatteryCollector{dir: dir, ids: ids}
}

// Name returns the collector's name.
func (c *BatteryCollector) Name() string { return "battery" }

// Read returns every unit's reading joined by a space.
func (c *BatteryCollector) Read(ctx context.Context) (string, error) {
	readings := make([]string, 0, len(c.ids))
	for _, id := range c.ids {
		r, err := ReadBattery(c.dir, id)
		if err != nil {
			return "", err
		}
		readings = append(readings, r)
	}
	return strings.Join(readings, " "), nil
}

// ReadBattery formats one unit as "<prefix>: <capacity>%", where prefix is C
// while charging and the unit id otherwise.
func ReadBattery(dir string, id int) (string, error) {
	unit := filepath.Join(dir, fmt.Sprintf("BAT%d", id))

	status, err := readSysfs(filepath.Join(unit, "status"))
	if err != nil {
		return "", err
	}
	capacity, err := readSysfs(filepath.Join(unit, "capacity"))
	if err != nil {
		return "", err
	}

	prefix := fmt.Sprint(id)
	if strings.Contains(status, "Charging") {
		prefix = "C"
	}
	return fmt.Sprintf("%s: %s%%", prefix, strings.TrimSpace(capacity)), nil
}

func readSysfs(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.SysfsRead(path, err)
	}
	return string(data), nil
}
