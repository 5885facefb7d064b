// Package locator finds the power supply status file on the host.
package locator

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/xbattory/xbattory/pkg/config"
)

// ErrNoBattery is returned when no battery status file exists.
var ErrNoBattery = errors.New("no battery found")

const (
	// DefaultRoot is where the kernel exposes power supplies.
	DefaultRoot = "/sys/class/power_supply"

	ueventFile    = "uevent"
	batteryPrefix = "BAT"
)

// PathProvider returns the location of a status file.
type PathProvider interface {
	Path() (string, error)
}

// Static always returns the same path.
type Static string

func (s Static) Path() (string, error) {
	if s == "" {
		return "", pkgerrors.New("empty status file path")
	}
	return string(s), nil
}

// Sysfs discovers the status file of one battery below Root. When Name is
// empty the lexically first BAT* supply is used.
type Sysfs struct {
	Root string
	Name string
}

func (s Sysfs) Path() (string, error) {
	root := s.Root
	if root == "" {
		root = DefaultRoot
	}

	if s.Name != "" {
		p := filepath.Join(root, s.Name, ueventFile)
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				return "", pkgerrors.Wrapf(ErrNoBattery, "%s", s.Name)
			}
			return "", pkgerrors.Wrapf(err, "failed to stat %s", p)
		}
		return p, nil
	}

	names, err := List(root)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", pkgerrors.Wrapf(ErrNoBattery, "under %s", root)
	}

	return filepath.Join(root, names[0], ueventFile), nil
}

// List returns the sorted names of all BAT* supplies below root that expose
// a status file.
func List(root string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(root, batteryPrefix+"*", ueventFile))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to glob %s", root)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := filepath.Base(filepath.Dir(m))
		if strings.HasPrefix(name, batteryPrefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return names, nil
}

// FromConfig returns a Static provider when an explicit path is configured,
// and a Sysfs provider otherwise.
func FromConfig(c config.Config) PathProvider {
	if p := c.UeventPath(); p != "" {
		return Static(p)
	}
	return Sysfs{Root: c.PowerSupplyRoot(), Name: c.Battery()}
}
