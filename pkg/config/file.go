package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		UeventPath:          ptr.To(""),
		PowerSupplyRoot:     ptr.To("/sys/class/power_supply"),
		Battery:             ptr.To(""),
		HealthWarnThreshold: ptr.To(80),
		HealthDeadThreshold: ptr.To(50),
		AllowNonRootAccess:  ptr.To(false),
		// Hosts without sysfs (macOS, Windows, BSD) still get a snapshot
		// from the cross-platform reader.
		SystemFallback: ptr.To(true),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	UeventPath          *string `json:"ueventPath,omitempty"`
	PowerSupplyRoot     *string `json:"powerSupplyRoot,omitempty"`
	Battery             *string `json:"battery,omitempty"`
	HealthWarnThreshold *int    `json:"healthWarnThreshold,omitempty"`
	HealthDeadThreshold *int    `json:"healthDeadThreshold,omitempty"`
	AllowNonRootAccess  *bool   `json:"allowNonRootAccess,omitempty"`
	SystemFallback      *bool   `json:"systemFallback,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	rawConfig := &RawFileConfig{
		UeventPath:          ptr.To(c.UeventPath()),
		PowerSupplyRoot:     ptr.To(c.PowerSupplyRoot()),
		Battery:             ptr.To(c.Battery()),
		HealthWarnThreshold: ptr.To(c.HealthWarnThreshold()),
		HealthDeadThreshold: ptr.To(c.HealthDeadThreshold()),
		AllowNonRootAccess:  ptr.To(c.AllowNonRootAccess()),
		SystemFallback:      ptr.To(c.SystemFallback()),
	}

	return rawConfig, nil
}

func (f *File) UeventPath() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.UeventPath, *defaultFileConfig.UeventPath)
}

func (f *File) PowerSupplyRoot() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	root := ptr.Deref(f.c.PowerSupplyRoot, "")
	if root == "" {
		root = *defaultFileConfig.PowerSupplyRoot
	}

	return root
}

func (f *File) Battery() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.Battery, *defaultFileConfig.Battery)
}

func (f *File) HealthWarnThreshold() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.HealthWarnThreshold, *defaultFileConfig.HealthWarnThreshold)
}

func (f *File) HealthDeadThreshold() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.HealthDeadThreshold, *defaultFileConfig.HealthDeadThreshold)
}

func (f *File) AllowNonRootAccess() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.AllowNonRootAccess, *defaultFileConfig.AllowNonRootAccess)
}

func (f *File) SystemFallback() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.SystemFallback, *defaultFileConfig.SystemFallback)
}

func (f *File) SetUeventPath(p string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.UeventPath = &p
}

func (f *File) SetBattery(name string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Battery = &name
}

func (f *File) SetHealthThresholds(warn, dead int) error {
	if f.c == nil {
		panic("config is nil")
	}

	if err := validateThresholds(warn, dead); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.HealthWarnThreshold = &warn
	f.c.HealthDeadThreshold = &dead

	return nil
}

func (f *File) SetAllowNonRootAccess(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.AllowNonRootAccess = &b
}

func (f *File) SetSystemFallback(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.SystemFallback = &b
}

func validateThresholds(warn, dead int) error {
	if warn < 0 || warn > 100 || dead < 0 || dead > 100 {
		return pkgerrors.Errorf("health thresholds must be between 0 and 100, got warn=%d dead=%d", warn, dead)
	}
	if dead > warn {
		return pkgerrors.Errorf("dead threshold (%d) must not exceed warn threshold (%d)", dead, warn)
	}
	return nil
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}

	warn := ptr.Deref(conf.HealthWarnThreshold, *defaultFileConfig.HealthWarnThreshold)
	dead := ptr.Deref(conf.HealthDeadThreshold, *defaultFileConfig.HealthDeadThreshold)
	if err := validateThresholds(warn, dead); err != nil {
		return pkgerrors.Wrapf(err, "invalid config in file %s", f.filepath)
	}

	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"ueventPath":          f.UeventPath(),
		"powerSupplyRoot":     f.PowerSupplyRoot(),
		"battery":             f.Battery(),
		"healthWarnThreshold": f.HealthWarnThreshold(),
		"healthDeadThreshold": f.HealthDeadThreshold(),
		"allowNonRootAccess":  f.AllowNonRootAccess(),
		"systemFallback":      f.SystemFallback(),
	}
}
