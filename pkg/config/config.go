package config

import "github.com/sirupsen/logrus"

type Config interface {
	// UeventPath is an explicit status file. Empty means discover it under
	// PowerSupplyRoot.
	UeventPath() string
	PowerSupplyRoot() string
	// Battery is the supply name to prefer, e.g. BAT1. Empty means the first
	// BAT* supply.
	Battery() string
	HealthWarnThreshold() int
	HealthDeadThreshold() int
	AllowNonRootAccess() bool
	SystemFallback() bool

	SetUeventPath(string)
	SetBattery(string)
	SetHealthThresholds(warn, dead int) error
	SetAllowNonRootAccess(bool)
	SetSystemFallback(bool)

	LogrusFields() logrus.Fields

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
