package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileDefaults(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}

	if got := f.PowerSupplyRoot(); got != "/sys/class/power_supply" {
		t.Errorf("PowerSupplyRoot() = %v, want %v", got, "/sys/class/power_supply")
	}
	if got := f.UeventPath(); got != "" {
		t.Errorf("UeventPath() = %v, want empty", got)
	}
	if got := f.HealthWarnThreshold(); got != 80 {
		t.Errorf("HealthWarnThreshold() = %v, want %v", got, 80)
	}
	if got := f.HealthDeadThreshold(); got != 50 {
		t.Errorf("HealthDeadThreshold() = %v, want %v", got, 50)
	}
	if got := f.SystemFallback(); !got {
		t.Errorf("SystemFallback() = %v, want true", got)
	}
	if got := f.AllowNonRootAccess(); got {
		t.Errorf("AllowNonRootAccess() = %v, want false", got)
	}
}

func TestFileLoad(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantErr  bool
		wantWarn int
		wantRoot string
	}{
		{
			name:     "empty file",
			content:  "  \n",
			wantWarn: 80,
			wantRoot: "/sys/class/power_supply",
		},
		{
			name:     "partial config",
			content:  `{"healthWarnThreshold": 70, "powerSupplyRoot": "/tmp/ps"}`,
			wantWarn: 70,
			wantRoot: "/tmp/ps",
		},
		{
			name:    "dead above warn",
			content: `{"healthWarnThreshold": 40}`,
			wantErr: true,
		},
		{
			name:    "out of range",
			content: `{"healthDeadThreshold": -1}`,
			wantErr: true,
		},
		{
			name:    "not json",
			content: `limit=80`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "xbattory.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			f, err := NewFile(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := f.HealthWarnThreshold(); got != tt.wantWarn {
				t.Errorf("HealthWarnThreshold() = %v, want %v", got, tt.wantWarn)
			}
			if got := f.PowerSupplyRoot(); got != tt.wantRoot {
				t.Errorf("PowerSupplyRoot() = %v, want %v", got, tt.wantRoot)
			}
		})
	}
}

func TestFileSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xbattory.json")

	f, err := NewFile(path)
	if err != nil {
		t.Fatal(err)
	}
	f.SetBattery("BAT1")
	f.SetUeventPath("/tmp/uevent")
	f.SetAllowNonRootAccess(true)
	f.SetSystemFallback(false)
	if err := f.SetHealthThresholds(75, 40); err != nil {
		t.Fatalf("SetHealthThresholds() error = %v", err)
	}
	if err := f.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	g, err := NewFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if g.Battery() != "BAT1" || g.UeventPath() != "/tmp/uevent" || !g.AllowNonRootAccess() || g.SystemFallback() {
		t.Errorf("reloaded config = %v", g.LogrusFields())
	}
	if g.HealthWarnThreshold() != 75 || g.HealthDeadThreshold() != 40 {
		t.Errorf("reloaded thresholds = %d/%d, want 75/40", g.HealthWarnThreshold(), g.HealthDeadThreshold())
	}
}

func TestSetHealthThresholdsRejectsInvalid(t *testing.T) {
	f := NewFileFromConfig(nil, "")
	if err := f.SetHealthThresholds(30, 60); err == nil {
		t.Errorf("SetHealthThresholds(30, 60) error = nil, want error")
	}
	if got := f.HealthWarnThreshold(); got != 80 {
		t.Errorf("HealthWarnThreshold() = %v, want unchanged default %v", got, 80)
	}
}

func TestNewRawFileConfigFromConfig(t *testing.T) {
	if _, err := NewRawFileConfigFromConfig(nil); err == nil {
		t.Errorf("NewRawFileConfigFromConfig(nil) error = nil, want error")
	}

	raw, err := NewRawFileConfigFromConfig(NewFileFromConfig(nil, ""))
	if err != nil {
		t.Fatal(err)
	}
	if raw.HealthDeadThreshold == nil || *raw.HealthDeadThreshold != 50 {
		t.Errorf("HealthDeadThreshold = %v, want 50", raw.HealthDeadThreshold)
	}
}
