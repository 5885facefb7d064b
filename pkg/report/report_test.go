package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/xbattory/xbattory/pkg/uevent"
)

func init() {
	color.NoColor = true
}

func testSnapshot() *uevent.Snapshot {
	return &uevent.Snapshot{
		Name:             "BAT0",
		Status:           uevent.StatusCharging,
		Technology:       "Li-ion",
		CycleCount:       12,
		VoltageMinDesign: 11400000,
		VoltageNow:       12345678,
		PowerNow:         15000000,
		EnergyFullDesign: 60000000,
		EnergyFull:       45000000,
		EnergyNow:        25000000,
		Capacity:         50,
		CapacityLevel:    uevent.LevelNormal,
		ModelName:        "DELL 7FHHV",
		Manufacturer:     "SMP",
		SerialNumber:     "4242",
		Health:           45000000.0 / 60000000.0 * 100,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		health float64
		want   Verdict
	}{
		{"zero", 0, VerdictDead},
		{"dead boundary", 50, VerdictDead},
		{"dead fraction", 50.9, VerdictDead},
		{"unhealthy", 51, VerdictUnhealthy},
		{"unhealthy boundary", 80.99, VerdictUnhealthy},
		{"ok", 81, VerdictOK},
		{"above design", 104.2, VerdictOK},
		{"nan", math.NaN(), VerdictUnknown},
		{"inf", math.Inf(1), VerdictUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.health, DefaultThresholds); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.health, got, tt.want)
			}
		})
	}
}

func TestIconLevel(t *testing.T) {
	tests := []struct {
		capacity uint8
		want     int
	}{
		{0, 0}, {5, 0}, {6, 10}, {10, 10}, {11, 20}, {20, 20},
		{21, 30}, {55, 60}, {80, 80}, {81, 90}, {90, 90}, {91, 100}, {100, 100}, {255, 100},
	}
	for _, tt := range tests {
		if got := IconLevel(tt.capacity); got != tt.want {
			t.Errorf("IconLevel(%d) = %v, want %v", tt.capacity, got, tt.want)
		}
	}
}

func TestIconName(t *testing.T) {
	s := testSnapshot()
	assert.Equal(t, "battery-level-50-charging-symbolic", IconName(s))

	s.Status = uevent.StatusDischarging
	s.Capacity = 3
	assert.Equal(t, "battery-level-0-symbolic", IconName(s))

	assert.Equal(t, IconMissing, IconName(nil))
}

func TestNew(t *testing.T) {
	r := New(testSnapshot(), DefaultThresholds)

	assert.True(t, r.Available)
	assert.Equal(t, "DELL 7FHHV", r.Model)
	assert.Equal(t, "Charging", r.Status)
	assert.Equal(t, "Normal", r.CapacityLevel)
	assert.Equal(t, VerdictUnhealthy, r.Verdict)
	require.NotNil(t, r.Health)
	assert.InDelta(t, 75.0, *r.Health, 1e-9)
	assert.InDelta(t, 12.345678, r.VoltageNow, 1e-9)
	assert.InDelta(t, 60.0, r.EnergyFullDesign, 1e-9)
	assert.InDelta(t, 15.0, r.PowerNow, 1e-9)
}

func TestNewHealthyAboveWarn(t *testing.T) {
	s := testSnapshot()
	s.EnergyFull = 50000000
	s.Health = 50000000.0 / 60000000.0 * 100

	r := New(s, DefaultThresholds)
	assert.Equal(t, VerdictOK, r.Verdict)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, FormatText, false))
	assert.Contains(t, buf.String(), "Health: 83.33% (Battery is OK!)")
}

func TestNewUnavailable(t *testing.T) {
	r := New(nil, DefaultThresholds)

	assert.False(t, r.Available)
	assert.Equal(t, MessageUnavailable, r.Message)
	assert.Equal(t, IconMissing, r.Icon)
	assert.Nil(t, r.Health)
}

func TestNonFiniteHealthEncodes(t *testing.T) {
	s := testSnapshot()
	s.EnergyFullDesign = 0
	s.Health = math.Inf(1)

	r := New(s, DefaultThresholds)
	assert.Nil(t, r.Health)
	assert.Equal(t, VerdictUnknown, r.Verdict)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, FormatJSON, false))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Nil(t, decoded["healthPercent"])
	assert.Equal(t, "unknown", decoded["verdict"])
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, New(testSnapshot(), DefaultThresholds), FormatYAML, false))

	var decoded Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "BAT0", decoded.Name)
	assert.Equal(t, uint8(50), decoded.Capacity)
	assert.Equal(t, VerdictUnhealthy, decoded.Verdict)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, New(testSnapshot(), DefaultThresholds), FormatText, true))

	out := buf.String()
	for _, want := range []string{
		"DELL 7FHHV",
		"Charging | 50%",
		"Health: 75.00% (Battery looks unhealthy!)",
		"Details:",
		"12.346 V",
		"60.000 Wh",
		"Cycle count:",
	} {
		assert.True(t, strings.Contains(out, want), "output %q does not contain %q", out, want)
	}

	buf.Reset()
	require.NoError(t, Write(&buf, New(nil, DefaultThresholds), FormatText, true))
	assert.Contains(t, buf.String(), UnknownModel)
	assert.Contains(t, buf.String(), MessageUnavailable)
	assert.NotContains(t, buf.String(), "Details:")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"TEXT", FormatText, false},
		{"json", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
