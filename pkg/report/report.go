// Package report turns a snapshot into the values a user interface shows:
// display units, a health verdict and a status icon name.
package report

import (
	"fmt"
	"math"

	"github.com/xbattory/xbattory/pkg/config"
	"github.com/xbattory/xbattory/pkg/uevent"
)

// Verdict is a coarse judgement of battery health.
type Verdict string

const (
	VerdictOK        Verdict = "ok"
	VerdictUnhealthy Verdict = "unhealthy"
	VerdictDead      Verdict = "dead"
	// VerdictUnknown is used when health is not a finite number, which
	// happens when the design energy is zero or missing.
	VerdictUnknown Verdict = "unknown"
)

// Message returns the sentence shown next to the health value.
func (v Verdict) Message() string {
	switch v {
	case VerdictOK:
		return "Battery is OK!"
	case VerdictUnhealthy:
		return "Battery looks unhealthy!"
	case VerdictDead:
		return "Battery is dead :-("
	default:
		return "Battery health is unknown"
	}
}

const (
	MessageUnavailable = "Failed to get information about your battery!"
	UnknownModel       = "Unknown battery model"
	IconMissing        = "battery-missing-symbolic"
)

// Thresholds are inclusive upper bounds, in percent, for the dead and
// unhealthy verdicts.
type Thresholds struct {
	Warn int
	Dead int
}

var DefaultThresholds = Thresholds{Warn: 80, Dead: 50}

func ThresholdsFromConfig(c config.Config) Thresholds {
	return Thresholds{Warn: c.HealthWarnThreshold(), Dead: c.HealthDeadThreshold()}
}

// Classify judges health against th. The fractional part is dropped before
// comparing, so 50.9 with a dead threshold of 50 is dead.
func Classify(health float64, th Thresholds) Verdict {
	if math.IsNaN(health) || math.IsInf(health, 0) {
		return VerdictUnknown
	}
	h := math.Floor(health)
	switch {
	case h <= float64(th.Dead):
		return VerdictDead
	case h <= float64(th.Warn):
		return VerdictUnhealthy
	default:
		return VerdictOK
	}
}

// IconLevel buckets a charge percentage into the levels of the
// battery-level-N icon family.
func IconLevel(capacity uint8) int {
	switch {
	case capacity <= 5:
		return 0
	case capacity > 90:
		return 100
	default:
		return (int(capacity) + 9) / 10 * 10
	}
}

// IconName returns the symbolic icon for s, or IconMissing when s is nil.
func IconName(s *uevent.Snapshot) string {
	if s == nil {
		return IconMissing
	}
	suffix := ""
	if s.Status == uevent.StatusCharging {
		suffix = "-charging"
	}
	return fmt.Sprintf("battery-level-%d%s-symbolic", IconLevel(s.Capacity), suffix)
}

// Report is the display form of a snapshot. Voltages are in volts, power in
// watts and energies in watt-hours. Health is nil when it is not finite.
type Report struct {
	Available bool   `json:"available" yaml:"available"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`

	Name          string   `json:"name,omitempty" yaml:"name,omitempty"`
	Model         string   `json:"model,omitempty" yaml:"model,omitempty"`
	Manufacturer  string   `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	SerialNumber  string   `json:"serialNumber,omitempty" yaml:"serialNumber,omitempty"`
	Technology    string   `json:"technology,omitempty" yaml:"technology,omitempty"`
	Status        string   `json:"status,omitempty" yaml:"status,omitempty"`
	Capacity      uint8    `json:"capacityPercent" yaml:"capacityPercent"`
	CapacityLevel string   `json:"capacityLevel,omitempty" yaml:"capacityLevel,omitempty"`
	CycleCount    int64    `json:"cycleCount" yaml:"cycleCount"`
	Health        *float64 `json:"healthPercent" yaml:"healthPercent"`
	Verdict       Verdict  `json:"verdict" yaml:"verdict"`
	Icon          string   `json:"icon" yaml:"icon"`

	VoltageMinDesign float64 `json:"voltageMinDesignVolts" yaml:"voltageMinDesignVolts"`
	VoltageNow       float64 `json:"voltageNowVolts" yaml:"voltageNowVolts"`
	PowerNow         float64 `json:"powerNowWatts" yaml:"powerNowWatts"`
	EnergyFullDesign float64 `json:"energyFullDesignWh" yaml:"energyFullDesignWh"`
	EnergyFull       float64 `json:"energyFullWh" yaml:"energyFullWh"`
	EnergyNow        float64 `json:"energyNowWh" yaml:"energyNowWh"`
}

// New builds the report for s. A nil snapshot means no battery data is
// available.
func New(s *uevent.Snapshot, th Thresholds) *Report {
	if s == nil {
		return &Report{
			Message: MessageUnavailable,
			Model:   UnknownModel,
			Verdict: VerdictUnknown,
			Icon:    IconMissing,
		}
	}

	r := &Report{
		Available:        true,
		Name:             s.Name,
		Model:            s.ModelName,
		Manufacturer:     s.Manufacturer,
		SerialNumber:     s.SerialNumber,
		Technology:       s.Technology,
		Status:           s.Status.String(),
		Capacity:         s.Capacity,
		CapacityLevel:    s.CapacityLevel.String(),
		CycleCount:       s.CycleCount,
		Verdict:          Classify(s.Health, th),
		Icon:             IconName(s),
		VoltageMinDesign: fromMicro(s.VoltageMinDesign),
		VoltageNow:       fromMicro(s.VoltageNow),
		PowerNow:         fromMicro(s.PowerNow),
		EnergyFullDesign: fromMicro(s.EnergyFullDesign),
		EnergyFull:       fromMicro(s.EnergyFull),
		EnergyNow:        fromMicro(s.EnergyNow),
	}
	if r.Verdict != VerdictUnknown {
		h := math.Round(s.Health*100) / 100
		r.Health = &h
	}

	return r
}

func fromMicro(v uint64) float64 {
	return float64(v) * 0.000001
}

// HealthSummary is the health part of a report.
type HealthSummary struct {
	Health  *float64 `json:"healthPercent" yaml:"healthPercent"`
	Verdict Verdict  `json:"verdict" yaml:"verdict"`
	Message string   `json:"message" yaml:"message"`
}

func (r *Report) HealthSummary() HealthSummary {
	return HealthSummary{
		Health:  r.Health,
		Verdict: r.Verdict,
		Message: r.Verdict.Message(),
	}
}
