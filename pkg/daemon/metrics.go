package daemon

import (
	"errors"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/xbattory/xbattory/pkg/locator"
	"github.com/xbattory/xbattory/pkg/uevent"
)

const metricsNamespace = "xbattory"

var allStatuses = []uevent.Status{
	uevent.StatusUnknown,
	uevent.StatusFull,
	uevent.StatusDischarging,
	uevent.StatusCharging,
	uevent.StatusNotCharging,
}

// snapshotCollector reads the battery on every scrape.
type snapshotCollector struct {
	read func() (*uevent.Snapshot, error)

	readErrors *prometheus.CounterVec

	capacity         *prometheus.Desc
	health           *prometheus.Desc
	cycleCount       *prometheus.Desc
	voltageNow       *prometheus.Desc
	voltageMinDesign *prometheus.Desc
	powerNow         *prometheus.Desc
	energyNow        *prometheus.Desc
	energyFull       *prometheus.Desc
	energyFullDesign *prometheus.Desc
	status           *prometheus.Desc
}

func newSnapshotCollector(read func() (*uevent.Snapshot, error)) *snapshotCollector {
	labels := []string{"battery"}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(metricsNamespace, "", name), help, labels, nil)
	}

	return &snapshotCollector{
		read: read,
		readErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "read_errors_total",
			Help:      "Total number of failed battery reads by kind",
		}, []string{"kind"}),
		capacity:         desc("capacity_percent", "Current charge in percent"),
		health:           desc("health_percent", "Full charge energy relative to design energy in percent"),
		cycleCount:       desc("cycle_count", "Charge cycle count"),
		voltageNow:       desc("voltage_now_volts", "Current voltage"),
		voltageMinDesign: desc("voltage_min_design_volts", "Minimum design voltage"),
		powerNow:         desc("power_now_watts", "Current power draw"),
		energyNow:        desc("energy_now_wh", "Current energy"),
		energyFull:       desc("energy_full_wh", "Energy when full"),
		energyFullDesign: desc("energy_full_design_wh", "Design energy when full"),
		status: prometheus.NewDesc(prometheus.BuildFQName(metricsNamespace, "", "status"),
			"Charging status, 1 for the current status", []string{"battery", "status"}, nil),
	}
}

func (c *snapshotCollector) Describe(ch chan<- *prometheus.Desc) {
	c.readErrors.Describe(ch)
	for _, d := range []*prometheus.Desc{
		c.capacity, c.health, c.cycleCount, c.voltageNow, c.voltageMinDesign,
		c.powerNow, c.energyNow, c.energyFull, c.energyFullDesign, c.status,
	} {
		ch <- d
	}
}

func (c *snapshotCollector) Collect(ch chan<- prometheus.Metric) {
	defer c.readErrors.Collect(ch)

	s, err := c.read()
	if err != nil {
		logrus.WithError(err).Debug("metrics scrape could not read battery")
		c.readErrors.WithLabelValues(errorKind(err)).Inc()
		return
	}

	gauge := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, s.Name)
	}

	gauge(c.capacity, float64(s.Capacity))
	if !math.IsNaN(s.Health) && !math.IsInf(s.Health, 0) {
		gauge(c.health, s.Health)
	}
	gauge(c.cycleCount, float64(s.CycleCount))
	gauge(c.voltageNow, float64(s.VoltageNow)/1e6)
	gauge(c.voltageMinDesign, float64(s.VoltageMinDesign)/1e6)
	gauge(c.powerNow, float64(s.PowerNow)/1e6)
	gauge(c.energyNow, float64(s.EnergyNow)/1e6)
	gauge(c.energyFull, float64(s.EnergyFull)/1e6)
	gauge(c.energyFullDesign, float64(s.EnergyFullDesign)/1e6)

	for _, st := range allStatuses {
		v := 0.0
		if st == s.Status {
			v = 1
		}
		ch <- prometheus.MustNewConstMetric(c.status, prometheus.GaugeValue, v, s.Name, st.String())
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, locator.ErrNoBattery):
		return "no_battery"
	case errors.Is(err, uevent.ErrIO):
		return "io"
	case errors.Is(err, uevent.ErrInvalidNumber):
		return "invalid_number"
	default:
		return "other"
	}
}
