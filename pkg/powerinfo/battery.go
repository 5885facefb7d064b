// Package powerinfo reads the battery through the cross-platform
// github.com/distatus/battery library and expresses it in the status file
// vocabulary, so hosts without sysfs go through the same snapshot builder.
package powerinfo

import (
	"fmt"
	"math"
	"strconv"

	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/xbattory/xbattory/pkg/uevent"
)

// batteryGetter is swapped in tests.
var batteryGetter = battery.Get

// RecordFromBattery converts library units into status file units:
// mWh -> µWh, mW -> µW, V -> µV.
func RecordFromBattery(idx int, bat *battery.Battery) uevent.Record {
	r := uevent.Record{
		uevent.KeyName:             fmt.Sprintf("BAT%d", idx),
		uevent.KeyStatus:           stateString(bat.State),
		uevent.KeyEnergyFullDesign: micro(bat.Design, 1e3),
		uevent.KeyEnergyFull:       micro(bat.Full, 1e3),
		uevent.KeyEnergyNow:        micro(bat.Current, 1e3),
		uevent.KeyPowerNow:         micro(math.Abs(bat.ChargeRate), 1e3),
		uevent.KeyVoltageNow:       micro(bat.Voltage, 1e6),
		uevent.KeyVoltageMinDesign: micro(bat.DesignVoltage, 1e6),
	}

	if bat.Full > 0 {
		capacity := math.Round(bat.Current / bat.Full * 100)
		r[uevent.KeyCapacity] = strconv.FormatUint(uint64(math.Min(math.Max(capacity, 0), 100)), 10)
	}

	switch {
	case bat.State == battery.Full:
		r[uevent.KeyCapacityLevel] = "Full"
	case r[uevent.KeyCapacity] != "":
		r[uevent.KeyCapacityLevel] = "Normal"
	}

	return r
}

// ReadSystem reads the first battery of the host and builds a snapshot from
// it.
func ReadSystem() (*uevent.Snapshot, error) {
	bat, err := batteryGetter(0)
	if bat == nil {
		if err == nil {
			err = pkgerrors.New("no battery returned")
		}
		return nil, pkgerrors.Wrapf(err, "failed to read system battery")
	}
	if err != nil {
		// Partial reads still carry the fields that worked.
		logrus.WithError(err).Debug("system battery info is partial")
	}

	return uevent.Build(RecordFromBattery(0, bat))
}

func stateString(s battery.State) string {
	switch s {
	case battery.Full:
		return "Full"
	case battery.Charging:
		return "Charging"
	case battery.Discharging:
		return "Discharging"
	default:
		return "Unknown"
	}
}

func micro(v, factor float64) string {
	if math.IsNaN(v) || v <= 0 {
		return "0"
	}
	return strconv.FormatUint(uint64(math.Round(v*factor)), 10)
}
