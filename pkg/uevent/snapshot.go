package uevent

import (
	"strconv"
)

// Field names used in the status file.
const (
	KeyName             = "POWER_SUPPLY_NAME"
	KeyStatus           = "POWER_SUPPLY_STATUS"
	KeyTechnology       = "POWER_SUPPLY_TECHNOLOGY"
	KeyCycleCount       = "POWER_SUPPLY_CYCLE_COUNT"
	KeyVoltageMinDesign = "POWER_SUPPLY_VOLTAGE_MIN_DESIGN"
	KeyVoltageNow       = "POWER_SUPPLY_VOLTAGE_NOW"
	KeyPowerNow         = "POWER_SUPPLY_POWER_NOW"
	KeyEnergyFullDesign = "POWER_SUPPLY_ENERGY_FULL_DESIGN"
	KeyEnergyFull       = "POWER_SUPPLY_ENERGY_FULL"
	KeyEnergyNow        = "POWER_SUPPLY_ENERGY_NOW"
	KeyCapacity         = "POWER_SUPPLY_CAPACITY"
	KeyCapacityLevel    = "POWER_SUPPLY_CAPACITY_LEVEL"
	KeyModelName        = "POWER_SUPPLY_MODEL_NAME"
	KeyManufacturer     = "POWER_SUPPLY_MANUFACTURER"
	KeySerialNumber     = "POWER_SUPPLY_SERIAL_NUMBER"
)

// fieldDefaults holds the raw literal used when a field is absent. Every
// numeric default parses successfully.
var fieldDefaults = map[string]string{
	KeyName:             "",
	KeyStatus:           "Unknown",
	KeyTechnology:       "Unknown",
	KeyCycleCount:       "0",
	KeyVoltageMinDesign: "0",
	KeyVoltageNow:       "0",
	KeyPowerNow:         "0",
	KeyEnergyFullDesign: "0",
	KeyEnergyFull:       "0",
	KeyEnergyNow:        "0",
	KeyCapacity:         "0",
	KeyCapacityLevel:    "Unknown",
	KeyModelName:        "",
	KeyManufacturer:     "",
	KeySerialNumber:     "",
}

// Default returns the default raw literal for key. Unknown keys default to
// the empty string.
func Default(key string) string {
	return fieldDefaults[key]
}

// Snapshot is one fully coerced reading of the status file. Voltages are in
// microvolts, power in microwatts and energies in microwatt-hours.
// A Snapshot is never modified after Build returns it.
type Snapshot struct {
	Name             string
	Status           Status
	Technology       string
	CycleCount       int64
	VoltageMinDesign uint64
	VoltageNow       uint64
	PowerNow         uint64
	EnergyFullDesign uint64
	EnergyFull       uint64
	EnergyNow        uint64
	Capacity         uint8
	CapacityLevel    Level
	ModelName        string
	Manufacturer     string
	SerialNumber     string

	// Health is EnergyFull / EnergyFullDesign * 100. It is +Inf or NaN when
	// the design energy is zero.
	Health float64
}

// Read loads the status file at path and builds a Snapshot from it.
func Read(path string) (*Snapshot, error) {
	r, err := ReadRecord(path)
	if err != nil {
		return nil, err
	}
	return Build(r)
}

// Build coerces every field of r. It returns either a complete Snapshot or
// an error, never both.
func Build(r Record) (*Snapshot, error) {
	b := builder{r: r}

	s := &Snapshot{
		Name:             r.Lookup(KeyName),
		Status:           ParseStatus(r.Lookup(KeyStatus)),
		Technology:       r.Lookup(KeyTechnology),
		CycleCount:       b.parseInt(KeyCycleCount),
		VoltageMinDesign: b.parseUint(KeyVoltageMinDesign, 64),
		VoltageNow:       b.parseUint(KeyVoltageNow, 64),
		PowerNow:         b.parseUint(KeyPowerNow, 64),
		EnergyFullDesign: b.parseUint(KeyEnergyFullDesign, 64),
		EnergyFull:       b.parseUint(KeyEnergyFull, 64),
		EnergyNow:        b.parseUint(KeyEnergyNow, 64),
		Capacity:         uint8(b.parseUint(KeyCapacity, 8)),
		CapacityLevel:    ParseLevel(r.Lookup(KeyCapacityLevel)),
		ModelName:        r.Lookup(KeyModelName),
		Manufacturer:     r.Lookup(KeyManufacturer),
		SerialNumber:     r.Lookup(KeySerialNumber),
	}

	// Re-parse as floats so fractional values are kept.
	full := b.parseFloat(KeyEnergyFull)
	design := b.parseFloat(KeyEnergyFullDesign)
	s.Health = full / design * 100

	if b.err != nil {
		return nil, b.err
	}
	return s, nil
}

// builder coerces fields and remembers the first failure.
type builder struct {
	r   Record
	err error
}

func (b *builder) fail(key, value string, err error) {
	if b.err == nil {
		b.err = &ParseError{Kind: ErrInvalidNumber, Field: key, Value: value, Err: err}
	}
}

func (b *builder) parseInt(key string) int64 {
	v := b.r.Lookup(key)
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		b.fail(key, v, err)
		return 0
	}
	return n
}

func (b *builder) parseUint(key string, bitSize int) uint64 {
	v := b.r.Lookup(key)
	n, err := strconv.ParseUint(v, 10, bitSize)
	if err != nil {
		b.fail(key, v, err)
		return 0
	}
	return n
}

func (b *builder) parseFloat(key string) float64 {
	v := b.r.Lookup(key)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		b.fail(key, v, err)
		return 0
	}
	return f
}
